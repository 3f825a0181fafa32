package colorize

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"ALWAYS", Always, false},
		{"never", Never, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, Enabled(Always, &buf))
	assert.False(t, Enabled(Never, &buf))
	// a buffer is not a terminal
	assert.False(t, Enabled(Auto, &buf))
}

func TestListing(t *testing.T) {
	code := "main:\n  ldi r16, 0xff                  ; 0x0000\n  out 0x18, r16\n"

	c := New()
	colored, err := c.Listing(code)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(colored, "\x1b["))
	assert.Equal(t, code, ansi.ReplaceAllString(colored, ""))
}

func TestWriter(t *testing.T) {
	var out bytes.Buffer
	w := New().Writer(&out)

	_, err := w.Write([]byte("  ret\n"))
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	assert.NoError(t, w.Close())
	assert.Equal(t, "  ret\n", ansi.ReplaceAllString(out.String(), ""))
}

func TestCurrentLine(t *testing.T) {
	line := New().CurrentLine("=>ret")
	assert.True(t, strings.Contains(line, "=>ret"))
}
