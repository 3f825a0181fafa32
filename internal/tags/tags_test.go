package tags

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewMergesRanges(t *testing.T) {
	tags, err := New([]Range{
		{Start: 0x40, Size: 0x10, Comment: "table"},
		{Start: 0x10, End: 0x20},
		{Start: 0x18, End: 0x30, Comment: "strings"},
		{Start: 0x50, End: 0x58},
	})
	assert.NoError(t, err)

	assert.Equal(t, []Range{
		{Start: 0x10, End: 0x30, Comment: "strings"},
		{Start: 0x40, End: 0x58, Comment: "table"},
	}, tags.Ranges())
}

func TestNewInvalidRange(t *testing.T) {
	_, err := New([]Range{{Start: 0x20, End: 0x10}})
	assert.Error(t, err)

	_, err = New([]Range{{Start: 0x20}})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tags, err := New([]Range{
		{Start: 0x10, End: 0x20, Comment: "lookup table"},
		{Start: 0x40, Size: 4},
	})
	assert.NoError(t, err)

	tests := []struct {
		address uint32
		size    int
		comment string
	}{
		{0x00, 0, ""},
		{0x0F, 0, ""},
		{0x10, 16, "lookup table"},
		{0x1E, 2, "lookup table"},
		{0x20, 0, ""},
		{0x42, 2, ""},
		{0x44, 0, ""},
		{0xFFFF, 0, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.size, tags.Classify(nil, tt.address))
		assert.Equal(t, tt.comment, tags.Comment(tt.address))
	}
}

func TestLoad(t *testing.T) {
	input := `
data:
  - start: 0x0068
    end: 0x0080
    comment: string table
  - start: 0x0100
    size: 16
`
	tags, err := Load(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, tags.Ranges(), 2)
	assert.Equal(t, 0x18, tags.Classify(nil, 0x68))
	assert.Equal(t, 16, tags.Classify(nil, 0x100))

	tags, err = Load(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Len(t, tags.Ranges(), 0)

	_, err = Load(strings.NewReader("data: {"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "tags.yaml")
	assert.NoError(t, os.WriteFile(fileName, []byte("data:\n  - start: 0x10\n    size: 2\n"), 0o600))

	tags, err := LoadFile(fileName)
	assert.NoError(t, err)
	assert.Equal(t, 2, tags.Classify(nil, 0x10))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
