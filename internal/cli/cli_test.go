package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/pipeline"
	"github.com/charlie-x/simget/internal/writer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/pflag"
)

// ser r16; out PORTB, r16; rjmp 0x0002
var testFirmware = []byte{0x0F, 0xEF, 0x08, 0xBB, 0xFE, 0xCF}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(fileName, data, 0o600))
	return fileName
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var opts options.Program
	BindFlags(flags, &opts)

	assert.NoError(t, flags.Parse([]string{
		"-i", "firmware.hex", "--mcu", "atmega328p", "--pseudo", "--start", "0x10", "-q", "--nooffsets",
	}))
	assert.Equal(t, "firmware.hex", opts.Input)
	assert.Equal(t, "atmega328p", opts.MCU)
	assert.True(t, opts.Pseudo)
	assert.True(t, opts.Quiet)
	assert.True(t, opts.NoOffsets)
	assert.False(t, opts.NoHexComments)
	assert.Equal(t, uint32(0x10), opts.Start)
	assert.Equal(t, "auto", opts.Color)

	assert.NotNil(t, flags.Lookup("input"))
	assert.NotNil(t, flags.ShorthandLookup("o"))
}

func TestDisassemblerOptions(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*options.Program)
		want    options.Disassembler
		wantErr bool
	}{
		{
			name:   "default flags",
			modify: func(*options.Program) {},
			want:   options.Disassembler{MCU: "attiny4313", HexComments: true, OffsetComments: true},
		},
		{
			name: "output flags",
			modify: func(opts *options.Program) {
				opts.NoHexComments = true
				opts.NoOffsets = true
				opts.Pseudo = true
				opts.Start = 0x10
				opts.End = 0x20
			},
			want: options.Disassembler{MCU: "attiny4313", Pseudo: true, Start: 0x10, End: 0x20},
		},
		{
			name:    "end before start",
			modify:  func(opts *options.Program) { opts.Start, opts.End = 0x20, 0x10 },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(opts *options.Program) { opts.Format = "srec" },
			wantErr: true,
		},
		{
			name:    "unknown color mode",
			modify:  func(opts *options.Program) { opts.Color = "rainbow" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{}
			opts.MCU = "attiny4313"
			opts.Color = "auto"
			tt.modify(&opts)

			got, err := DisassemblerOptions(opts)
			if tt.wantErr {
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommand(t *testing.T) {
	input := writeTestFile(t, "firmware.bin", testFirmware)
	output := filepath.Join(t.TempDir(), "firmware.asm")

	cmd := NewRootCommand("1.0.0", "", "")
	cmd.SetArgs([]string{"-q", "--nohexcomments", "-o", output, input})
	assert.NoError(t, cmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "  out PORTB, r16                 ; 0x0002\n"))
}

func TestRootCommandUsageError(t *testing.T) {
	cmd := NewRootCommand("1.0.0", "", "")
	cmd.SetArgs([]string{"-q"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestPatternsCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewRootCommand("1.0.0", "", "")
	cmd.SetArgs([]string{"patterns", "-q", "--color", "never"})
	cmd.SetOut(&buf)
	assert.NoError(t, cmd.ExecuteContext(context.Background()))

	output := buf.String()
	ser := strings.Index(output, " ser ")
	ldi := strings.Index(output, " ldi ")
	assert.True(t, ser > 0)
	assert.True(t, ldi > ser)
	assert.True(t, strings.HasPrefix(output, "#"))
}

func TestPatternsCommandJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewRootCommand("1.0.0", "", "")
	cmd.SetArgs([]string{"patterns", "-q", "--json"})
	cmd.SetOut(&buf)
	assert.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.True(t, strings.Contains(buf.String(), `"id": "ret"`))
	assert.True(t, strings.Contains(buf.String(), `"specificity": 16`))
}

func TestSchemaCommand(t *testing.T) {
	tests := []struct {
		args     []string
		contains string
	}{
		{[]string{"schema"}, `"mnemonic"`},
		{[]string{"schema", "symbols"}, `"symbols"`},
		{[]string{"schema", "tags"}, `"data"`},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var buf bytes.Buffer
			cmd := NewRootCommand("1.0.0", "", "")
			cmd.SetArgs(tt.args)
			cmd.SetOut(&buf)
			assert.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.True(t, strings.Contains(buf.String(), tt.contains))
		})
	}

	cmd := NewRootCommand("1.0.0", "", "")
	cmd.SetArgs([]string{"schema", "firmware"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestParseProgramCounter(t *testing.T) {
	tests := []struct {
		text     string
		words    bool
		expected uint32
		wantErr  bool
	}{
		{"0x0010", false, 0x10, false},
		{"10\n", false, 0x10, false},
		{"pc=0x20", false, 0x20, false},
		{"PC: 1a", false, 0x1a, false},
		{"0x8", true, 0x10, false},
		{"", false, 0, true},
		{"xyz", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pc, err := parseProgramCounter(tt.text, tt.words)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, pc)
		})
	}
}

func TestRenderWindow(t *testing.T) {
	logger := log.NewTestLogger(t)
	disasmOpts := options.NewDisassembler("attiny4313")
	disasmOpts.MarkPC = true

	p, err := pipeline.New(logger, disasmOpts)
	assert.NoError(t, err)

	opts := options.Program{}
	opts.Input = writeTestFile(t, "firmware.bin", testFirmware)
	fw, err := p.Load(opts)
	assert.NoError(t, err)
	dis, err := p.Prepare(context.Background(), fw, opts, disasmOpts)
	assert.NoError(t, err)

	fw.SetProgramCounter(2)
	var buf bytes.Buffer
	highlight := func(s string) string { return "[" + s + "]" }
	assert.NoError(t, renderWindow(&buf, dis, 2, 1, writer.Options{}, highlight))

	expected := strings.Join([]string{
		"; pc 0x0002",
		"  ser r16",
		"",
		"_label_0002:                     ; rjmp from 0x0004",
		"[=>out PORTB, r16]",
		"  rjmp _label_0002",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderWindowInstructionBoundary(t *testing.T) {
	logger := log.NewTestLogger(t)
	disasmOpts := options.NewDisassembler("attiny4313")
	disasmOpts.MarkPC = true

	p, err := pipeline.New(logger, disasmOpts)
	assert.NoError(t, err)

	// call with an operand word that decodes as call; ret; ret
	opts := options.Program{}
	opts.Input = writeTestFile(t, "firmware.bin", []byte{0x0E, 0x94, 0x0E, 0x94, 0x08, 0x95, 0x08, 0x95})
	fw, err := p.Load(opts)
	assert.NoError(t, err)
	dis, err := p.Prepare(context.Background(), fw, opts, disasmOpts)
	assert.NoError(t, err)

	fw.SetProgramCounter(4)
	var buf bytes.Buffer
	assert.NoError(t, renderWindow(&buf, dis, 4, 1, writer.Options{}, nil))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "; pc 0x0004\n  call "))
	assert.True(t, strings.Contains(output, "\n=>ret"))
	assert.False(t, strings.Contains(output, "=>call"))
}

func TestRunFollow(t *testing.T) {
	opts := options.Program{}
	opts.Input = writeTestFile(t, "firmware.bin", testFirmware)
	opts.MCU = "attiny4313"
	opts.Color = "never"
	opts.Quiet = true
	trace := writeTestFile(t, "pc.trace", []byte("0x0004\n"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := runFollow(ctx, &buf, opts, trace, followOptions{context: 2, fromStart: true})
	assert.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "; pc 0x0004\n"))
	assert.True(t, strings.Contains(buf.String(), "=>rjmp _label_0002"))
}
