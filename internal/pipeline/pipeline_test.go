package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charlie-x/simget/internal/detector"
	"github.com/charlie-x/simget/internal/loader"
	"github.com/charlie-x/simget/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// ser r16; out PORTB, r16; rjmp 0x0002
var testFirmware = []byte{0x0F, 0xEF, 0x08, 0xBB, 0xFE, 0xCF}

func newTestPipeline(t *testing.T, disasmOpts options.Disassembler) *Pipeline {
	t.Helper()
	p, err := New(log.NewTestLogger(t), disasmOpts)
	assert.NoError(t, err)
	return p
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(fileName, data, 0o600))
	return fileName
}

func TestNew(t *testing.T) {
	p := newTestPipeline(t, options.NewDisassembler("attiny4313"))
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
	assert.Equal(t, "avr", p.arch.Name())

	_, err := New(log.NewTestLogger(t), options.NewDisassembler("z80"))
	assert.ErrorContains(t, err, "unsupported mcu")
}

func TestExecuteWithFirmware(t *testing.T) {
	disasmOpts := options.NewDisassembler("attiny4313")
	p := newTestPipeline(t, disasmOpts)

	fw, err := loader.New().Load("test.bin", testFirmware, detector.Binary)
	assert.NoError(t, err)

	var buf bytes.Buffer
	opts := options.Program{}
	opts.Quiet = true
	app, err := p.ExecuteWithFirmware(context.Background(), fw, opts, disasmOpts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x18), app.Constants["PORTB"])
	assert.Len(t, app.Constants, 1)

	output := buf.String()
	expected := []string{
		"; Firmware: test.bin\n",
		"; MCU: attiny4313\n",
		"; Size: 6 bytes\n",
		".equ PORTB = 0x18\n",
		"  ser r16                        ; 0x0000  0F EF\n",
		"_label_0002:                     ; rjmp from 0x0004\n",
		"  out PORTB, r16                 ; 0x0002  08 BB\n",
		"  rjmp _label_0002               ; 0x0004  FE CF\n",
	}
	for _, line := range expected {
		assert.True(t, strings.Contains(output, line), line)
	}
}

func TestExecuteWithTagsAndSymbols(t *testing.T) {
	disasmOpts := options.NewDisassembler("attiny4313")
	disasmOpts.HexComments = false
	disasmOpts.OffsetComments = false
	p := newTestPipeline(t, disasmOpts)

	input := createTempFile(t, "firmware.bin", append(append([]byte{}, testFirmware...), 0x01, 0x02))
	tagFile := createTempFile(t, "tags.yaml", []byte("data:\n  - start: 6\n    size: 2\n    comment: lookup table\n"))
	symbolFile := createTempFile(t, "symbols.yaml", []byte("symbols:\n  - address: 2\n    name: loop\n"))

	opts := options.Program{}
	opts.Input = input
	opts.Tags = tagFile
	opts.Symbols = symbolFile
	opts.Quiet = true

	var buf bytes.Buffer
	_, err := p.Execute(context.Background(), opts, disasmOpts, &buf)
	assert.NoError(t, err)

	output := buf.String()
	assert.True(t, strings.Contains(output, "loop:                            ; rjmp from 0x0004\n"))
	assert.True(t, strings.Contains(output, "  rjmp loop\n"))
	assert.True(t, strings.Contains(output, "  .byte 0x01, 0x02               ; lookup table\n"))
}

func TestExecuteJSON(t *testing.T) {
	disasmOpts := options.NewDisassembler("attiny4313")
	p := newTestPipeline(t, disasmOpts)

	opts := options.Program{}
	opts.Input = createTempFile(t, "firmware.bin", testFirmware)
	opts.JSON = true
	opts.Quiet = true

	var buf bytes.Buffer
	_, err := p.Execute(context.Background(), opts, disasmOpts, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.Contains(lines[0], `"mnemonic":"ser"`))
	assert.True(t, strings.Contains(lines[1], `"kind":"label"`))
}

func TestExecuteWindow(t *testing.T) {
	disasmOpts := options.NewDisassembler("attiny4313")
	disasmOpts.Start = 4
	p := newTestPipeline(t, disasmOpts)

	fw, err := loader.New().Load("test.bin", testFirmware, detector.Binary)
	assert.NoError(t, err)

	opts := options.Program{}
	opts.Quiet = true
	var buf bytes.Buffer
	app, err := p.ExecuteWithFirmware(context.Background(), fw, opts, disasmOpts, &buf)
	assert.NoError(t, err)
	// references are scanned over the complete memory
	assert.True(t, strings.Contains(buf.String(), "  rjmp _label_0002"))
	assert.False(t, strings.Contains(buf.String(), "ser r16"))
	assert.Len(t, app.Constants, 0)
}

func TestExecuteErrors(t *testing.T) {
	disasmOpts := options.NewDisassembler("attiny4313")
	p := newTestPipeline(t, disasmOpts)

	opts := options.Program{}
	opts.Input = filepath.Join(t.TempDir(), "missing.bin")
	_, err := p.Execute(context.Background(), opts, disasmOpts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "reading file")

	opts.Input = createTempFile(t, "firmware.bin", testFirmware)
	opts.Tags = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = p.Execute(context.Background(), opts, disasmOpts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading tags")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts.Tags = ""
	_, err = p.Execute(ctx, opts, disasmOpts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "context canceled")
}
