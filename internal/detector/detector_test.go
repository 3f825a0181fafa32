package detector

import (
	"testing"

	"github.com/charlie-x/simget/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		formatOpt  string
		inputFile  string
		data       []byte
		wantFormat Format
	}{
		{
			name:       "explicit hex format option",
			formatOpt:  "hex",
			inputFile:  "firmware.bin",
			wantFormat: IntelHex,
		},
		{
			name:       "explicit binary format option",
			formatOpt:  "raw",
			inputFile:  "firmware.elf",
			wantFormat: Binary,
		},
		{
			name:       "detect from .hex extension",
			inputFile:  "firmware.hex",
			wantFormat: IntelHex,
		},
		{
			name:       "detect from .elf extension",
			inputFile:  "firmware.ELF",
			wantFormat: ELF,
		},
		{
			name:       "detect from .bin extension",
			inputFile:  "firmware.bin",
			data:       []byte(":1000"),
			wantFormat: Binary,
		},
		{
			name:       "detect elf magic",
			inputFile:  "firmware",
			data:       []byte{0x7f, 'E', 'L', 'F', 1, 1},
			wantFormat: ELF,
		},
		{
			name:       "detect intel hex content",
			inputFile:  "firmware.txt",
			data:       []byte(":00000001FF\n"),
			wantFormat: IntelHex,
		},
		{
			name:       "default to binary",
			inputFile:  "firmware",
			data:       []byte{0x0C, 0x94},
			wantFormat: Binary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{}
			opts.Format = tt.formatOpt
			opts.Input = tt.inputFile

			format, err := d.Detect(opts, tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
		})
	}
}

func TestDetectUnsupportedFormat(t *testing.T) {
	d := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Format = "srec"
	_, err := d.Detect(opts, nil)
	assert.Error(t, err)
}
