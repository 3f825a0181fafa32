// Package detector handles firmware file format detection.
package detector

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charlie-x/simget/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Format is a firmware file format.
type Format string

// supported formats.
const (
	Binary   Format = "bin"
	IntelHex Format = "hex"
	ELF      Format = "elf"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// FormatFromString returns the format for a name, an empty name returns an
// empty format without error.
func FormatFromString(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "":
		return "", nil
	case "bin", "binary", "raw":
		return Binary, nil
	case "hex", "ihex", "ihx":
		return IntelHex, nil
	case "elf":
		return ELF, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported: bin, hex, elf", name)
	}
}

// Detector handles firmware format detection from file extensions, file
// content and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the firmware format from options or file auto-detection.
// It first checks if a format is explicitly specified in options, otherwise
// attempts to detect the format from the input filename extension and
// finally from the file content.
func (d *Detector) Detect(opts options.Program, data []byte) (Format, error) {
	format, err := FormatFromString(opts.Format)
	if err != nil {
		return "", err
	}
	if format != "" {
		return format, nil
	}

	format = detectFromFile(opts.Input)
	if format == "" {
		format = detectFromContent(data)
	}
	d.logger.Debug("Auto-detected format",
		log.String("format", string(format)),
		log.String("file", opts.Input))
	return format, nil
}

// detectFromFile determines the format based on file extension.
func detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".hex", ".ihex", ".ihx", ".eep":
		return IntelHex
	case ".elf", ".axf", ".o":
		return ELF
	case ".bin", ".raw":
		return Binary
	default:
		return ""
	}
}

// detectFromContent determines the format based on the file content.
func detectFromContent(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, elfMagic):
		return ELF
	case len(data) > 0 && data[0] == ':':
		return IntelHex
	default:
		return Binary
	}
}
