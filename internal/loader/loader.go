// Package loader handles firmware file loading operations.
package loader

import (
	"fmt"
	"hash/crc32"
	"sync/atomic"

	"github.com/charlie-x/simget/internal/detector"
	"github.com/charlie-x/simget/internal/symbols"
)

// maxFirmwareSize limits the program memory image, the largest AVR devices
// have 384 KB of flash.
const maxFirmwareSize = 4 << 20

// erasedFlash is the value of unprogrammed flash bytes.
const erasedFlash = 0xFF

// Firmware is a loaded program memory image. It implements the memory
// interface of the disassembler.
type Firmware struct {
	Name    string
	Format  detector.Format
	Symbols []symbols.Symbol // symbols contained in the file

	data []byte
	pc   atomic.Uint32
}

// Bytes returns the program memory.
func (f *Firmware) Bytes() []byte {
	return f.data
}

// ProgramCounter returns the current program counter.
func (f *Firmware) ProgramCounter() uint32 {
	return f.pc.Load()
}

// SetProgramCounter sets the program counter, it can be called concurrently
// to decoding.
func (f *Firmware) SetProgramCounter(pc uint32) {
	f.pc.Store(pc)
}

// Checksum returns the CRC32 checksum of the memory image.
func (f *Firmware) Checksum() uint32 {
	return crc32.ChecksumIEEE(f.data)
}

// Loader handles loading firmware files from disk.
type Loader struct{}

// New creates a new firmware loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the firmware file content of the given format.
func (l *Loader) Load(name string, data []byte, format detector.Format) (*Firmware, error) {
	fw := &Firmware{
		Name:   name,
		Format: format,
	}

	var err error
	switch format {
	case detector.Binary, "":
		fw.data = data
	case detector.IntelHex:
		fw.data, err = parseIntelHex(data)
	case detector.ELF:
		fw.data, fw.Symbols, err = parseELF(data)
	default:
		err = fmt.Errorf("unsupported format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s firmware: %w", format, err)
	}
	return fw, nil
}

// place copies data into the image at the address, growing the image and
// filling gaps with erased flash bytes.
func place(image []byte, address uint32, data []byte) ([]byte, error) {
	end := int64(address) + int64(len(data))
	if end > maxFirmwareSize {
		return nil, fmt.Errorf("data at address 0x%x exceeds the maximum firmware size", address)
	}

	for int64(len(image)) < end {
		image = append(image, erasedFlash)
	}
	copy(image[address:], data)
	return image, nil
}
