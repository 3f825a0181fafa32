// Package program represents a disassembled AVR firmware image.
package program

import (
	"iter"
)

// Program defines a disassembled firmware image.
type Program struct {
	Name     string
	MCU      string
	Size     int    // firmware size in bytes
	Checksum uint32 // CRC32 of the firmware image

	// Lines is restartable, every iteration decodes the memory again.
	Lines iter.Seq[Line]

	// I/O registers referenced by the code, by name
	Constants map[string]uint16
}

// New creates a new program.
func New(name, mcu string, size int, checksum uint32, lines iter.Seq[Line]) *Program {
	return &Program{
		Name:      name,
		MCU:       mcu,
		Size:      size,
		Checksum:  checksum,
		Lines:     lines,
		Constants: map[string]uint16{},
	}
}
