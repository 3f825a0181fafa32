// Package arch contains types and functions used for multi architecture support.
// It acts as a bridge between the disassembler and the architecture specific code.
package arch

import (
	"github.com/charlie-x/simget/internal/instruction"
)

// Architecture contains architecture specific information.
type Architecture interface {
	// Name returns the name of the architecture.
	Name() string
	// Decode decodes the instruction at the start of the window. The window can
	// be shorter than the longest instruction at the end of the memory, an
	// instruction not fitting into it is not recognized.
	Decode(window []byte, address uint32, labels LabelLookup) (instruction.Instruction, bool)
	// FallbackSize is the number of bytes to skip for an unrecognized encoding.
	FallbackSize() int
	// MaxInstructionSize returns the size of the longest instruction in bytes.
	MaxInstructionSize() int
	// Opcodes returns all opcodes in resolution order.
	Opcodes() []Opcode
}

// LabelLookup returns the display name of a label at an address. It is used
// to replace branch target addresses by names in the operands.
type LabelLookup interface {
	LabelName(address uint32) (string, bool)
}
