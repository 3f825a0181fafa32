// Package mocks provides mock implementations of arch interfaces for testing.
package mocks

import (
	"fmt"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/instruction"
)

// Architecture is a minimal mock implementation of arch.Architecture for testing.
// Every byte value listed in Sizes decodes to an instruction of that size,
// all other bytes are unrecognized.
type Architecture struct {
	Sizes map[byte]int
	// Targets maps an opcode byte to a call target.
	Targets map[byte]uint32

	Decoded []uint32 // addresses passed to Decode
}

var _ arch.Architecture = (*Architecture)(nil)

// NewArchitecture creates a new mock architecture.
func NewArchitecture() *Architecture {
	return &Architecture{
		Sizes:   map[byte]int{},
		Targets: map[byte]uint32{},
	}
}

func (m *Architecture) Name() string {
	return "mock"
}

func (m *Architecture) Decode(window []byte, address uint32, labels arch.LabelLookup) (instruction.Instruction, bool) {
	m.Decoded = append(m.Decoded, address)
	if len(window) == 0 {
		return instruction.Instruction{}, false
	}

	size, ok := m.Sizes[window[0]]
	if !ok || len(window) < size {
		return instruction.Instruction{}, false
	}

	ins := instruction.Instruction{
		Address:  address,
		Length:   size,
		Mnemonic: fmt.Sprintf("op%02x", window[0]),
	}
	if target, ok := m.Targets[window[0]]; ok {
		ins.Flow = instruction.Call
		ins.Target = target
		ins.HasTarget = true
		ins.Operands = fmt.Sprintf("0x%04x", target)
		if labels != nil {
			if name, ok := labels.LabelName(target); ok {
				ins.Operands = name
			}
		}
	}
	return ins, true
}

func (m *Architecture) FallbackSize() int {
	return 2
}

func (m *Architecture) MaxInstructionSize() int {
	return 4
}

func (m *Architecture) Opcodes() []arch.Opcode {
	return nil
}
