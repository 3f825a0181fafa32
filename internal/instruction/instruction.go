// Package instruction contains the decoded instruction type shared by the
// architecture emitters, the cross-reference tracker and the output writers.
package instruction

import (
	"github.com/charlie-x/simget/internal/pattern"
)

// Flow describes how an instruction affects the control flow.
type Flow uint8

const (
	Sequential Flow = iota
	Jump            // unconditional jump
	Branch          // conditional relative branch
	Call            // subroutine call
	Return          // return from subroutine or interrupt
	Skip            // conditionally skips the next instruction
	Indirect        // jump or call through the Z register
)

var flowNames = [...]string{
	Sequential: "sequential",
	Jump:       "jump",
	Branch:     "branch",
	Call:       "call",
	Return:     "return",
	Skip:       "skip",
	Indirect:   "indirect",
}

func (f Flow) String() string {
	if int(f) < len(flowNames) {
		return flowNames[f]
	}
	return "unknown"
}

// Instruction is a decoded instruction.
type Instruction struct {
	Address  uint32
	Length   int        // size in bytes
	Template int        // index of the matched template
	ID       pattern.ID // mnemonic identifier of the matched template

	Mnemonic string
	Operands string
	Comment  string
	Pseudo   string // pseudocode rendering, empty for plain assembly output

	Flow      Flow
	Target    uint32 // statically known destination address
	HasTarget bool

	IOAddress uint16 // I/O register accessed by the instruction
	HasIO     bool
}

// Code returns the assembly text of the instruction.
func (i Instruction) Code() string {
	if i.Operands == "" {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + i.Operands
}

// IsCall returns whether the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Flow == Call
}
