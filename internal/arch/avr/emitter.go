package avr

import (
	"strconv"
	"strings"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/consts"
	"github.com/charlie-x/simget/internal/instruction"
	"github.com/charlie-x/simget/internal/pattern"
)

// Context is the decoding state passed to an emitter.
type Context struct {
	Address    uint32
	Size       int // instruction size in bytes
	MemorySize int // program memory size for wrapping relative targets, 0 disables wrapping

	Registers *consts.Consts   // optional I/O register names
	Labels    arch.LabelLookup // optional label names for branch targets
}

// Emitter renders a matched template into an instruction.
type Emitter interface {
	Emit(fields pattern.Fields, ctx Context) instruction.Instruction
}

// asmEmitter renders plain assembly.
type asmEmitter struct {
	opcode Opcode
}

func (e asmEmitter) Emit(fields pattern.Fields, ctx Context) instruction.Instruction {
	ins, _ := e.render(fields, ctx)
	return ins
}

func (e asmEmitter) render(fields pattern.Fields, ctx Context) (instruction.Instruction, []string) {
	ops := formatOperands(e.opcode.Format, fields, ctx)

	ins := instruction.Instruction{
		Address:   ctx.Address,
		Length:    ctx.Size,
		ID:        e.opcode.ID,
		Mnemonic:  e.opcode.Mnemonic,
		Operands:  strings.Join(ops.parts, ", "),
		Comment:   ops.comment,
		Flow:      e.opcode.Flow,
		Target:    ops.target,
		HasTarget: ops.hasTarget,
		IOAddress: ops.ioAddress,
		HasIO:     ops.hasIO,
	}
	return ins, ops.parts
}

// pseudoEmitter renders assembly annotated with a C like pseudocode line.
// The form references operands as $1 to $9.
type pseudoEmitter struct {
	asmEmitter
	form string
}

func (e pseudoEmitter) Emit(fields pattern.Fields, ctx Context) instruction.Instruction {
	ins, parts := e.render(fields, ctx)
	ins.Pseudo = expandPseudo(e.form, parts)
	return ins
}

func expandPseudo(form string, parts []string) string {
	var sb strings.Builder
	for i := 0; i < len(form); i++ {
		c := form[i]
		if c != '$' || i+1 >= len(form) || form[i+1] < '1' || form[i+1] > '9' {
			sb.WriteByte(c)
			continue
		}

		i++
		n, _ := strconv.Atoi(form[i : i+1])
		if n <= len(parts) {
			sb.WriteString(parts[n-1])
		}
	}
	return sb.String()
}
