package avr

import (
	"errors"
	"fmt"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/consts"
	"github.com/charlie-x/simget/internal/instruction"
	"github.com/charlie-x/simget/internal/pattern"
	"github.com/retroenv/retrogolib/log"
)

// wordSize is the size of an AVR instruction word and the number of bytes
// skipped for an unrecognized encoding.
const wordSize = 2

// Compile-time check to ensure AVR implements arch.Architecture.
var _ arch.Architecture = (*AVR)(nil)

// Options configure the decoder.
type Options struct {
	// Pseudo enables the pseudocode rendering for all opcodes that have one.
	Pseudo bool
	// Registers translates I/O addresses to register names, can be nil.
	Registers *consts.Consts
	// MemorySize is the program memory size that relative jumps wrap around.
	MemorySize int
}

// AVR implements the arch.Architecture interface for 8-bit AVR microcontrollers.
// It is immutable after creation and safe for concurrent use.
type AVR struct {
	table      *pattern.Table[Emitter]
	registers  *consts.Consts
	memorySize int
}

// New builds the template table of all AVR opcodes.
func New(logger *log.Logger, opts Options) (*AVR, error) {
	builder, err := newBuilder(Opcodes)
	if err != nil {
		return nil, err
	}

	if opts.Pseudo {
		supersedePseudo(logger, builder, pseudoForms)
	}

	table, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building avr opcode table: %w", err)
	}

	return &AVR{
		table:      table,
		registers:  opts.Registers,
		memorySize: opts.MemorySize,
	}, nil
}

func newBuilder(opcodes []Opcode) (*pattern.Builder[Emitter], error) {
	builder := pattern.NewBuilder[Emitter]()
	var errs []error
	for _, op := range opcodes {
		if err := builder.Register(op.ID, op.Pattern, asmEmitter{opcode: op}); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("registering avr opcodes: %w", errors.Join(errs...))
	}
	return builder, nil
}

// supersedePseudo installs the pseudocode emitters. An unknown opcode is a
// configuration error that is logged, the opcode keeps its assembly emitter.
func supersedePseudo(logger *log.Logger, builder *pattern.Builder[Emitter], forms map[pattern.ID]string) {
	byID := make(map[pattern.ID]Opcode, len(Opcodes))
	for _, op := range Opcodes {
		byID[op.ID] = op
	}

	for id, form := range forms {
		emitter := pseudoEmitter{
			asmEmitter: asmEmitter{opcode: byID[id]},
			form:       form,
		}
		if err := builder.Supersede(id, emitter); err != nil {
			logger.Warn("Superseding opcode emitter failed", log.String("opcode", string(id)), log.Err(err))
		}
	}
}

// Name returns the name of the architecture.
func (a *AVR) Name() string {
	return "avr"
}

// Decode resolves the instruction at the start of the window and renders it.
func (a *AVR) Decode(window []byte, address uint32, labels arch.LabelLookup) (instruction.Instruction, bool) {
	index, fields, ok := a.table.Resolve(window)
	if !ok {
		return instruction.Instruction{}, false
	}

	tmpl := a.table.Template(index)
	ctx := Context{
		Address:    address,
		Size:       tmpl.Size(),
		MemorySize: a.memorySize,
		Registers:  a.registers,
		Labels:     labels,
	}

	ins := a.table.Emitter(index).Emit(fields, ctx)
	ins.Template = index
	ins.Length = tmpl.Size()
	return ins, true
}

// FallbackSize returns the number of bytes skipped for an unrecognized encoding.
func (a *AVR) FallbackSize() int {
	return wordSize
}

// MaxInstructionSize returns the size of the longest registered template.
func (a *AVR) MaxInstructionSize() int {
	size := wordSize
	for i := range a.table.Len() {
		size = max(size, a.table.Template(i).Size())
	}
	return size
}

// Opcodes returns all opcodes in resolution order.
func (a *AVR) Opcodes() []arch.Opcode {
	order := a.table.Order()
	opcodes := make([]arch.Opcode, 0, len(order))
	for _, i := range order {
		tmpl := a.table.Template(i)
		op := Opcodes[i]
		opcodes = append(opcodes, arch.Opcode{
			ID:          string(tmpl.ID()),
			Mnemonic:    op.Mnemonic,
			Pattern:     tmpl.Pattern(),
			Size:        tmpl.Size(),
			Specificity: tmpl.Specificity(),
			Flow:        op.Flow.String(),
		})
	}
	return opcodes
}
