package avr

import (
	"fmt"

	"github.com/charlie-x/simget/internal/pattern"
)

// Format describes the operand shape of an opcode. The set of formats is
// closed, every variant is handled by formatOperands.
type Format interface {
	isFormat()
}

// NoOperands is used by opcodes without operands.
type NoOperands struct{}

// Register is a single register d, Offset is added to the field value.
type Register struct {
	Letter byte
	Offset uint32
}

// TwoRegisters is a destination register d and a source register r. The field
// values are multiplied by Scale and Offset is added.
type TwoRegisters struct {
	Offset uint32
	Scale  uint32
}

// Immediate is an upper half register d and an 8 bit constant K.
type Immediate struct{}

// WordImmediate is a register pair r24 to r30 and a 6 bit constant K.
type WordImmediate struct{}

// IORead is a register d and an I/O address A.
type IORead struct{}

// IOWrite is an I/O address A and a register r.
type IOWrite struct{}

// IOBit is a lower I/O address A and a bit number b.
type IOBit struct{}

// RegisterBit is a register and a bit number b.
type RegisterBit struct {
	Letter byte
}

// StatusBit is a status register bit number s.
type StatusBit struct{}

// RelativeJump is a signed 12 bit word offset k.
type RelativeJump struct{}

// RelativeBranch is a signed 7 bit word offset k, optionally preceded by the
// status register bit s.
type RelativeBranch struct {
	WithBit bool
}

// AbsoluteJump is a 22 bit word address k.
type AbsoluteJump struct{}

// PointerLoad loads register d through a pointer register expression.
type PointerLoad struct {
	Pointer string
}

// PointerStore stores register r through a pointer register expression.
type PointerStore struct {
	Pointer string
}

// DisplacementLoad loads register d from a pointer plus displacement q.
type DisplacementLoad struct {
	Pointer string
}

// DisplacementStore stores register r to a pointer plus displacement q.
type DisplacementStore struct {
	Pointer string
}

// DirectLoad loads register d from the 16 bit data address k.
type DirectLoad struct{}

// DirectStore stores register r to the 16 bit data address k.
type DirectStore struct{}

// PointerExchange is the Z pointer and a register r.
type PointerExchange struct{}

// Fixed is an operand text that does not depend on any field.
type Fixed struct {
	Text string
}

// Constant is a 4 bit constant K.
type Constant struct{}

func (NoOperands) isFormat()        {}
func (Register) isFormat()          {}
func (TwoRegisters) isFormat()      {}
func (Immediate) isFormat()         {}
func (WordImmediate) isFormat()     {}
func (IORead) isFormat()            {}
func (IOWrite) isFormat()           {}
func (IOBit) isFormat()             {}
func (RegisterBit) isFormat()       {}
func (StatusBit) isFormat()         {}
func (RelativeJump) isFormat()      {}
func (RelativeBranch) isFormat()    {}
func (AbsoluteJump) isFormat()      {}
func (PointerLoad) isFormat()       {}
func (PointerStore) isFormat()      {}
func (DisplacementLoad) isFormat()  {}
func (DisplacementStore) isFormat() {}
func (DirectLoad) isFormat()        {}
func (DirectStore) isFormat()       {}
func (PointerExchange) isFormat()   {}
func (Fixed) isFormat()             {}
func (Constant) isFormat()          {}

// operands is the result of formatting the fields of an instruction.
type operands struct {
	parts []string

	target    uint32
	hasTarget bool

	ioAddress uint16
	hasIO     bool
	comment   string
}

func formatOperands(format Format, fields pattern.Fields, ctx Context) operands {
	var ops operands

	switch f := format.(type) {
	case NoOperands:

	case Register:
		ops.parts = []string{register(fields.Get(f.Letter) + f.Offset)}

	case TwoRegisters:
		scale := max(f.Scale, 1)
		ops.parts = []string{
			register(fields.Get('d')*scale + f.Offset),
			register(fields.Get('r')*scale + f.Offset),
		}

	case Immediate:
		ops.parts = []string{register(fields.Get('d') + 16), hexByte(fields.Get('K'))}

	case WordImmediate:
		ops.parts = []string{register(24 + 2*fields.Get('d')), hexByte(fields.Get('K'))}

	case IORead:
		ops.parts = []string{register(fields.Get('d')), ops.io(ctx, fields.Get('A'))}

	case IOWrite:
		ops.parts = []string{ops.io(ctx, fields.Get('A')), register(fields.Get('r'))}

	case IOBit:
		ops.parts = []string{ops.io(ctx, fields.Get('A')), fmt.Sprintf("%d", fields.Get('b'))}

	case RegisterBit:
		ops.parts = []string{register(fields.Get(f.Letter)), fmt.Sprintf("%d", fields.Get('b'))}

	case StatusBit:
		ops.parts = []string{fmt.Sprintf("%d", fields.Get('s'))}

	case RelativeJump:
		ops.parts = []string{ops.relative(ctx, signExtend(fields.Get('k'), 12))}

	case RelativeBranch:
		target := ops.relative(ctx, signExtend(fields.Get('k'), 7))
		if f.WithBit {
			ops.parts = []string{fmt.Sprintf("%d", fields.Get('s')), target}
		} else {
			ops.parts = []string{target}
		}

	case AbsoluteJump:
		ops.target = fields.Get('k') * 2
		ops.hasTarget = true
		ops.parts = []string{ops.targetName(ctx)}

	case PointerLoad:
		ops.parts = []string{register(fields.Get('d')), f.Pointer}

	case PointerStore:
		ops.parts = []string{f.Pointer, register(fields.Get('r'))}

	case DisplacementLoad:
		ops.parts = []string{register(fields.Get('d')), fmt.Sprintf("%s+%d", f.Pointer, fields.Get('q'))}

	case DisplacementStore:
		ops.parts = []string{fmt.Sprintf("%s+%d", f.Pointer, fields.Get('q')), register(fields.Get('r'))}

	case DirectLoad:
		ops.parts = []string{register(fields.Get('d')), ops.data(ctx, fields.Get('k'))}

	case DirectStore:
		ops.parts = []string{ops.data(ctx, fields.Get('k')), register(fields.Get('r'))}

	case PointerExchange:
		ops.parts = []string{"Z", register(fields.Get('r'))}

	case Fixed:
		ops.parts = []string{f.Text}

	case Constant:
		ops.parts = []string{fmt.Sprintf("0x%x", fields.Get('K'))}
	}

	return ops
}

// relative sets the target of a relative word offset and returns its display text.
func (ops *operands) relative(ctx Context, offset int32) string {
	target := int64(ctx.Address) + int64(ctx.Size) + 2*int64(offset)

	switch {
	case ctx.MemorySize > 0:
		size := int64(ctx.MemorySize)
		target = (target%size + size) % size
	case target < 0:
		return fmt.Sprintf(".%+d", 2*int64(offset))
	}

	ops.target = uint32(target)
	ops.hasTarget = true
	return ops.targetName(ctx)
}

func (ops *operands) targetName(ctx Context) string {
	if ctx.Labels != nil {
		if name, ok := ctx.Labels.LabelName(ops.target); ok {
			return name
		}
	}
	return fmt.Sprintf("0x%04x", ops.target)
}

func (ops *operands) io(ctx Context, address uint32) string {
	ops.ioAddress = uint16(address)
	ops.hasIO = true

	if ctx.Registers != nil {
		if constant, ok := ctx.Registers.Get(uint16(address)); ok {
			return constant.Name
		}
	}
	return hexByte(address)
}

func (ops *operands) data(ctx Context, address uint32) string {
	if ctx.Registers != nil {
		if constant, ok := ctx.Registers.DataAddress(address); ok {
			ops.comment = constant.Name
		}
	}
	return fmt.Sprintf("0x%04x", address)
}

func register(n uint32) string {
	return fmt.Sprintf("r%d", n)
}

func hexByte(value uint32) string {
	return fmt.Sprintf("0x%02x", value)
}

// signExtend interprets the lowest bits of value as a two's complement number.
func signExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}
