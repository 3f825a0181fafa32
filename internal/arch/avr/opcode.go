package avr

import (
	"github.com/charlie-x/simget/internal/instruction"
	"github.com/charlie-x/simget/internal/pattern"
)

// Opcode is an instruction encoding with its rendering information.
type Opcode struct {
	ID       pattern.ID
	Mnemonic string
	Pattern  string
	Format   Format
	Flow     instruction.Flow
}

var (
	twoRegisters = TwoRegisters{}
	destination  = Register{Letter: 'd'}
	source       = Register{Letter: 'r'}
)

// Opcodes contains all supported AVR instruction encodings. Aliases with more
// literal bits than their base encoding, like breq for brbs 1, are resolved
// first because of their higher specificity.
var Opcodes = []Opcode{
	{ID: "nop", Mnemonic: "nop", Pattern: "0000 0000 0000 0000", Format: NoOperands{}},
	{ID: "movw", Mnemonic: "movw", Pattern: "0000 0001 dddd rrrr", Format: TwoRegisters{Scale: 2}},
	{ID: "muls", Mnemonic: "muls", Pattern: "0000 0010 dddd rrrr", Format: TwoRegisters{Offset: 16}},
	{ID: "mulsu", Mnemonic: "mulsu", Pattern: "0000 0011 0ddd 0rrr", Format: TwoRegisters{Offset: 16}},
	{ID: "fmul", Mnemonic: "fmul", Pattern: "0000 0011 0ddd 1rrr", Format: TwoRegisters{Offset: 16}},
	{ID: "fmuls", Mnemonic: "fmuls", Pattern: "0000 0011 1ddd 0rrr", Format: TwoRegisters{Offset: 16}},
	{ID: "fmulsu", Mnemonic: "fmulsu", Pattern: "0000 0011 1ddd 1rrr", Format: TwoRegisters{Offset: 16}},
	{ID: "cpc", Mnemonic: "cpc", Pattern: "0000 01rd dddd rrrr", Format: twoRegisters},
	{ID: "sbc", Mnemonic: "sbc", Pattern: "0000 10rd dddd rrrr", Format: twoRegisters},
	{ID: "add", Mnemonic: "add", Pattern: "0000 11rd dddd rrrr", Format: twoRegisters},
	{ID: "cpse", Mnemonic: "cpse", Pattern: "0001 00rd dddd rrrr", Format: twoRegisters, Flow: instruction.Skip},
	{ID: "cp", Mnemonic: "cp", Pattern: "0001 01rd dddd rrrr", Format: twoRegisters},
	{ID: "sub", Mnemonic: "sub", Pattern: "0001 10rd dddd rrrr", Format: twoRegisters},
	{ID: "adc", Mnemonic: "adc", Pattern: "0001 11rd dddd rrrr", Format: twoRegisters},
	{ID: "and", Mnemonic: "and", Pattern: "0010 00rd dddd rrrr", Format: twoRegisters},
	{ID: "eor", Mnemonic: "eor", Pattern: "0010 01rd dddd rrrr", Format: twoRegisters},
	{ID: "or", Mnemonic: "or", Pattern: "0010 10rd dddd rrrr", Format: twoRegisters},
	{ID: "mov", Mnemonic: "mov", Pattern: "0010 11rd dddd rrrr", Format: twoRegisters},
	{ID: "cpi", Mnemonic: "cpi", Pattern: "0011 KKKK dddd KKKK", Format: Immediate{}},
	{ID: "sbci", Mnemonic: "sbci", Pattern: "0100 KKKK dddd KKKK", Format: Immediate{}},
	{ID: "subi", Mnemonic: "subi", Pattern: "0101 KKKK dddd KKKK", Format: Immediate{}},
	{ID: "ori", Mnemonic: "ori", Pattern: "0110 KKKK dddd KKKK", Format: Immediate{}},
	{ID: "andi", Mnemonic: "andi", Pattern: "0111 KKKK dddd KKKK", Format: Immediate{}},

	{ID: "ldd_z", Mnemonic: "ldd", Pattern: "10q0 qq0d dddd 0qqq", Format: DisplacementLoad{Pointer: "Z"}},
	{ID: "ldd_y", Mnemonic: "ldd", Pattern: "10q0 qq0d dddd 1qqq", Format: DisplacementLoad{Pointer: "Y"}},
	{ID: "std_z", Mnemonic: "std", Pattern: "10q0 qq1r rrrr 0qqq", Format: DisplacementStore{Pointer: "Z"}},
	{ID: "std_y", Mnemonic: "std", Pattern: "10q0 qq1r rrrr 1qqq", Format: DisplacementStore{Pointer: "Y"}},
	{ID: "ld_z", Mnemonic: "ld", Pattern: "1000 000d dddd 0000", Format: PointerLoad{Pointer: "Z"}},
	{ID: "ld_y", Mnemonic: "ld", Pattern: "1000 000d dddd 1000", Format: PointerLoad{Pointer: "Y"}},
	{ID: "st_z", Mnemonic: "st", Pattern: "1000 001r rrrr 0000", Format: PointerStore{Pointer: "Z"}},
	{ID: "st_y", Mnemonic: "st", Pattern: "1000 001r rrrr 1000", Format: PointerStore{Pointer: "Y"}},

	{ID: "lds", Mnemonic: "lds", Pattern: "1001 000d dddd 0000 kkkk kkkk kkkk kkkk", Format: DirectLoad{}},
	{ID: "ld_z_inc", Mnemonic: "ld", Pattern: "1001 000d dddd 0001", Format: PointerLoad{Pointer: "Z+"}},
	{ID: "ld_z_dec", Mnemonic: "ld", Pattern: "1001 000d dddd 0010", Format: PointerLoad{Pointer: "-Z"}},
	{ID: "lpm_z", Mnemonic: "lpm", Pattern: "1001 000d dddd 0100", Format: PointerLoad{Pointer: "Z"}},
	{ID: "lpm_z_inc", Mnemonic: "lpm", Pattern: "1001 000d dddd 0101", Format: PointerLoad{Pointer: "Z+"}},
	{ID: "elpm_z", Mnemonic: "elpm", Pattern: "1001 000d dddd 0110", Format: PointerLoad{Pointer: "Z"}},
	{ID: "elpm_z_inc", Mnemonic: "elpm", Pattern: "1001 000d dddd 0111", Format: PointerLoad{Pointer: "Z+"}},
	{ID: "ld_y_inc", Mnemonic: "ld", Pattern: "1001 000d dddd 1001", Format: PointerLoad{Pointer: "Y+"}},
	{ID: "ld_y_dec", Mnemonic: "ld", Pattern: "1001 000d dddd 1010", Format: PointerLoad{Pointer: "-Y"}},
	{ID: "ld_x", Mnemonic: "ld", Pattern: "1001 000d dddd 1100", Format: PointerLoad{Pointer: "X"}},
	{ID: "ld_x_inc", Mnemonic: "ld", Pattern: "1001 000d dddd 1101", Format: PointerLoad{Pointer: "X+"}},
	{ID: "ld_x_dec", Mnemonic: "ld", Pattern: "1001 000d dddd 1110", Format: PointerLoad{Pointer: "-X"}},
	{ID: "pop", Mnemonic: "pop", Pattern: "1001 000d dddd 1111", Format: destination},

	{ID: "sts", Mnemonic: "sts", Pattern: "1001 001r rrrr 0000 kkkk kkkk kkkk kkkk", Format: DirectStore{}},
	{ID: "st_z_inc", Mnemonic: "st", Pattern: "1001 001r rrrr 0001", Format: PointerStore{Pointer: "Z+"}},
	{ID: "st_z_dec", Mnemonic: "st", Pattern: "1001 001r rrrr 0010", Format: PointerStore{Pointer: "-Z"}},
	{ID: "xch", Mnemonic: "xch", Pattern: "1001 001r rrrr 0100", Format: PointerExchange{}},
	{ID: "las", Mnemonic: "las", Pattern: "1001 001r rrrr 0101", Format: PointerExchange{}},
	{ID: "lac", Mnemonic: "lac", Pattern: "1001 001r rrrr 0110", Format: PointerExchange{}},
	{ID: "lat", Mnemonic: "lat", Pattern: "1001 001r rrrr 0111", Format: PointerExchange{}},
	{ID: "st_y_inc", Mnemonic: "st", Pattern: "1001 001r rrrr 1001", Format: PointerStore{Pointer: "Y+"}},
	{ID: "st_y_dec", Mnemonic: "st", Pattern: "1001 001r rrrr 1010", Format: PointerStore{Pointer: "-Y"}},
	{ID: "st_x", Mnemonic: "st", Pattern: "1001 001r rrrr 1100", Format: PointerStore{Pointer: "X"}},
	{ID: "st_x_inc", Mnemonic: "st", Pattern: "1001 001r rrrr 1101", Format: PointerStore{Pointer: "X+"}},
	{ID: "st_x_dec", Mnemonic: "st", Pattern: "1001 001r rrrr 1110", Format: PointerStore{Pointer: "-X"}},
	{ID: "push", Mnemonic: "push", Pattern: "1001 001r rrrr 1111", Format: source},

	{ID: "com", Mnemonic: "com", Pattern: "1001 010d dddd 0000", Format: destination},
	{ID: "neg", Mnemonic: "neg", Pattern: "1001 010d dddd 0001", Format: destination},
	{ID: "swap", Mnemonic: "swap", Pattern: "1001 010d dddd 0010", Format: destination},
	{ID: "inc", Mnemonic: "inc", Pattern: "1001 010d dddd 0011", Format: destination},
	{ID: "asr", Mnemonic: "asr", Pattern: "1001 010d dddd 0101", Format: destination},
	{ID: "lsr", Mnemonic: "lsr", Pattern: "1001 010d dddd 0110", Format: destination},
	{ID: "ror", Mnemonic: "ror", Pattern: "1001 010d dddd 0111", Format: destination},
	{ID: "dec", Mnemonic: "dec", Pattern: "1001 010d dddd 1010", Format: destination},
	{ID: "des", Mnemonic: "des", Pattern: "1001 0100 KKKK 1011", Format: Constant{}},

	{ID: "bset", Mnemonic: "bset", Pattern: "1001 0100 0sss 1000", Format: StatusBit{}},
	{ID: "bclr", Mnemonic: "bclr", Pattern: "1001 0100 1sss 1000", Format: StatusBit{}},
	{ID: "sec", Mnemonic: "sec", Pattern: "1001 0100 0000 1000", Format: NoOperands{}},
	{ID: "sez", Mnemonic: "sez", Pattern: "1001 0100 0001 1000", Format: NoOperands{}},
	{ID: "sen", Mnemonic: "sen", Pattern: "1001 0100 0010 1000", Format: NoOperands{}},
	{ID: "sev", Mnemonic: "sev", Pattern: "1001 0100 0011 1000", Format: NoOperands{}},
	{ID: "ses", Mnemonic: "ses", Pattern: "1001 0100 0100 1000", Format: NoOperands{}},
	{ID: "seh", Mnemonic: "seh", Pattern: "1001 0100 0101 1000", Format: NoOperands{}},
	{ID: "set", Mnemonic: "set", Pattern: "1001 0100 0110 1000", Format: NoOperands{}},
	{ID: "sei", Mnemonic: "sei", Pattern: "1001 0100 0111 1000", Format: NoOperands{}},
	{ID: "clc", Mnemonic: "clc", Pattern: "1001 0100 1000 1000", Format: NoOperands{}},
	{ID: "clz", Mnemonic: "clz", Pattern: "1001 0100 1001 1000", Format: NoOperands{}},
	{ID: "cln", Mnemonic: "cln", Pattern: "1001 0100 1010 1000", Format: NoOperands{}},
	{ID: "clv", Mnemonic: "clv", Pattern: "1001 0100 1011 1000", Format: NoOperands{}},
	{ID: "cls", Mnemonic: "cls", Pattern: "1001 0100 1100 1000", Format: NoOperands{}},
	{ID: "clh", Mnemonic: "clh", Pattern: "1001 0100 1101 1000", Format: NoOperands{}},
	{ID: "clt", Mnemonic: "clt", Pattern: "1001 0100 1110 1000", Format: NoOperands{}},
	{ID: "cli", Mnemonic: "cli", Pattern: "1001 0100 1111 1000", Format: NoOperands{}},

	{ID: "ijmp", Mnemonic: "ijmp", Pattern: "1001 0100 0000 1001", Format: NoOperands{}, Flow: instruction.Indirect},
	{ID: "eijmp", Mnemonic: "eijmp", Pattern: "1001 0100 0001 1001", Format: NoOperands{}, Flow: instruction.Indirect},
	{ID: "icall", Mnemonic: "icall", Pattern: "1001 0101 0000 1001", Format: NoOperands{}, Flow: instruction.Indirect},
	{ID: "eicall", Mnemonic: "eicall", Pattern: "1001 0101 0001 1001", Format: NoOperands{}, Flow: instruction.Indirect},
	{ID: "ret", Mnemonic: "ret", Pattern: "1001 0101 0000 1000", Format: NoOperands{}, Flow: instruction.Return},
	{ID: "reti", Mnemonic: "reti", Pattern: "1001 0101 0001 1000", Format: NoOperands{}, Flow: instruction.Return},
	{ID: "sleep", Mnemonic: "sleep", Pattern: "1001 0101 1000 1000", Format: NoOperands{}},
	{ID: "break", Mnemonic: "break", Pattern: "1001 0101 1001 1000", Format: NoOperands{}},
	{ID: "wdr", Mnemonic: "wdr", Pattern: "1001 0101 1010 1000", Format: NoOperands{}},
	{ID: "lpm", Mnemonic: "lpm", Pattern: "1001 0101 1100 1000", Format: NoOperands{}},
	{ID: "elpm", Mnemonic: "elpm", Pattern: "1001 0101 1101 1000", Format: NoOperands{}},
	{ID: "spm", Mnemonic: "spm", Pattern: "1001 0101 1110 1000", Format: NoOperands{}},
	{ID: "spm_z_inc", Mnemonic: "spm", Pattern: "1001 0101 1111 1000", Format: Fixed{Text: "Z+"}},

	{ID: "jmp", Mnemonic: "jmp", Pattern: "1001 010k kkkk 110k kkkk kkkk kkkk kkkk", Format: AbsoluteJump{}, Flow: instruction.Jump},
	{ID: "call", Mnemonic: "call", Pattern: "1001 010k kkkk 111k kkkk kkkk kkkk kkkk", Format: AbsoluteJump{}, Flow: instruction.Call},

	{ID: "adiw", Mnemonic: "adiw", Pattern: "1001 0110 KKdd KKKK", Format: WordImmediate{}},
	{ID: "sbiw", Mnemonic: "sbiw", Pattern: "1001 0111 KKdd KKKK", Format: WordImmediate{}},
	{ID: "cbi", Mnemonic: "cbi", Pattern: "1001 1000 AAAA Abbb", Format: IOBit{}},
	{ID: "sbic", Mnemonic: "sbic", Pattern: "1001 1001 AAAA Abbb", Format: IOBit{}, Flow: instruction.Skip},
	{ID: "sbi", Mnemonic: "sbi", Pattern: "1001 1010 AAAA Abbb", Format: IOBit{}},
	{ID: "sbis", Mnemonic: "sbis", Pattern: "1001 1011 AAAA Abbb", Format: IOBit{}, Flow: instruction.Skip},
	{ID: "mul", Mnemonic: "mul", Pattern: "1001 11rd dddd rrrr", Format: twoRegisters},

	{ID: "in", Mnemonic: "in", Pattern: "1011 0AAd dddd AAAA", Format: IORead{}},
	{ID: "out", Mnemonic: "out", Pattern: "1011 1AAr rrrr AAAA", Format: IOWrite{}},

	{ID: "rjmp", Mnemonic: "rjmp", Pattern: "1100 kkkk kkkk kkkk", Format: RelativeJump{}, Flow: instruction.Jump},
	{ID: "rcall", Mnemonic: "rcall", Pattern: "1101 kkkk kkkk kkkk", Format: RelativeJump{}, Flow: instruction.Call},
	{ID: "ldi", Mnemonic: "ldi", Pattern: "1110 KKKK dddd KKKK", Format: Immediate{}},
	{ID: "ser", Mnemonic: "ser", Pattern: "1110 1111 dddd 1111", Format: Register{Letter: 'd', Offset: 16}},

	{ID: "brbs", Mnemonic: "brbs", Pattern: "1111 00kk kkkk ksss", Format: RelativeBranch{WithBit: true}, Flow: instruction.Branch},
	{ID: "brbc", Mnemonic: "brbc", Pattern: "1111 01kk kkkk ksss", Format: RelativeBranch{WithBit: true}, Flow: instruction.Branch},
	{ID: "brcs", Mnemonic: "brcs", Pattern: "1111 00kk kkkk k000", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "breq", Mnemonic: "breq", Pattern: "1111 00kk kkkk k001", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brmi", Mnemonic: "brmi", Pattern: "1111 00kk kkkk k010", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brvs", Mnemonic: "brvs", Pattern: "1111 00kk kkkk k011", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brlt", Mnemonic: "brlt", Pattern: "1111 00kk kkkk k100", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brhs", Mnemonic: "brhs", Pattern: "1111 00kk kkkk k101", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brts", Mnemonic: "brts", Pattern: "1111 00kk kkkk k110", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brie", Mnemonic: "brie", Pattern: "1111 00kk kkkk k111", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brcc", Mnemonic: "brcc", Pattern: "1111 01kk kkkk k000", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brne", Mnemonic: "brne", Pattern: "1111 01kk kkkk k001", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brpl", Mnemonic: "brpl", Pattern: "1111 01kk kkkk k010", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brvc", Mnemonic: "brvc", Pattern: "1111 01kk kkkk k011", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brge", Mnemonic: "brge", Pattern: "1111 01kk kkkk k100", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brhc", Mnemonic: "brhc", Pattern: "1111 01kk kkkk k101", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brtc", Mnemonic: "brtc", Pattern: "1111 01kk kkkk k110", Format: RelativeBranch{}, Flow: instruction.Branch},
	{ID: "brid", Mnemonic: "brid", Pattern: "1111 01kk kkkk k111", Format: RelativeBranch{}, Flow: instruction.Branch},

	{ID: "bld", Mnemonic: "bld", Pattern: "1111 100d dddd 0bbb", Format: RegisterBit{Letter: 'd'}},
	{ID: "bst", Mnemonic: "bst", Pattern: "1111 101d dddd 0bbb", Format: RegisterBit{Letter: 'd'}},
	{ID: "sbrc", Mnemonic: "sbrc", Pattern: "1111 110r rrrr 0bbb", Format: RegisterBit{Letter: 'r'}, Flow: instruction.Skip},
	{ID: "sbrs", Mnemonic: "sbrs", Pattern: "1111 111r rrrr 0bbb", Format: RegisterBit{Letter: 'r'}, Flow: instruction.Skip},
}
