package avr

import "github.com/charlie-x/simget/internal/pattern"

// pseudoForms contains the pseudocode rendering of opcodes. Opcodes without an
// entry keep their assembly emitter.
var pseudoForms = map[pattern.ID]string{
	"movw":      "$1 pair = $2 pair",
	"muls":      "r1:r0 = $1 * $2",
	"mulsu":     "r1:r0 = $1 * $2",
	"mul":       "r1:r0 = $1 * $2",
	"cpc":       "compare $1, $2 + C",
	"sbc":       "$1 -= $2 + C",
	"add":       "$1 += $2",
	"cpse":      "if ($1 == $2) skip",
	"cp":        "compare $1, $2",
	"sub":       "$1 -= $2",
	"adc":       "$1 += $2 + C",
	"and":       "$1 &= $2",
	"eor":       "$1 ^= $2",
	"or":        "$1 |= $2",
	"mov":       "$1 = $2",
	"cpi":       "compare $1, $2",
	"sbci":      "$1 -= $2 + C",
	"subi":      "$1 -= $2",
	"ori":       "$1 |= $2",
	"andi":      "$1 &= $2",
	"ldi":       "$1 = $2",
	"ser":       "$1 = 0xff",
	"ldd_y":     "$1 = *($2)",
	"ldd_z":     "$1 = *($2)",
	"std_y":     "*($1) = $2",
	"std_z":     "*($1) = $2",
	"ld_x":      "$1 = *X",
	"ld_y":      "$1 = *Y",
	"ld_z":      "$1 = *Z",
	"st_x":      "*X = $2",
	"st_y":      "*Y = $2",
	"st_z":      "*Z = $2",
	"ld_x_inc":  "$1 = *X++",
	"ld_y_inc":  "$1 = *Y++",
	"ld_z_inc":  "$1 = *Z++",
	"ld_x_dec":  "$1 = *--X",
	"ld_y_dec":  "$1 = *--Y",
	"ld_z_dec":  "$1 = *--Z",
	"st_x_inc":  "*X++ = $2",
	"st_y_inc":  "*Y++ = $2",
	"st_z_inc":  "*Z++ = $2",
	"st_x_dec":  "*--X = $2",
	"st_y_dec":  "*--Y = $2",
	"st_z_dec":  "*--Z = $2",
	"lds":       "$1 = *$2",
	"sts":       "*$1 = $2",
	"lpm_z":     "$1 = flash[Z]",
	"lpm_z_inc": "$1 = flash[Z++]",
	"push":      "push $1",
	"pop":       "$1 = pop",
	"com":       "$1 = ~$1",
	"neg":       "$1 = -$1",
	"swap":      "$1 = swap nibbles $1",
	"inc":       "$1++",
	"dec":       "$1--",
	"asr":       "$1 >>= 1 (signed)",
	"lsr":       "$1 >>= 1",
	"ror":       "$1 = C:$1 >> 1",
	"adiw":      "$1 pair += $2",
	"sbiw":      "$1 pair -= $2",
	"in":        "$1 = $2",
	"out":       "$1 = $2",
	"cbi":       "$1 &= ~(1 << $2)",
	"sbi":       "$1 |= 1 << $2",
	"sbic":      "if (!($1 & (1 << $2))) skip",
	"sbis":      "if ($1 & (1 << $2)) skip",
	"sbrc":      "if (!($1 & (1 << $2))) skip",
	"sbrs":      "if ($1 & (1 << $2)) skip",
	"bld":       "$1.$2 = T",
	"bst":       "T = $1.$2",
	"sei":       "interrupts enable",
	"cli":       "interrupts disable",
	"rjmp":      "goto $1",
	"jmp":       "goto $1",
	"rcall":     "$1()",
	"call":      "$1()",
	"ijmp":      "goto Z",
	"icall":     "Z()",
	"ret":       "return",
	"reti":      "return from interrupt",
	"brbs":      "if (SREG & (1 << $1)) goto $2",
	"brbc":      "if (!(SREG & (1 << $1))) goto $2",
	"brcs":      "if (C) goto $1",
	"breq":      "if (Z) goto $1",
	"brmi":      "if (N) goto $1",
	"brvs":      "if (V) goto $1",
	"brlt":      "if (S) goto $1",
	"brhs":      "if (H) goto $1",
	"brts":      "if (T) goto $1",
	"brie":      "if (I) goto $1",
	"brcc":      "if (!C) goto $1",
	"brne":      "if (!Z) goto $1",
	"brpl":      "if (!N) goto $1",
	"brvc":      "if (!V) goto $1",
	"brge":      "if (!S) goto $1",
	"brhc":      "if (!H) goto $1",
	"brtc":      "if (!T) goto $1",
	"brid":      "if (!I) goto $1",
}
