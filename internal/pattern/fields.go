package pattern

import "strings"

// Fields holds the operand field values extracted by one match attempt.
// Bits of a letter are accumulated most significant bit first in the order the
// letter appears in the template.
type Fields struct {
	values [len(FieldLetters)]uint32
	used   uint8
}

// Get returns the value of the field letter, 0 if the template has no such field.
func (f Fields) Get(letter byte) uint32 {
	slot := strings.IndexByte(FieldLetters, letter)
	if slot < 0 {
		return 0
	}
	return f.values[slot]
}

// Has returns whether the template contained the field letter.
func (f Fields) Has(letter byte) bool {
	slot := strings.IndexByte(FieldLetters, letter)
	if slot < 0 {
		return false
	}
	return f.used&(1<<slot) != 0
}

func (f *Fields) push(slot int, bit uint32) {
	f.values[slot] = f.values[slot]<<1 | bit
	f.used |= 1 << slot
}

// NewFields returns fields with the given values set, mostly useful for tests
// of emitters.
func NewFields(values map[byte]uint32) Fields {
	var f Fields
	for letter, value := range values {
		slot := strings.IndexByte(FieldLetters, letter)
		if slot < 0 {
			continue
		}
		f.values[slot] = value
		f.used |= 1 << slot
	}
	return f
}
