// Package pattern implements instruction templates described as bit patterns,
// the matcher that extracts operand fields from a byte window and the resolver
// that picks the most specific matching template.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ID is the mnemonic identifier of a template. It is unique within a table and
// is used for superseding emitters and as the kind of cross-references.
type ID string

// FieldLetters is the alphabet of operand field placeholders that can be used
// in a template pattern next to the literal bits 0 and 1.
const FieldLetters = "drkKAqbs"

// Template size limits in bits.
const (
	MinBits = 16
	MaxBits = 48

	// MaxSize is the largest window in bytes that any template can consume.
	MaxSize = MaxBits / 8
)

var (
	// ErrMalformedTemplate is returned for patterns containing unknown symbols or
	// having an unsupported length.
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrDuplicateTemplate is returned when an id is registered twice.
	ErrDuplicateTemplate = errors.New("duplicate template")
	// ErrSupersedeTargetMissing is returned when superseding an unregistered id.
	ErrSupersedeTargetMissing = errors.New("supersede target missing")
)

// Template is a single instruction encoding. Its pattern is a sequence of
// literal bits and field letters, most significant bit of the first
// instruction word first.
type Template struct {
	id      ID
	symbols string // pattern without spaces
	literal int    // number of literal 0/1 symbols
}

// NewTemplate parses a pattern like "0001 11rd dddd rrrr". Spaces are ignored.
func NewTemplate(id ID, pattern string) (Template, error) {
	symbols := strings.ReplaceAll(pattern, " ", "")

	if len(symbols)%8 != 0 || len(symbols) < MinBits || len(symbols) > MaxBits {
		return Template{}, fmt.Errorf("%w: '%s' has %d bits, expected a multiple of 8 between %d and %d",
			ErrMalformedTemplate, id, len(symbols), MinBits, MaxBits)
	}

	literal := 0
	for i := range len(symbols) {
		sym := symbols[i]
		switch {
		case sym == '0' || sym == '1':
			literal++
		case strings.IndexByte(FieldLetters, sym) >= 0:
		default:
			return Template{}, fmt.Errorf("%w: '%s' has invalid symbol %q at bit %d",
				ErrMalformedTemplate, id, sym, i)
		}
	}

	return Template{
		id:      id,
		symbols: symbols,
		literal: literal,
	}, nil
}

// ID returns the mnemonic identifier of the template.
func (t Template) ID() ID {
	return t.id
}

// Bits returns the pattern length in bits.
func (t Template) Bits() int {
	return len(t.symbols)
}

// Size returns the number of bytes an instruction matching this template consumes.
func (t Template) Size() int {
	return len(t.symbols) / 8
}

// Specificity returns the number of literal bits of the pattern.
func (t Template) Specificity() int {
	return t.literal
}

// Pattern returns the pattern grouped in nibbles for display.
func (t Template) Pattern() string {
	var sb strings.Builder
	for i := range len(t.symbols) {
		if i > 0 && i%4 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(t.symbols[i])
	}
	return sb.String()
}

// Match tests the window against the template and returns the extracted
// operand fields on success. The window has to contain at least the bytes of
// the template, a shorter window never matches.
//
// Instruction words are stored little endian, so the byte holding template
// bit i is (i/8) XOR 1 and the bit inside of it is 7-(i%8). Changing this
// breaks the decoding of every multi byte template.
func (t Template) Match(window []byte) (Fields, bool) {
	var fields Fields

	needed := (t.Size() + 1) &^ 1 // the byte swap always reads complete words
	if len(window) < needed {
		return fields, false
	}

	for i := range len(t.symbols) {
		bit := uint32(window[(i/8)^1]>>(7-uint(i%8))) & 1

		sym := t.symbols[i]
		switch sym {
		case '0', '1':
			if bit != uint32(sym-'0') {
				return Fields{}, false
			}
		default:
			fields.push(strings.IndexByte(FieldLetters, sym), bit)
		}
	}
	return fields, true
}
