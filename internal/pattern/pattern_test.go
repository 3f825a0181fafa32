package pattern

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		bits        int
		specificity int
		wantErr     bool
	}{
		{"16 bit with fields", "0001 11rd dddd rrrr", 16, 6, false},
		{"16 bit literal only", "1001 0101 0000 1000", 16, 16, false},
		{"32 bit", "1001 010k kkkk 111k kkkk kkkk kkkk kkkk", 32, 10, false},
		{"48 bit", "1111 0000 0000 0000 kkkk kkkk kkkk kkkk 0000 0000 KKKK KKKK", 48, 24, false},
		{"unknown symbol", "0001 11rd dddd rrrx", 0, 0, true},
		{"too short", "0001 11rd", 0, 0, true},
		{"not a multiple of 8", "0001 11rd dddd rrr", 0, 0, true},
		{"too long", "0000 0000 0000 0000 0000 0000 0000 0000 0000 0000 0000 0000 0000 0000", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewTemplate("test", tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedTemplate))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.bits, tmpl.Bits())
			assert.Equal(t, tt.bits/8, tmpl.Size())
			assert.Equal(t, tt.specificity, tmpl.Specificity())
			assert.Equal(t, tt.pattern, tmpl.Pattern())
		})
	}
}

func TestTemplateMatchFieldReconstruction(t *testing.T) {
	tmpl, err := NewTemplate("adc", "0001 11rd dddd rrrr")
	assert.NoError(t, err)

	tests := []struct {
		name   string
		window []byte
		d      uint32
		r      uint32
	}{
		{"adc r31, r31", []byte{0xFF, 0x1F}, 31, 31},
		{"adc r21, r31", []byte{0x5F, 0x1F}, 21, 31},
		{"adc r0, r0", []byte{0x00, 0x1C}, 0, 0},
		{"adc r16, r1", []byte{0x01, 0x1D}, 16, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, ok := tmpl.Match(tt.window)
			assert.True(t, ok)
			assert.Equal(t, tt.d, fields.Get('d'))
			assert.Equal(t, tt.r, fields.Get('r'))
			assert.True(t, fields.Has('d'))
			assert.False(t, fields.Has('k'))
		})
	}
}

func TestTemplateMatchByteSwap(t *testing.T) {
	// the same word in big endian order must not match
	tmpl, err := NewTemplate("adc", "0001 11rd dddd rrrr")
	assert.NoError(t, err)

	_, ok := tmpl.Match([]byte{0x1F, 0xFF})
	assert.False(t, ok)
}

func TestTemplateMatchLiteralOnly(t *testing.T) {
	tmpl, err := NewTemplate("ret", "1001 0101 0000 1000")
	assert.NoError(t, err)

	window := make([]byte, 2)
	for w := range 0x10000 {
		window[0] = byte(w)
		window[1] = byte(w >> 8)
		_, ok := tmpl.Match(window)
		assert.Equal(t, w == 0x9508, ok)
	}
}

func TestTemplateMatchMultiWord(t *testing.T) {
	tmpl, err := NewTemplate("wide", "1111 0000 0000 0000 kkkk kkkk kkkk kkkk 0000 0000 KKKK KKKK")
	assert.NoError(t, err)

	window := []byte{0x00, 0xF0, 0x34, 0x12, 0xAB, 0x00}
	fields, ok := tmpl.Match(window)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x1234), fields.Get('k'))
	assert.Equal(t, uint32(0xAB), fields.Get('K'))
	assert.Equal(t, 6, tmpl.Size())

	_, ok = tmpl.Match(window[:4])
	assert.False(t, ok)
}

func TestTemplateMatchShortWindow(t *testing.T) {
	tmpl, err := NewTemplate("call", "1001 010k kkkk 111k kkkk kkkk kkkk kkkk")
	assert.NoError(t, err)

	_, ok := tmpl.Match([]byte{0x0E, 0x94})
	assert.False(t, ok)
	_, ok = tmpl.Match(nil)
	assert.False(t, ok)

	fields, ok := tmpl.Match([]byte{0x0E, 0x94, 0x34, 0x12})
	assert.True(t, ok)
	assert.Equal(t, uint32(0x1234), fields.Get('k'))
}

func TestBuilderSpecificityOrder(t *testing.T) {
	b := NewBuilder[string]()
	assert.NoError(t, b.Register("generic", "1001 kkkk kkkk kkkk", "generic"))
	assert.NoError(t, b.Register("specific", "1001 0101 0000 1000", "specific"))
	assert.NoError(t, b.Register("other", "0000 0000 0000 0000", "other"))

	table, err := b.Build()
	assert.NoError(t, err)

	// most literal bits first, equal specificity keeps registration order
	assert.Equal(t, []int{1, 2, 0}, table.Order())

	index, _, ok := table.Resolve([]byte{0x08, 0x95})
	assert.True(t, ok)
	assert.Equal(t, "specific", table.Emitter(index))

	index, fields, ok := table.Resolve([]byte{0x09, 0x95})
	assert.True(t, ok)
	assert.Equal(t, "generic", table.Emitter(index))
	assert.Equal(t, uint32(0x509), fields.Get('k'))
}

func TestBuilderEqualSpecificity(t *testing.T) {
	b := NewBuilder[int]()
	assert.NoError(t, b.Register("first", "1111 00kk kkkk k000", 1))
	assert.NoError(t, b.Register("second", "1111 00kk kkkk kkk0", 2))
	assert.NoError(t, b.Register("third", "1111 00kk kkkk k000", 3))

	table, err := b.Build()
	assert.NoError(t, err)

	index, _, ok := table.Resolve([]byte{0x00, 0xF0})
	assert.True(t, ok)
	assert.Equal(t, 1, table.Emitter(index))
}

func TestResolveDeterministic(t *testing.T) {
	b := NewBuilder[int]()
	assert.NoError(t, b.Register("a", "0000 11rd dddd rrrr", 1))
	assert.NoError(t, b.Register("b", "0000 1100 0000 0000", 2))
	assert.NoError(t, b.Register("c", "1100 kkkk kkkk kkkk", 3))
	table, err := b.Build()
	assert.NoError(t, err)

	window := make([]byte, 2)
	for w := range 0x10000 {
		window[0] = byte(w)
		window[1] = byte(w >> 8)

		first, fields1, ok1 := table.Resolve(window)
		second, fields2, ok2 := table.Resolve(window)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second)
		assert.Equal(t, fields1, fields2)
	}
}

func TestResolveUnknown(t *testing.T) {
	b := NewBuilder[int]()
	assert.NoError(t, b.Register("ret", "1001 0101 0000 1000", 1))
	table, err := b.Build()
	assert.NoError(t, err)

	_, _, ok := table.Resolve([]byte{0xFF, 0xFF})
	assert.False(t, ok)
	_, _, ok = table.Resolve([]byte{0x08})
	assert.False(t, ok)
}

func TestBuilderSupersede(t *testing.T) {
	b := NewBuilder[string]()
	assert.NoError(t, b.Register("ret", "1001 0101 0000 1000", "raw"))

	err := b.Supersede("reti", "pseudo")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSupersedeTargetMissing))

	table, err := b.Build()
	assert.NoError(t, err)
	index, ok := table.Lookup("ret")
	assert.True(t, ok)
	assert.Equal(t, "raw", table.Emitter(index))

	assert.NoError(t, b.Supersede("ret", "pseudo"))
	superseded, err := b.Build()
	assert.NoError(t, err)
	assert.Equal(t, "pseudo", superseded.Emitter(index))
	assert.Equal(t, "raw", table.Emitter(index))
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder[int]()
	assert.NoError(t, b.Register("ret", "1001 0101 0000 1000", 1))
	assert.Error(t, b.Register("ret", "1001 0101 0001 1000", 2))
	assert.Error(t, b.Register("bad", "1001 0101 0000 100z", 3))

	table, err := b.Build()
	assert.True(t, table == nil)
	assert.True(t, errors.Is(err, ErrDuplicateTemplate))
	assert.True(t, errors.Is(err, ErrMalformedTemplate))
}
