package consts

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/set"
)

func TestNew(t *testing.T) {
	t.Run("default mcu", func(t *testing.T) {
		c, err := New("")
		assert.NoError(t, err)
		assert.Equal(t, DefaultMCU, c.MCU().Name)
		assert.Equal(t, 4096, c.MCU().FlashSize)
	})

	t.Run("case insensitive", func(t *testing.T) {
		c, err := New("ATmega328P")
		assert.NoError(t, err)
		assert.Equal(t, "atmega328p", c.MCU().Name)
	})

	t.Run("unsupported mcu", func(t *testing.T) {
		c, err := New("z80")
		assert.Error(t, err)
		assert.True(t, c == nil)
	})
}

func TestGet(t *testing.T) {
	c, err := New("atmega328p")
	assert.NoError(t, err)

	tests := []struct {
		name    string
		address uint16
		want    string
		found   bool
	}{
		{"port register", 0x05, "PORTB", true},
		{"core register", 0x3F, "SREG", true},
		{"stack pointer", 0x3D, "SPL", true},
		{"unnamed", 0x01, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constant, ok := c.Get(tt.address)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, constant.Name)
		})
	}
}

func TestDataAddress(t *testing.T) {
	c, err := New("attiny4313")
	assert.NoError(t, err)

	constant, ok := c.DataAddress(0x38)
	assert.True(t, ok)
	assert.Equal(t, "PORTB", constant.Name)

	_, ok = c.DataAddress(0x1F)
	assert.False(t, ok)
	_, ok = c.DataAddress(0x60)
	assert.False(t, ok)
}

func TestGenericHasCoreRegistersOnly(t *testing.T) {
	c, err := New("generic")
	assert.NoError(t, err)

	_, ok := c.Get(0x18)
	assert.False(t, ok)
	constant, ok := c.Get(0x3E)
	assert.True(t, ok)
	assert.Equal(t, "SPH", constant.Name)
}

func TestSorted(t *testing.T) {
	c, err := New("attiny4313")
	assert.NoError(t, err)

	used := set.New[uint16]()
	used.Add(0x3F)
	used.Add(0x18)
	used.Add(0x07) // no name

	sorted := c.Sorted(used)
	assert.Equal(t, 2, len(sorted))
	assert.Equal(t, "PORTB", sorted[0].Name)
	assert.Equal(t, "SREG", sorted[1].Name)
}

func TestMCUs(t *testing.T) {
	assert.Equal(t, []string{"atmega328p", "attiny4313", "generic"}, MCUs())
}
