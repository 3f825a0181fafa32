package program

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLine_IsType(t *testing.T) {
	line := &Line{}
	assert.True(t, line.Type == UnknownOffset)

	line.SetType(CodeOffset)
	assert.True(t, line.IsType(CodeOffset))
	assert.False(t, line.IsType(DataOffset))

	line.SetType(CurrentInstruction)
	assert.True(t, line.IsType(CodeOffset))
	assert.True(t, line.IsType(CurrentInstruction))
}

func TestLine_Code(t *testing.T) {
	line := Line{Mnemonic: "ret"}
	assert.Equal(t, "ret", line.Code())

	line = Line{Mnemonic: "ldi", Operands: "r16, 0x12"}
	assert.Equal(t, "ldi r16, 0x12", line.Code())
}

func TestLine_HexCodeComment(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "one word",
			data:     []byte{0x08, 0x95},
			expected: "08 95",
		},
		{
			name:     "two words",
			data:     []byte{0x0E, 0x94, 0x1A, 0x09},
			expected: "0E 94 1A 09",
		},
		{
			name:     "empty data",
			data:     []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := &Line{Bytes: tt.data}
			assert.Equal(t, tt.expected, line.HexCodeComment())
			assert.Equal(t, len(tt.data), line.Width())
		})
	}
}
