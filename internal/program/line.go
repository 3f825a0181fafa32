package program

import (
	"fmt"
	"strings"
)

// LineType defines the type of a listing line.
type LineType uint8

// line types.
const (
	UnknownOffset LineType = 0 // unrecognized word, dumped as raw bytes
	CodeOffset    LineType = 1 << iota
	DataOffset
	LabelLine       // label preceding the line of its address
	CallDestination // label of a subroutine
	CurrentInstruction
)

// Line is a single line of the listing. It carries enough structure to render
// fixed width columns without parsing the text.
type Line struct {
	Type    LineType
	Address uint32
	Bytes   []byte // raw bytes of the instruction or data

	Mnemonic string
	Operands string
	Comment  string
	Pseudo   string

	Label           string
	LabelComment    string
	LabelReferences []uint32 // addresses of all instructions referencing the label

	IOAddress uint16
	HasIO     bool
}

// IsType returns whether the line is of given type.
func (l *Line) IsType(typ LineType) bool {
	return l.Type&typ != 0
}

// SetType sets the type of the line.
func (l *Line) SetType(typ LineType) {
	l.Type |= typ
}

// Width returns the number of bytes covered by the line.
func (l *Line) Width() int {
	return len(l.Bytes)
}

// Code returns the assembly text of an instruction line.
func (l *Line) Code() string {
	if l.Operands == "" {
		return l.Mnemonic
	}
	return l.Mnemonic + " " + l.Operands
}

// HexCodeComment returns the raw bytes as a hex string comment.
func (l *Line) HexCodeComment() string {
	buf := &strings.Builder{}
	for _, b := range l.Bytes {
		fmt.Fprintf(buf, "%02X ", b)
	}
	return strings.TrimRight(buf.String(), " ")
}
