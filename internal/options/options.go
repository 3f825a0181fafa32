// Package options contains the program options.
package options

import (
	"strings"
)

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input firmware file"`
	Output  string `flag:"o" usage:"output .asm file (default: stdout)"`
	Tags    string `flag:"tags" usage:"YAML file of address ranges that contain data"`
	Symbols string `flag:"symbols" usage:"YAML file of label names"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.hex)"`
}

// Flags contains behavior options.
type Flags struct {
	MCU    string `flag:"mcu" usage:"microcontroller that names the I/O registers" default:"attiny4313"`
	Format string `flag:"format" usage:"input format: bin, hex, elf (default: auto-detect)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHexComments bool   `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool   `flag:"nooffsets" usage:"omit addresses in comments"`
	Pseudo        bool   `flag:"pseudo" usage:"annotate instructions with pseudocode"`
	JSON          bool   `flag:"json" usage:"output one JSON object per line instead of assembly"`
	Color         string `flag:"color" usage:"colorize output: auto, always, never" default:"auto"`
	Start         uint32 `flag:"start" usage:"first address of the listing"`
	End           uint32 `flag:"end" usage:"address after the last instruction of the listing (default: end of firmware)"`
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	MCU string // microcontroller name

	Start uint32 // first address of the listing
	End   uint32 // end of the listing, 0 for the end of the memory

	HexComments    bool
	OffsetComments bool
	MarkPC         bool // mark the line of the program counter
	Pseudo         bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler(mcu string) Disassembler {
	return Disassembler{
		MCU: strings.ToLower(mcu),

		HexComments:    true,
		OffsetComments: true,
	}
}
