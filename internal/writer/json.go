package writer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charlie-x/simget/internal/program"
)

// Record kinds of the JSON lines output.
const (
	KindLabel   = "label"
	KindCode    = "code"
	KindData    = "data"
	KindUnknown = "unknown"
)

// Record is a single line of the JSON lines output.
type Record struct {
	Kind    string `json:"kind" jsonschema:"enum=label,enum=code,enum=data,enum=unknown"`
	Address uint32 `json:"address" jsonschema:"description=byte address in program memory"`
	Bytes   string `json:"bytes,omitempty" jsonschema:"description=hex encoded raw bytes"`

	Mnemonic string `json:"mnemonic,omitempty"`
	Operands string `json:"operands,omitempty"`
	Pseudo   string `json:"pseudo,omitempty"`
	Comment  string `json:"comment,omitempty"`

	Label      string   `json:"label,omitempty"`
	Call       bool     `json:"call,omitempty" jsonschema:"description=label is the destination of a call"`
	References []uint32 `json:"references,omitempty" jsonschema:"description=addresses of all instructions referencing the label"`

	IOAddress *uint16 `json:"io_address,omitempty" jsonschema:"description=I/O space address accessed by the instruction"`
	Current   bool    `json:"current,omitempty" jsonschema:"description=instruction contains the program counter"`
}

// JSONWriter writes the program as one JSON object per line.
type JSONWriter struct {
	app     *program.Program
	options Options
	encoder *json.Encoder
}

// NewJSON creates a new JSON lines writer.
func NewJSON(app *program.Program, writer io.Writer, options Options) *JSONWriter {
	return &JSONWriter{
		app:     app,
		options: options,
		encoder: json.NewEncoder(writer),
	}
}

// Write outputs all lines of the program.
func (w *JSONWriter) Write() error {
	for line := range w.app.Lines {
		if err := w.encoder.Encode(NewRecord(line, w.options.Pseudo)); err != nil {
			return fmt.Errorf("encoding line at 0x%04x: %w", line.Address, err)
		}
	}
	return nil
}

// NewRecord converts a listing line to its JSON record.
func NewRecord(line program.Line, pseudo bool) Record {
	rec := Record{
		Address: line.Address,
		Current: line.IsType(program.CurrentInstruction),
	}

	switch {
	case line.IsType(program.LabelLine):
		rec.Kind = KindLabel
		rec.Label = line.Label
		rec.Comment = line.LabelComment
		rec.Call = line.IsType(program.CallDestination)
		rec.References = line.LabelReferences
		return rec

	case line.IsType(program.DataOffset):
		rec.Kind = KindData

	case line.IsType(program.CodeOffset):
		rec.Kind = KindCode
		rec.Mnemonic = line.Mnemonic
		rec.Operands = line.Operands
		if pseudo {
			rec.Pseudo = line.Pseudo
		}
		if line.HasIO {
			address := line.IOAddress
			rec.IOAddress = &address
		}

	default:
		rec.Kind = KindUnknown
		rec.Mnemonic = line.Mnemonic
		rec.Operands = line.Operands
	}

	rec.Bytes = hex.EncodeToString(line.Bytes)
	rec.Comment = line.Comment
	return rec
}
