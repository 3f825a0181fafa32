// Package writer implements the assembly listing output.
package writer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charlie-x/simget/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// ListingWriter is implemented by the text and the JSON lines writer.
type ListingWriter interface {
	Write() error
}

// Writer writes the program as assembly listing.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // output the instruction bytes as comment
	OffsetComments bool // output the address as comment
	Pseudo         bool // output the pseudocode rendering as comment
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write outputs the header, the register aliases and all lines of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	if err := w.OutputAliasMap(w.app.Constants); err != nil {
		return err
	}
	return w.ProcessLines()
}

// ProcessLines writes all lines, labels and their comments.
func (w Writer) ProcessLines() error {
	var previousLineWasCode, previousLineWasLabel bool
	var index int

	for line := range w.app.Lines {
		if line.IsType(program.LabelLine) {
			if err := w.writeLabel(index, line); err != nil {
				return err
			}
			previousLineWasLabel = true
			index++
			continue
		}

		// print an empty line in case of data after code and vice versa
		isCode := !line.IsType(program.DataOffset)
		if index > 0 && !previousLineWasLabel && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode
		previousLineWasLabel = false

		var err error
		if line.IsType(program.DataOffset) {
			err = w.writeDataLine(line)
		} else {
			err = w.writeCodeLine(line)
		}
		if err != nil {
			return err
		}
		index++
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if j > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "0x%02x", data[i+j])
		}
		line := buf.String()

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// OutputAliasMap outputs the names of the I/O registers used by the code.
func (w Writer) OutputAliasMap(aliases map[string]uint16) error {
	if len(aliases) == 0 {
		return nil
	}

	// sort the aliases by address, then name, to avoid random map order
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if diff := int(aliases[a]) - int(aliases[b]); diff != 0 {
			return diff
		}
		return strings.Compare(a, b)
	})

	for _, name := range names {
		if _, err := fmt.Fprintf(w.writer, ".equ %s = 0x%02x\n", name, aliases[name]); err != nil {
			return fmt.Errorf("writing alias: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteCommentHeader writes the firmware name, size and CRC32 checksum as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if w.app.Name != "" {
		if _, err := fmt.Fprintf(w.writer, "; Firmware: %s\n", w.app.Name); err != nil {
			return fmt.Errorf("writing firmware name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "; MCU: %s\n", w.app.MCU); err != nil {
		return fmt.Errorf("writing mcu: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Size: %d bytes\n", w.app.Size); err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	return nil
}

func (w Writer) writeLabel(index int, line program.Line) error {
	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if line.LabelComment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s:\n", line.Label); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", line.Label+":", line.LabelComment); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	}
	return nil
}

func (w Writer) writeCodeLine(line program.Line) error {
	prefix := "  "
	if line.IsType(program.CurrentInstruction) {
		prefix = "=>"
	}

	var pseudo string
	if w.options.Pseudo {
		pseudo = line.Pseudo
	}
	var hex string
	if w.options.HexComments {
		hex = line.HexCodeComment()
	}
	comment := w.comment(line.Address, hex, pseudo, line.Comment)

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s%s\n", prefix, line.Code())
	} else {
		_, err = fmt.Fprintf(w.writer, "%s%-30s ; %s\n", prefix, line.Code(), comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// writeDataLine bundles the bytes of a data range, the first line carries the
// comment of the range.
func (w Writer) writeDataLine(line program.Line) error {
	address := line.Address
	rangeComment := line.Comment

	lineWriter := func(text string, byteCount int) error {
		comment := w.comment(address, "", "", rangeComment)
		rangeComment = ""

		var err error
		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "  %s\n", text)
		} else {
			_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", text, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		address += uint32(byteCount)
		return nil
	}

	if err := w.BundleDataWrites(line.Bytes, lineWriter); err != nil {
		return fmt.Errorf("writing data at 0x%04x: %w", line.Address, err)
	}
	return nil
}

// comment joins the enabled comment parts of a line.
func (w Writer) comment(address uint32, hex, pseudo, comment string) string {
	parts := make([]string, 0, 4)
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("0x%04x", address))
	}
	for _, part := range []string{hex, pseudo, comment} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "  ")
}
