// Package disasm implements the stream walker that drives the decoding of a
// program memory and produces the listing lines.
package disasm

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/instruction"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/program"
	"github.com/charlie-x/simget/internal/xref"
	"github.com/retroenv/retrogolib/log"
)

// Memory is the program memory to decode. The backing store can be modified
// concurrently by a running simulation.
type Memory interface {
	// Bytes returns the program memory.
	Bytes() []byte
	// ProgramCounter returns the current program counter as byte address.
	ProgramCounter() uint32
}

// Classifier marks address ranges that contain data instead of instructions.
type Classifier interface {
	// Classify returns the number of data bytes starting at the address, 0 if
	// the address should be decoded as instruction.
	Classify(buf []byte, address uint32) int
}

// Disasm implements a disassembler.
type Disasm struct {
	arch    arch.Architecture
	logger  *log.Logger
	options options.Disassembler

	memory     Memory
	classifier Classifier
	tracker    *xref.Tracker
	snapshot   *xref.Snapshot
	starts     []uint32 // step start addresses of the last scan, ascending
}

// New creates a new disassembler that uses the passed architecture to decode
// the memory. The classifier and namer are optional.
func New(logger *log.Logger, ar arch.Architecture, memory Memory, classifier Classifier,
	namer xref.Namer, options options.Disassembler) *Disasm {

	return &Disasm{
		arch:       ar,
		logger:     logger,
		options:    options,
		memory:     memory,
		classifier: classifier,
		tracker:    xref.New(namer),
	}
}

// Scan decodes the complete memory and records all references. The returned
// snapshot is used for labels by all following listings.
func (dis *Disasm) Scan(ctx context.Context) (*xref.Snapshot, error) {
	dis.tracker.Reset()
	buf := dis.memory.Bytes()

	var unknown int
	var err error
	var starts []uint32
	dis.walk(buf, 0, uint32(len(buf)), nil, func(s step) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		starts = append(starts, s.address)

		switch s.kind {
		case stepInstruction:
			if s.ins.HasTarget {
				dis.tracker.Record(s.ins.Address, s.ins.Target, s.ins.ID, s.ins.IsCall())
			}
		case stepUnknown:
			unknown++
			dis.logger.Debug("Unrecognized instruction word", log.Hex("address", s.address))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scanning memory: %w", err)
	}

	dis.snapshot = dis.tracker.Snapshot()
	dis.starts = starts
	dis.logger.Debug("Scan finished",
		log.Int("size", len(buf)),
		log.Int("references", dis.snapshot.Len()),
		log.Int("unknown", unknown))
	return dis.snapshot, nil
}

// Snapshot returns the references of the last scan, nil if no scan was done.
func (dis *Disasm) Snapshot() *xref.Snapshot {
	return dis.snapshot
}

// InstructionStart returns the start address of the instruction or data
// range that contains the address. A listing window starting there decodes
// the same instructions as the listing of the complete memory. Without a
// scan the memory is walked from its start.
func (dis *Disasm) InstructionStart(address uint32) uint32 {
	if len(dis.starts) > 0 {
		i, found := slices.BinarySearch(dis.starts, address)
		switch {
		case found:
			return address
		case i == 0:
			return 0
		default:
			return dis.starts[i-1]
		}
	}

	var start uint32
	buf := dis.memory.Bytes()
	dis.walk(buf, 0, uint32(len(buf)), nil, func(s step) bool {
		if s.address > address {
			return false
		}
		start = s.address
		return true
	})
	return start
}

// Lines returns the listing of the address window from start to end. An end
// of 0 or beyond the memory ends the listing at the end of the memory. The
// sequence decodes the memory lazily and can be iterated multiple times.
func (dis *Disasm) Lines(start, end uint32) iter.Seq[program.Line] {
	snapshot := dis.snapshot

	return func(yield func(program.Line) bool) {
		buf := dis.memory.Bytes()
		pc := dis.memory.ProgramCounter()

		var labels arch.LabelLookup
		if snapshot != nil {
			labels = snapshot
		}

		dis.walk(buf, start, end, labels, func(s step) bool {
			if snapshot != nil {
				if label, ok := snapshot.LabelFor(s.address); ok {
					if !yield(labelLine(label, snapshot.ReferencesTo(s.address))) {
						return false
					}
				}
			}

			line := dis.stepLine(buf, s, snapshot)
			if dis.options.MarkPC && s.address <= pc && pc < s.address+uint32(s.size) {
				line.SetType(program.CurrentInstruction)
			}
			return yield(line)
		})
	}
}

type stepKind uint8

const (
	stepInstruction stepKind = iota
	stepData
	stepUnknown
)

// step is a single advance of the walker.
type step struct {
	kind    stepKind
	address uint32
	size    int
	ins     instruction.Instruction
}

// walk advances through the window. Data ranges reported by the classifier
// are skipped, unrecognized words are skipped by the fallback size of the
// architecture, so every step advances at least one byte. The last instruction
// can extend beyond the end of the window.
func (dis *Disasm) walk(buf []byte, start, end uint32, labels arch.LabelLookup, visit func(step) bool) {
	if end == 0 || int64(end) > int64(len(buf)) {
		end = uint32(len(buf))
	}
	maxSize := dis.arch.MaxInstructionSize()

	for address := start; address < end; {
		remaining := int(end - address)

		if dis.classifier != nil {
			if size := dis.classifier.Classify(buf, address); size > 0 {
				size = min(size, remaining)
				if !visit(step{kind: stepData, address: address, size: size}) {
					return
				}
				address += uint32(size)
				continue
			}
		}

		window := buf[address:min(int(address)+maxSize, len(buf))]
		ins, ok := dis.arch.Decode(window, address, labels)
		if !ok || ins.Length <= 0 {
			size := min(dis.arch.FallbackSize(), remaining)
			if !visit(step{kind: stepUnknown, address: address, size: size}) {
				return
			}
			address += uint32(size)
			continue
		}

		if !visit(step{kind: stepInstruction, address: address, size: ins.Length, ins: ins}) {
			return
		}
		address += uint32(ins.Length)
	}
}

func (dis *Disasm) stepLine(buf []byte, s step, snapshot *xref.Snapshot) program.Line {
	line := program.Line{
		Address: s.address,
		Bytes:   slices.Clone(buf[s.address : s.address+uint32(s.size)]),
	}

	switch s.kind {
	case stepData:
		line.SetType(program.DataOffset)
		if commenter, ok := dis.classifier.(interface{ Comment(address uint32) string }); ok {
			line.Comment = commenter.Comment(s.address)
		}

	case stepUnknown:
		line.Type = program.UnknownOffset
		if s.size == 2 {
			line.Mnemonic = ".word"
			line.Operands = fmt.Sprintf("0x%02x%02x", line.Bytes[1], line.Bytes[0])
		} else {
			line.Mnemonic = ".byte"
			line.Operands = fmt.Sprintf("0x%02x", line.Bytes[0])
		}
		line.Comment = "unknown opcode"

	case stepInstruction:
		line.SetType(program.CodeOffset)
		line.Mnemonic = s.ins.Mnemonic
		line.Operands = s.ins.Operands
		line.Comment = s.ins.Comment
		line.Pseudo = s.ins.Pseudo
		line.IOAddress = s.ins.IOAddress
		line.HasIO = s.ins.HasIO

		if snapshot != nil {
			line.Comment = jumpIntoInstructionComment(snapshot, s, line.Comment)
		}
	}
	return line
}

// jumpIntoInstructionComment flags instructions that have a referenced address
// inside of their operand words, the label of it can not be output.
func jumpIntoInstructionComment(snapshot *xref.Snapshot, s step, comment string) string {
	for offset := uint32(2); offset < uint32(s.size); offset += 2 {
		label, ok := snapshot.LabelFor(s.address + offset)
		if !ok {
			continue
		}
		detected := "branch into instruction detected: " + label.Name
		if comment == "" {
			return detected
		}
		return detected + "  " + comment
	}
	return comment
}

func labelLine(label xref.Label, refs []xref.Reference) program.Line {
	line := program.Line{
		Type:         program.LabelLine,
		Address:      label.Address,
		Label:        label.Name,
		LabelComment: label.Comment,
	}
	for _, ref := range refs {
		line.LabelReferences = append(line.LabelReferences, ref.From)
	}
	if label.Call {
		line.SetType(program.CallDestination)
	}
	return line
}
