// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/arch/avr"
	"github.com/charlie-x/simget/internal/consts"
	"github.com/charlie-x/simget/internal/detector"
	"github.com/charlie-x/simget/internal/disasm"
	"github.com/charlie-x/simget/internal/loader"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/program"
	"github.com/charlie-x/simget/internal/symbols"
	"github.com/charlie-x/simget/internal/tags"
	"github.com/charlie-x/simget/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Pipeline orchestrates the complete disassembly workflow. The decoder is
// shared by all files processed by the pipeline.
type Pipeline struct {
	logger    *log.Logger
	detector  *detector.Detector
	loader    *loader.Loader
	arch      arch.Architecture
	registers *consts.Consts
}

// New creates a new disassembly pipeline for the microcontroller of the
// disassembler options.
func New(logger *log.Logger, disasmOpts options.Disassembler) (*Pipeline, error) {
	registers, err := consts.New(disasmOpts.MCU)
	if err != nil {
		return nil, fmt.Errorf("loading register names: %w", err)
	}

	ar, err := avr.New(logger, avr.Options{
		Pseudo:     disasmOpts.Pseudo,
		Registers:  registers,
		MemorySize: registers.MCU().FlashSize,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	return &Pipeline{
		logger:    logger,
		detector:  detector.New(logger),
		loader:    loader.New(),
		arch:      ar,
		registers: registers,
	}, nil
}

// Execute runs the complete disassembly pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	w io.Writer) (*program.Program, error) {

	fw, err := p.Load(opts)
	if err != nil {
		return nil, err
	}
	return p.ExecuteWithFirmware(ctx, fw, opts, disasmOpts, w)
}

// Load detects the file format of the input file and loads the firmware.
func (p *Pipeline) Load(opts options.Program) (*loader.Firmware, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	format, err := p.detector.Detect(opts, data)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}

	fw, err := p.loader.Load(opts.Input, data, format)
	if err != nil {
		return nil, fmt.Errorf("loading firmware: %w", err)
	}
	return fw, nil
}

// ExecuteWithFirmware runs the disassembly pipeline with a pre-loaded firmware.
// This is useful for testing and programmatic usage where the firmware is already in memory.
func (p *Pipeline) ExecuteWithFirmware(ctx context.Context, fw *loader.Firmware, opts options.Program,
	disasmOpts options.Disassembler, w io.Writer) (*program.Program, error) {

	dis, err := p.Prepare(ctx, fw, opts, disasmOpts)
	if err != nil {
		return nil, err
	}

	p.printInfo(opts, fw, dis)

	app := p.Program(fw, dis, disasmOpts)
	if err := p.write(app, opts, disasmOpts, w); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return app, nil
}

// Prepare creates the disassembler of the firmware and scans it for references.
func (p *Pipeline) Prepare(ctx context.Context, fw *loader.Firmware, opts options.Program,
	disasmOpts options.Disassembler) (*disasm.Disasm, error) {

	var classifier disasm.Classifier
	if opts.Tags != "" {
		tagged, err := tags.LoadFile(opts.Tags)
		if err != nil {
			return nil, fmt.Errorf("loading tags: %w", err)
		}
		p.logger.Debug("Loaded data tags", log.String("file", opts.Tags), log.Int("ranges", len(tagged.Ranges())))
		classifier = tagged
	}

	table, err := p.symbols(fw, opts)
	if err != nil {
		return nil, err
	}

	dis := disasm.New(p.logger, p.arch, fw, classifier, table, disasmOpts)
	if _, err := dis.Scan(ctx); err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}
	return dis, nil
}

// Program returns the listing of the scanned firmware. The I/O registers used
// in the listing window are collected as constants.
func (p *Pipeline) Program(fw *loader.Firmware, dis *disasm.Disasm, disasmOpts options.Disassembler) *program.Program {
	lines := dis.Lines(disasmOpts.Start, disasmOpts.End)
	app := program.New(fw.Name, p.registers.MCU().Name, len(fw.Bytes()), fw.Checksum(), lines)

	used := set.New[uint16]()
	for line := range lines {
		if line.HasIO {
			used.Add(line.IOAddress)
		}
	}
	for _, constant := range p.registers.Sorted(used) {
		app.Constants[constant.Name] = constant.Address
	}
	return app
}

// symbols returns the symbols of the firmware file, overridden by the symbols
// of the symbol file.
func (p *Pipeline) symbols(fw *loader.Firmware, opts options.Program) (*symbols.Table, error) {
	table := symbols.NewTable()
	for _, sym := range fw.Symbols {
		if err := table.Add(sym); err != nil {
			return nil, fmt.Errorf("adding firmware symbol: %w", err)
		}
	}

	if opts.Symbols != "" {
		if err := table.LoadFile(opts.Symbols); err != nil {
			return nil, fmt.Errorf("loading symbols: %w", err)
		}
	}
	return table, nil
}

func (p *Pipeline) write(app *program.Program, opts options.Program, disasmOpts options.Disassembler, w io.Writer) error {
	writerOpts := writer.Options{
		HexComments:    disasmOpts.HexComments,
		OffsetComments: disasmOpts.OffsetComments,
		Pseudo:         disasmOpts.Pseudo,
	}

	var lw writer.ListingWriter
	if opts.JSON {
		lw = writer.NewJSON(app, w, writerOpts)
	} else {
		lw = writer.New(app, w, writerOpts)
	}
	return lw.Write()
}

// printInfo prints information about the firmware being processed.
func (p *Pipeline) printInfo(opts options.Program, fw *loader.Firmware, dis *disasm.Disasm) {
	if opts.Quiet {
		return
	}

	labels := dis.Snapshot().Labels()
	var functions int
	for _, label := range labels {
		if label.Call {
			functions++
		}
	}

	p.logger.Info("Processing firmware",
		log.String("file", fw.Name),
		log.String("format", string(fw.Format)),
		log.String("mcu", p.registers.MCU().Name),
		log.Int("size", len(fw.Bytes())),
		log.Int("references", dis.Snapshot().Len()),
		log.Int("labels", len(labels)),
		log.Int("functions", functions),
	)
	if flash := p.registers.MCU().FlashSize; flash > 0 && len(fw.Bytes()) > flash {
		p.logger.Warn("Firmware is larger than the flash of the microcontroller",
			log.Int("flash", flash))
	}
}
