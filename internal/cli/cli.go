// Package cli handles command line interface logic
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charlie-x/simget/internal/colorize"
	"github.com/charlie-x/simget/internal/config"
	"github.com/charlie-x/simget/internal/detector"
	"github.com/charlie-x/simget/internal/fileprocessor"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/spf13/cobra"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// NewRootCommand returns the disassembler command with all subcommands.
func NewRootCommand(version, commit, date string) *cobra.Command {
	var opts options.Program

	cmd := &cobra.Command{
		Use:   "avrdisasm [flags] <firmware>",
		Short: "AVR 8-bit firmware disassembler",
		Long: `avrdisasm decodes AVR 8-bit program memory images into an assembly listing.
Raw binary, Intel HEX and ELF files are supported, branch and call targets
get labels and I/O addresses are named by the registers of the selected MCU.`,
		Example: `
# Disassemble a firmware to the console
avrdisasm firmware.hex

# Annotate with pseudocode and write to a file
avrdisasm --pseudo -o firmware.asm firmware.elf

# Disassemble all files of a directory
avrdisasm --batch "build/*.hex"
  `,
		Version:      buildinfo.Version(version, commit, date),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDisassembler(cmd.Context(), opts, args, version, commit, date)
			var usageErr *UsageError
			if errors.As(err, &usageErr) {
				cmd.SilenceUsage = false
			}
			return err
		},
	}

	BindFlags(cmd.PersistentFlags(), &opts)

	cmd.AddCommand(
		newFollowCommand(&opts),
		newPatternsCommand(&opts),
		newSchemaCommand(),
	)
	return cmd
}

func runDisassembler(ctx context.Context, opts options.Program, args []string, version, commit, date string) error {
	if len(args) > 0 {
		if opts.Input != "" || opts.Batch != "" {
			return &UsageError{msg: "pass the firmware file either as argument or using an input flag"}
		}
		opts.Input = args[0]
	}
	if opts.Input == "" && opts.Batch == "" {
		return &UsageError{msg: "no firmware file to disassemble given"}
	}

	disasmOpts, err := DisassemblerOptions(opts)
	if err != nil {
		return err
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	p, err := pipeline.New(logger, disasmOpts)
	if err != nil {
		return err
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		return err
	}
	return fileprocessor.ProcessFiles(ctx, logger, p, opts, disasmOpts, files)
}

// DisassemblerOptions validates the program options and returns the
// options of the disassembler.
func DisassemblerOptions(opts options.Program) (options.Disassembler, error) {
	if opts.Format != "" {
		if _, err := detector.FormatFromString(opts.Format); err != nil {
			return options.Disassembler{}, &UsageError{msg: err.Error()}
		}
	}
	if _, err := colorize.ParseMode(opts.Color); err != nil {
		return options.Disassembler{}, &UsageError{msg: err.Error()}
	}
	if opts.End != 0 && opts.End <= opts.Start {
		return options.Disassembler{}, &UsageError{
			msg: fmt.Sprintf("end address 0x%04x has to be after start address 0x%04x", opts.End, opts.Start),
		}
	}

	disasmOpts := options.NewDisassembler(opts.MCU)
	disasmOpts.HexComments = !opts.NoHexComments
	disasmOpts.OffsetComments = !opts.NoOffsets
	disasmOpts.Pseudo = opts.Pseudo
	disasmOpts.Start = opts.Start
	disasmOpts.End = opts.End
	return disasmOpts, nil
}
