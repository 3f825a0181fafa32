package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charlie-x/simget/internal/colorize"
	"github.com/charlie-x/simget/internal/config"
	"github.com/charlie-x/simget/internal/disasm"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/pipeline"
	"github.com/charlie-x/simget/internal/program"
	"github.com/charlie-x/simget/internal/writer"
	"github.com/nxadm/tail"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

var errEmptyProgramCounter = errors.New("empty program counter")

type followOptions struct {
	context   int  // instructions before and after the program counter
	words     bool // trace contains word addresses
	fromStart bool
}

func newFollowCommand(opts *options.Program) *cobra.Command {
	var follow followOptions

	cmd := &cobra.Command{
		Use:   "follow <firmware> <pc-trace>",
		Short: "Follow the program counter written by a simulator",
		Long: `Follow tails a trace file that a simulator appends the program counter to,
one hex value per line, and prints the listing around every new program
counter with the active instruction marked.`,
		Example: `
# Follow the byte addresses written by a simulator
avrdisasm follow firmware.hex pc.trace

# The simulator writes word addresses
avrdisasm follow --words -n 4 firmware.elf pc.trace
  `,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			programOpts := *opts
			programOpts.Input = args[0]
			return runFollow(cmd.Context(), cmd.OutOrStdout(), programOpts, args[1], follow)
		},
	}

	cmd.Flags().IntVarP(&follow.context, "context", "n", 8, "instructions to show before and after the program counter")
	cmd.Flags().BoolVar(&follow.words, "words", false, "trace contains word addresses instead of byte addresses")
	cmd.Flags().BoolVar(&follow.fromStart, "from-start", false, "process the complete trace file instead of only new lines")
	return cmd
}

func runFollow(ctx context.Context, out io.Writer, opts options.Program, traceFile string, follow followOptions) error {
	disasmOpts, err := DisassemblerOptions(opts)
	if err != nil {
		return err
	}
	disasmOpts.MarkPC = true

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	p, err := pipeline.New(logger, disasmOpts)
	if err != nil {
		return err
	}
	fw, err := p.Load(opts)
	if err != nil {
		return err
	}
	dis, err := p.Prepare(ctx, fw, opts, disasmOpts)
	if err != nil {
		return err
	}

	mode, _ := colorize.ParseMode(opts.Color)
	var highlight func(string) string
	if colorize.Enabled(mode, out) {
		highlight = colorize.New().CurrentLine
	}

	cfg := tail.Config{
		Follow: true,
		ReOpen: true,
		Logger: tail.DiscardingLogger,
	}
	if !follow.fromStart {
		cfg.Location = &tail.SeekInfo{Whence: io.SeekEnd}
	}
	t, err := tail.TailFile(traceFile, cfg)
	if err != nil {
		return fmt.Errorf("following trace file: %w", err)
	}
	defer func() {
		_ = t.Stop()
		t.Cleanup()
	}()

	writerOpts := writer.Options{
		HexComments:    disasmOpts.HexComments,
		OffsetComments: disasmOpts.OffsetComments,
		Pseudo:         disasmOpts.Pseudo,
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return fmt.Errorf("reading trace file: %w", line.Err)
			}

			pc, err := parseProgramCounter(line.Text, follow.words)
			if err != nil {
				logger.Warn("Skipping trace line", log.String("line", line.Text), log.Err(err))
				continue
			}

			fw.SetProgramCounter(pc)
			if err := renderWindow(out, dis, pc, follow.context, writerOpts, highlight); err != nil {
				return err
			}
		}
	}
}

// parseProgramCounter parses a hex program counter. A prefix like "pc=" or
// "PC: " is ignored.
func parseProgramCounter(text string, words bool) (uint32, error) {
	text = strings.TrimSpace(text)
	if i := strings.LastIndexAny(text, " \t=:"); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	if text == "" {
		return 0, errEmptyProgramCounter
	}

	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing program counter: %w", err)
	}
	if words {
		value *= 2
	}
	return uint32(value), nil
}

// renderWindow writes the listing around the program counter. The line of
// the program counter is passed through highlight if set.
func renderWindow(out io.Writer, dis *disasm.Disasm, pc uint32, instructions int, opts writer.Options,
	highlight func(string) string) error {

	span := uint32(2 * instructions)
	var start uint32
	if pc > span {
		start = dis.InstructionStart(pc - span)
	}
	end := pc + span + 2

	app := program.New("", "", 0, 0, dis.Lines(start, end))
	var buf strings.Builder
	if err := writer.New(app, &buf, opts).ProcessLines(); err != nil {
		return fmt.Errorf("rendering listing: %w", err)
	}

	if _, err := fmt.Fprintf(out, "; pc 0x%04x\n", pc); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if highlight != nil && strings.HasPrefix(line, "=>") {
			line = highlight(line)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
