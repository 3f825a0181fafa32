package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charlie-x/simget/internal/arch"
	"github.com/charlie-x/simget/internal/arch/avr"
	"github.com/charlie-x/simget/internal/colorize"
	"github.com/charlie-x/simget/internal/config"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"
)

func newPatternsCommand(opts *options.Program) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the instruction templates in resolution order",
		Long: `Patterns lists all instruction templates ordered by the number of literal
bits. A word is decoded by the first template in this list that matches it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			ar, err := avr.New(logger, avr.Options{Pseudo: opts.Pseudo})
			if err != nil {
				return err
			}

			if opts.JSON {
				return writePatternsJSON(cmd.OutOrStdout(), ar.Opcodes())
			}
			mode, err := colorize.ParseMode(opts.Color)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return writePatterns(out, ar.Opcodes(), colorize.Enabled(mode, out))
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

func writePatterns(w io.Writer, opcodes []arch.Opcode, styled bool) error {
	header := fmt.Sprintf("%-4s %-8s %-8s %-39s %7s  %s", "#", "id", "mnemonic", "pattern", "literal", "flow")
	if styled {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, op := range opcodes {
		if _, err := fmt.Fprintf(w, "%-4d %-8s %-8s %-39s %7d  %s\n",
			i, op.ID, op.Mnemonic, op.Pattern, op.Specificity, op.Flow); err != nil {
			return fmt.Errorf("writing opcode: %w", err)
		}
	}
	return nil
}

func writePatternsJSON(w io.Writer, opcodes []arch.Opcode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(opcodes); err != nil {
		return fmt.Errorf("encoding opcodes: %w", err)
	}
	return nil
}
