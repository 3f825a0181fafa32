// Package colorize applies syntax highlighting to the assembly listing.
package colorize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/term"
)

// Mode controls when the output is colorized.
type Mode string

// supported color modes.
const (
	Auto   Mode = "auto"
	Always Mode = "always"
	Never  Mode = "never"
)

var errUnsupportedMode = errors.New("unsupported color mode")

// ParseMode returns the mode of the string, an empty string selects Auto.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(s)); mode {
	case "":
		return Auto, nil
	case Auto, Always, Never:
		return mode, nil
	default:
		return "", fmt.Errorf("%w '%s', supported: auto, always, never", errUnsupportedMode, s)
	}
}

// Enabled returns whether output written to the writer should be colorized.
// In auto mode only terminals are colorized and NO_COLOR disables colors.
func Enabled(mode Mode, w io.Writer) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colorizer highlights assembly listings.
type Colorizer struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
	current   lipgloss.Style
}

// New returns a colorizer using the first available assembly lexer.
func New() *Colorizer {
	return &Colorizer{
		lexer:     firstLexer("gas", "nasm"),
		style:     firstStyle(styleName, "monokai"),
		formatter: firstFormatter("terminal16m", "terminal256"),
		current:   lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
	}
}

// Listing colorizes a complete listing. Without a matching lexer the code is
// returned unchanged.
func (c *Colorizer) Listing(code string) (string, error) {
	if c.lexer == nil {
		return code, nil
	}

	iterator, err := c.lexer.Tokenise(nil, code)
	if err != nil {
		return code, fmt.Errorf("tokenising listing: %w", err)
	}

	var buf strings.Builder
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return code, fmt.Errorf("formatting listing: %w", err)
	}
	return buf.String(), nil
}

// CurrentLine highlights the line of the program counter.
func (c *Colorizer) CurrentLine(line string) string {
	return c.current.Render(line)
}

// Writer returns a writer that buffers the listing and writes it colorized on
// Close.
func (c *Colorizer) Writer(w io.Writer) io.WriteCloser {
	return &writer{
		colorizer: c,
		out:       w,
	}
}

type writer struct {
	colorizer *Colorizer
	out       io.Writer
	buf       strings.Builder
}

func (w *writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *writer) Close() error {
	colored, err := w.colorizer.Listing(w.buf.String())
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w.out, colored); err != nil {
		return fmt.Errorf("writing colorized listing: %w", err)
	}
	return nil
}

func firstLexer(names ...string) chroma.Lexer {
	for _, name := range names {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

func firstStyle(names ...string) *chroma.Style {
	for _, name := range names {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

func firstFormatter(names ...string) chroma.Formatter {
	for _, name := range names {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}
