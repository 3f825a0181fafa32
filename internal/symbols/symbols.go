package symbols

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var errEmptyName = errors.New("symbol without name")

// Symbol is a name for an address of the program memory.
type Symbol struct {
	Address uint32 `yaml:"address" json:"address"`
	Name    string `yaml:"name" json:"name"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// File is the format of a symbol file.
type File struct {
	Symbols []Symbol `yaml:"symbols" json:"symbols"`
}

// Table contains the symbols of a firmware. It implements the label naming
// of the cross-reference tracker and is read only after loading.
type Table struct {
	*Manager[Symbol]
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{
		Manager: New[Symbol](),
	}
}

// Add adds a symbol, an existing symbol at the same address is replaced.
func (t *Table) Add(sym Symbol) error {
	if sym.Name == "" {
		return fmt.Errorf("%w at address 0x%04x", errEmptyName, sym.Address)
	}
	t.Set(sym.Address, sym)
	return nil
}

// NameFor returns the name and comment of the symbol at the address.
func (t *Table) NameFor(address uint32) (string, string, bool) {
	sym, ok := t.Get(address)
	if !ok {
		return "", "", false
	}
	return sym.Name, sym.Comment, true
}

// Load reads a YAML symbol file.
func (t *Table) Load(reader io.Reader) error {
	var file File
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding symbol file: %w", err)
	}

	for _, sym := range file.Symbols {
		if err := t.Add(sym); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads the YAML symbol file with the given name.
func (t *Table) LoadFile(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("opening symbol file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return t.Load(f)
}
