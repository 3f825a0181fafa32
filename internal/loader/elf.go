package loader

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charlie-x/simget/internal/symbols"
	"github.com/ianlancetaylor/demangle"
)

// dataSpaceOffset is the start of the data memory in the address space of
// avr-gcc. Addresses below it are program memory.
const dataSpaceOffset = 0x800000

// parseELF converts the loadable program memory segments of an AVR ELF file
// into a memory image and returns the function symbols.
func parseELF(data []byte) ([]byte, []symbols.Symbol, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing elf file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if f.Machine != elf.EM_AVR {
		return nil, nil, fmt.Errorf("unsupported machine %s", f.Machine)
	}

	var image []byte
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD || prog.Filesz == 0 || prog.Paddr >= dataSpaceOffset {
			continue
		}

		if prog.Paddr+prog.Filesz > maxFirmwareSize {
			return nil, nil, fmt.Errorf("segment at 0x%x with %d bytes exceeds the maximum firmware size",
				prog.Paddr, prog.Filesz)
		}

		segment := make([]byte, prog.Filesz)
		if _, err := io.ReadFull(prog.Open(), segment); err != nil {
			return nil, nil, fmt.Errorf("reading segment at 0x%x: %w", prog.Paddr, err)
		}

		// the load address places initialized data after the code
		image, err = place(image, uint32(prog.Paddr), segment)
		if err != nil {
			return nil, nil, err
		}
	}

	syms, err := elfSymbols(f)
	if err != nil {
		return nil, nil, err
	}
	return image, syms, nil
}

func elfSymbols(f *elf.File) ([]symbols.Symbol, error) {
	elfSyms, err := f.Symbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading elf symbols: %w", err)
	}

	var syms []symbols.Symbol
	for _, sym := range elfSyms {
		typ := elf.ST_TYPE(sym.Info)
		if typ != elf.STT_FUNC && typ != elf.STT_NOTYPE {
			continue
		}
		if sym.Name == "" || sym.Section == elf.SHN_UNDEF || sym.Section == elf.SHN_ABS ||
			sym.Value >= dataSpaceOffset || strings.HasPrefix(sym.Name, ".") {
			continue
		}

		syms = append(syms, symbols.Symbol{
			Address: uint32(sym.Value),
			Name:    symbolName(sym.Name),
		})
	}
	return syms, nil
}

// symbolName demangles C++ names into a label compatible form.
func symbolName(name string) string {
	demangled := demangle.Filter(name, demangle.NoParams)
	if demangled == name {
		return name
	}
	return strings.NewReplacer("::", "_", " ", "_", "~", "dtor_").Replace(demangled)
}
