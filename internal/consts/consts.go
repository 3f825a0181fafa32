// Package consts provides the I/O register names of the supported
// microcontrollers that replace numeric I/O addresses in the output.
package consts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// DefaultMCU is used when no microcontroller is specified.
const DefaultMCU = "attiny4313"

// IOOffset is the distance between the I/O address space used by in, out, sbi
// and cbi and the data address space used by lds and sts.
const IOOffset = 0x20

// Constant is a named I/O register.
type Constant struct {
	Address uint16 // I/O space address
	Name    string
}

// MCU describes a microcontroller.
type MCU struct {
	Name      string
	FlashSize int // program memory size in bytes, 0 for unknown
	Registers []Constant
}

// Consts provides the register names of one microcontroller. It is read only
// after creation and safe for concurrent use.
type Consts struct {
	mcu       MCU
	constants map[uint16]Constant
}

// New returns the constants of the named microcontroller.
func New(mcu string) (*Consts, error) {
	if mcu == "" {
		mcu = DefaultMCU
	}

	desc, ok := mcus[strings.ToLower(mcu)]
	if !ok {
		return nil, fmt.Errorf("unsupported mcu '%s', supported: %s", mcu, strings.Join(MCUs(), ", "))
	}

	c := &Consts{
		mcu:       desc,
		constants: make(map[uint16]Constant, len(desc.Registers)+len(coreRegisters)),
	}
	for _, reg := range coreRegisters {
		c.constants[reg.Address] = reg
	}
	for _, reg := range desc.Registers {
		c.constants[reg.Address] = reg
	}
	return c, nil
}

// MCUs returns the names of all supported microcontrollers.
func MCUs() []string {
	names := make([]string, 0, len(mcus))
	for name := range mcus {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MCU returns the microcontroller description.
func (c *Consts) MCU() MCU {
	return c.mcu
}

// Get returns the register at the I/O address.
func (c *Consts) Get(address uint16) (Constant, bool) {
	constant, ok := c.constants[address]
	return constant, ok
}

// DataAddress returns the register mapped at the data space address.
func (c *Consts) DataAddress(address uint32) (Constant, bool) {
	if address < IOOffset || address >= IOOffset+0x40 {
		return Constant{}, false
	}
	return c.Get(uint16(address - IOOffset))
}

// Sorted returns the registers of the given addresses sorted by address,
// addresses without a name are skipped.
func (c *Consts) Sorted(addresses set.Set[uint16]) []Constant {
	result := make([]Constant, 0, len(addresses))
	for address := range addresses {
		if constant, ok := c.constants[address]; ok {
			result = append(result, constant)
		}
	}
	slices.SortFunc(result, func(a, b Constant) int {
		return int(a.Address) - int(b.Address)
	})
	return result
}
