package loader

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Intel HEX record types that are rewritten before parsing.
const (
	recordEndOfFile              = 0x01
	recordExtendedSegmentAddress = 0x02
	recordStartSegmentAddress    = 0x03
	recordExtendedLinearAddress  = 0x04
	recordStartLinearAddress     = 0x05
)

const endOfFileRecord = ":00000001FF"

var errInvalidRecord = errors.New("invalid record")

// parseIntelHex converts an Intel HEX file into a memory image starting at
// address 0. Gaps between data records are filled with erased flash bytes.
func parseIntelHex(data []byte) ([]byte, error) {
	normalized, err := normalizeIntelHex(data)
	if err != nil {
		return nil, err
	}

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(normalized)); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidRecord, err)
	}

	var end int64
	for _, segment := range mem.GetDataSegments() {
		end = max(end, int64(segment.Address)+int64(len(segment.Data)))
	}
	if end > maxFirmwareSize {
		return nil, fmt.Errorf("data up to address 0x%x exceeds the maximum firmware size", end)
	}
	if end == 0 {
		return nil, nil
	}
	return mem.ToBinary(0, uint32(end), erasedFlash), nil
}

// normalizeIntelHex prepares the records for the hex parser: blank lines and
// records after the end of file record are dropped, segment address records
// are rewritten to their linear address form and a
// missing end of file record is appended. Other records pass unchanged.
func normalizeIntelHex(data []byte) ([]byte, error) {
	var out bytes.Buffer

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		typ, payload, ok := recordFields(line)
		switch {
		case !ok:
			// validated by the hex parser

		case typ == recordEndOfFile:
			out.WriteString(endOfFileRecord + "\n")
			return out.Bytes(), nil

		case typ == recordExtendedSegmentAddress:
			segment := uint32(payload[0])<<8 | uint32(payload[1])
			if segment&0x0fff != 0 {
				return nil, fmt.Errorf("line %d: %w: segment 0x%04x is not 64 KB aligned",
					lineNumber, errInvalidRecord, segment)
			}
			line = encodeRecord(recordExtendedLinearAddress, []byte{0, byte(segment >> 12)})

		case typ == recordStartSegmentAddress:
			cs := uint32(payload[0])<<8 | uint32(payload[1])
			ip := uint32(payload[2])<<8 | uint32(payload[3])
			linear := cs<<4 + ip
			line = encodeRecord(recordStartLinearAddress,
				[]byte{byte(linear >> 24), byte(linear >> 16), byte(linear >> 8), byte(linear)})
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hex file: %w", err)
	}

	out.WriteString(endOfFileRecord + "\n")
	return out.Bytes(), nil
}

// recordFields returns the type and payload of a well formed segment address
// or end of file record. Any other line returns false and is left for the
// hex parser to accept or reject.
func recordFields(line string) (byte, []byte, bool) {
	if len(line) < 11 || line[0] != ':' {
		return 0, nil, false
	}
	raw, err := hex.DecodeString(line[1:])
	if err != nil || len(raw) != int(raw[0])+5 {
		return 0, nil, false
	}

	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		return 0, nil, false
	}

	typ, payload := raw[3], raw[4:len(raw)-1]
	switch {
	case typ == recordEndOfFile,
		typ == recordExtendedSegmentAddress && len(payload) == 2,
		typ == recordStartSegmentAddress && len(payload) == 4:
		return typ, payload, true
	default:
		return 0, nil, false
	}
}

// encodeRecord returns an address 0 record with its checksum.
func encodeRecord(typ byte, payload []byte) string {
	raw := make([]byte, 0, len(payload)+5)
	raw = append(raw, byte(len(payload)), 0, 0, typ)
	raw = append(raw, payload...)

	var sum byte
	for _, b := range raw {
		sum += b
	}
	raw = append(raw, -sum)
	return ":" + strings.ToUpper(hex.EncodeToString(raw))
}
