// Package tags implements the data classifier that marks address ranges of
// the program memory as data, loaded from a YAML tag file.
package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

var errInvalidRange = errors.New("invalid data range")

// Range is a tagged data range. Either End (exclusive) or Size has to be set.
type Range struct {
	Start   uint32 `yaml:"start" json:"start"`
	End     uint32 `yaml:"end,omitempty" json:"end,omitempty"`
	Size    uint32 `yaml:"size,omitempty" json:"size,omitempty"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// File is the format of a tag file.
type File struct {
	Data []Range `yaml:"data" json:"data"`
}

// Tags contains the merged, sorted data ranges. It is read only after loading
// and safe for concurrent use.
type Tags struct {
	ranges []Range // sorted by start, not overlapping, End always set
}

// New returns the tags of the given ranges. Overlapping and adjacent ranges
// are merged, the merged range keeps the first comment.
func New(ranges []Range) (*Tags, error) {
	normalized := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.End == 0 && r.Size > 0 {
			r.End = r.Start + r.Size
		}
		if r.End <= r.Start {
			return nil, fmt.Errorf("%w: start 0x%04x end 0x%04x size %d", errInvalidRange, r.Start, r.End, r.Size)
		}
		r.Size = 0
		normalized = append(normalized, r)
	}

	slices.SortStableFunc(normalized, func(a, b Range) int {
		return int(int64(a.Start) - int64(b.Start))
	})

	merged := make([]Range, 0, len(normalized))
	for _, r := range normalized {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			last := &merged[n-1]
			last.End = max(last.End, r.End)
			if last.Comment == "" {
				last.Comment = r.Comment
			}
			continue
		}
		merged = append(merged, r)
	}

	return &Tags{ranges: merged}, nil
}

// Load reads a YAML tag file.
func Load(reader io.Reader) (*Tags, error) {
	var file File
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding tag file: %w", err)
	}
	return New(file.Data)
}

// LoadFile reads the YAML tag file with the given name.
func LoadFile(fileName string) (*Tags, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening tag file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Load(f)
}

// Ranges returns the merged data ranges.
func (t *Tags) Ranges() []Range {
	return slices.Clone(t.ranges)
}

// Classify returns the number of data bytes from the address to the end of
// its data range, 0 if the address is not tagged as data.
func (t *Tags) Classify(_ []byte, address uint32) int {
	r, ok := t.find(address)
	if !ok {
		return 0
	}
	return int(r.End - address)
}

// Comment returns the comment of the data range containing the address.
func (t *Tags) Comment(address uint32) string {
	r, _ := t.find(address)
	return r.Comment
}

func (t *Tags) find(address uint32) (Range, bool) {
	// first range that ends after the address
	i := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].End > address
	})
	if i == len(t.ranges) || t.ranges[i].Start > address {
		return Range{}, false
	}
	return t.ranges[i], true
}
