// Package xref implements the cross-reference tracker that records the source
// and destination of every branch, jump and call with a static target and
// derives labels for the referenced addresses.
package xref

import (
	"fmt"
	"slices"

	"github.com/charlie-x/simget/internal/pattern"
	"github.com/retroenv/retrogolib/set"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// Reference is a single recorded branch, jump or call.
type Reference struct {
	From uint32
	To   uint32
	Kind pattern.ID // template id of the referencing instruction
	Call bool
}

// Label is the label of a referenced address.
type Label struct {
	Address uint32
	Name    string
	Comment string
	Call    bool // referenced by at least one call
}

// Namer supplies names for addresses, for example from a symbol file.
type Namer interface {
	NameFor(address uint32) (name, comment string, ok bool)
}

// view contains the read only operations shared by the tracker and its snapshots.
type view struct {
	references []Reference
	targets    *orderedmap.OrderedMap[uint32, []int] // destination to reference indexes, in first seen order
	calls      set.Set[uint32]                       // destinations of at least one call
	namer      Namer
}

// Tracker records references during a scan. It is not safe for concurrent
// use, concurrent readers should use a Snapshot.
type Tracker struct {
	view
}

// New returns an empty tracker. The namer is optional.
func New(namer Namer) *Tracker {
	return &Tracker{
		view: view{
			targets: orderedmap.New[uint32, []int](),
			calls:   set.New[uint32](),
			namer:   namer,
		},
	}
}

// Record appends a reference.
func (t *Tracker) Record(from, to uint32, kind pattern.ID, call bool) {
	index := len(t.references)
	t.references = append(t.references, Reference{
		From: from,
		To:   to,
		Kind: kind,
		Call: call,
	})

	indexes, _ := t.targets.Get(to)
	t.targets.Set(to, append(indexes, index))
	if call {
		t.calls.Add(to)
	}
}

// Reset removes all references.
func (t *Tracker) Reset() {
	t.references = nil
	t.targets = orderedmap.New[uint32, []int]()
	t.calls = set.New[uint32]()
}

// Snapshot returns an immutable copy of the current state.
func (t *Tracker) Snapshot() *Snapshot {
	targets := orderedmap.New[uint32, []int](orderedmap.WithCapacity[uint32, []int](t.targets.Len()))
	for pair := t.targets.Oldest(); pair != nil; pair = pair.Next() {
		targets.Set(pair.Key, slices.Clone(pair.Value))
	}

	calls := set.New[uint32]()
	for address := range t.calls {
		calls.Add(address)
	}

	return &Snapshot{
		view: view{
			references: slices.Clone(t.references),
			targets:    targets,
			calls:      calls,
			namer:      t.namer,
		},
	}
}

// Snapshot is an immutable state of a tracker. It is safe for concurrent use.
type Snapshot struct {
	view
}

// Len returns the number of recorded references.
func (v *view) Len() int {
	return len(v.references)
}

// ReferencesTo returns all references to the address in recording order.
func (v *view) ReferencesTo(address uint32) []Reference {
	indexes, ok := v.targets.Get(address)
	if !ok {
		return nil
	}

	refs := make([]Reference, 0, len(indexes))
	for _, i := range indexes {
		refs = append(refs, v.references[i])
	}
	return refs
}

// FirstReference returns the first recorded reference to the address.
func (v *view) FirstReference(address uint32) (Reference, bool) {
	indexes, ok := v.targets.Get(address)
	if !ok || len(indexes) == 0 {
		return Reference{}, false
	}
	return v.references[indexes[0]], true
}

// Targets returns all referenced addresses in the order they were first referenced.
func (v *view) Targets() []uint32 {
	targets := make([]uint32, 0, v.targets.Len())
	for pair := v.targets.Oldest(); pair != nil; pair = pair.Next() {
		targets = append(targets, pair.Key)
	}
	return targets
}

// LabelFor returns the label of an address, it exists only if the address is
// referenced. The comment shows only the first reference.
func (v *view) LabelFor(address uint32) (Label, bool) {
	first, ok := v.FirstReference(address)
	if !ok {
		return Label{}, false
	}

	label := Label{
		Address: address,
		Comment: fmt.Sprintf("%s from 0x%04x", first.Kind, first.From),
		Call:    v.calls.Contains(address),
	}

	if v.namer != nil {
		if name, comment, ok := v.namer.NameFor(address); ok {
			label.Name = name
			if comment != "" {
				label.Comment = comment
			}
			return label, true
		}
	}

	if label.Call {
		label.Name = fmt.Sprintf(funcNaming, address)
	} else {
		label.Name = fmt.Sprintf(labelNaming, address)
	}
	return label, true
}

// LabelName returns the name of the label of an address.
func (v *view) LabelName(address uint32) (string, bool) {
	label, ok := v.LabelFor(address)
	return label.Name, ok
}

// Labels returns all labels sorted by address.
func (v *view) Labels() []Label {
	targets := v.Targets()
	slices.Sort(targets)

	labels := make([]Label, 0, len(targets))
	for _, address := range targets {
		label, _ := v.LabelFor(address)
		labels = append(labels, label)
	}
	return labels
}
