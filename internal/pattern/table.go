package pattern

import (
	"errors"
	"fmt"
	"slices"
)

// Builder collects templates and their emitters. E is the emitter type of the
// architecture, the builder treats it as opaque.
type Builder[E any] struct {
	templates []Template
	emitters  []E
	index     map[ID]int
	errs      []error
}

// NewBuilder returns an empty template builder.
func NewBuilder[E any]() *Builder[E] {
	return &Builder[E]{
		index: map[ID]int{},
	}
}

// Register adds a template. Errors are also remembered and returned by Build,
// so a table with an invalid template can never be built.
func (b *Builder[E]) Register(id ID, pattern string, emitter E) error {
	if _, ok := b.index[id]; ok {
		err := fmt.Errorf("%w: '%s'", ErrDuplicateTemplate, id)
		b.errs = append(b.errs, err)
		return err
	}

	tmpl, err := NewTemplate(id, pattern)
	if err != nil {
		b.errs = append(b.errs, err)
		return err
	}

	b.index[id] = len(b.templates)
	b.templates = append(b.templates, tmpl)
	b.emitters = append(b.emitters, emitter)
	return nil
}

// Supersede replaces the emitter of a registered template without changing its
// pattern. An unknown id leaves the builder unchanged.
func (b *Builder[E]) Supersede(id ID, emitter E) error {
	i, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrSupersedeTargetMissing, id)
	}
	b.emitters[i] = emitter
	return nil
}

// Build returns the immutable table. Templates are ordered by descending
// specificity, templates of equal specificity keep their registration order.
func (b *Builder[E]) Build() (*Table[E], error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("building template table: %w", errors.Join(b.errs...))
	}

	order := make([]int, len(b.templates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, c int) int {
		return b.templates[c].Specificity() - b.templates[a].Specificity()
	})

	index := make(map[ID]int, len(b.index))
	for id, i := range b.index {
		index[id] = i
	}

	return &Table[E]{
		templates: slices.Clone(b.templates),
		emitters:  slices.Clone(b.emitters),
		order:     order,
		index:     index,
	}, nil
}

// Table is an immutable set of templates. It is safe for concurrent use.
type Table[E any] struct {
	templates []Template
	emitters  []E
	order     []int // template indexes in resolution order
	index     map[ID]int
}

// Len returns the number of templates.
func (t *Table[E]) Len() int {
	return len(t.templates)
}

// Template returns the template at the registration index.
func (t *Table[E]) Template(index int) Template {
	return t.templates[index]
}

// Emitter returns the emitter of the template at the registration index.
func (t *Table[E]) Emitter(index int) E {
	return t.emitters[index]
}

// Lookup returns the registration index of the template id.
func (t *Table[E]) Lookup(id ID) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Order returns the template indexes in resolution order.
func (t *Table[E]) Order() []int {
	return slices.Clone(t.order)
}

// Resolve returns the index of the most specific template matching the window
// and its extracted fields. A window matching no template returns false.
func (t *Table[E]) Resolve(window []byte) (int, Fields, bool) {
	for _, i := range t.order {
		if fields, ok := t.templates[i].Match(window); ok {
			return i, fields, true
		}
	}
	return 0, Fields{}, false
}
