package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// UsageSite records one place where an index subscripts a tensor: the
// tensor's name, the axis position of the subscript, and the source
// position of the index token (for diagnostics).
type UsageSite struct {
	Tensor string
	Axis   int
	Pos    Pos
}

type indexEntry struct {
	declPos Pos
	sites   []UsageSite
}

// IndexRegistry records, for every distinct index name, every usage site
// in first-seen order. Names are kept in first-declared order, which the
// code generator relies on to emit header bindings deterministically.
//
// The registry is populated by the parser and read-only afterwards.
type IndexRegistry struct {
	entries *linkedhashmap.Map // index name -> *indexEntry, insertion-ordered
}

// NewIndexRegistry creates an empty index registry.
func NewIndexRegistry() *IndexRegistry {
	return &IndexRegistry{entries: linkedhashmap.New()}
}

// Declare records an index name. Re-declaring a name (a later binder
// reusing it) keeps the first declaration's order slot; duplicate
// detection within a single binder is the parser's job.
func (r *IndexRegistry) Declare(name string, pos Pos) {
	if _, found := r.entries.Get(name); found {
		return
	}
	r.entries.Put(name, &indexEntry{declPos: pos})
}

// AddUse appends a usage site under an index name. It reports false if
// the name was never declared.
func (r *IndexRegistry) AddUse(name string, site UsageSite) bool {
	v, found := r.entries.Get(name)
	if !found {
		return false
	}
	entry := v.(*indexEntry)
	entry.sites = append(entry.sites, site)
	return true
}

// Names returns all declared index names in first-declared order.
func (r *IndexRegistry) Names() []string {
	keys := r.entries.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Sites returns the usage sites of an index in first-seen order. The
// slice is shared with the registry and must not be mutated.
func (r *IndexRegistry) Sites(name string) []UsageSite {
	v, found := r.entries.Get(name)
	if !found {
		return nil
	}
	return v.(*indexEntry).sites
}

// DeclPos returns the source position of the index's first declaration.
func (r *IndexRegistry) DeclPos(name string) Pos {
	v, found := r.entries.Get(name)
	if !found {
		return Pos{}
	}
	return v.(*indexEntry).declPos
}

// TensorRegistry records, per tensor name, the arity the tensor was first
// subscripted with. Every later use must agree.
type TensorRegistry struct {
	ranks map[string]int
}

// NewTensorRegistry creates an empty tensor registry.
func NewTensorRegistry() *TensorRegistry {
	return &TensorRegistry{ranks: make(map[string]int)}
}

// Observe records the arity of one tensor use. It reports false if the
// tensor was seen before with a different arity; the registry entry is
// never overwritten.
func (t *TensorRegistry) Observe(name string, arity int) bool {
	if known, found := t.ranks[name]; found {
		return known == arity
	}
	t.ranks[name] = arity
	return true
}

// Rank returns the declared rank of a tensor. Calling it for a name the
// parser never saw is a programming-contract violation, not a user-facing
// condition, and panics.
func (t *TensorRegistry) Rank(name string) int {
	rank, found := t.ranks[name]
	if !found {
		panic(fmt.Sprintf("missing tensor name: %q", name))
	}
	return rank
}
