package hpogroup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anergictcell/hpo/hpoid"
)

// inlineCapacity is the number of elements an HpoGroup can hold without a
// heap allocation. Direct parent/child sets and typical patient phenotype
// profiles fall well within this bound; larger groups (e.g. all_parents of
// a deep term) spill to a heap-allocated slice transparently.
const inlineCapacity = 30

// HpoGroup is an ordered, deduplicated set of hpoid.TermId values. The
// zero value is the empty group, ready to use.
//
// HpoGroup is a value type: copying it copies the set. The inline backing
// array lives inside the struct and is copied with it; a spilled group's
// heap slice is shared by copies but never modified in place (Insert
// allocates a new one), so a copy never sees later changes to the
// original. Every accessor recomputes its view from the receiver rather
// than caching a slice header that points into `small`.
type HpoGroup struct {
	n     int
	small [inlineCapacity]hpoid.TermId
	heap  []hpoid.TermId
}

// New collects ids into a sorted, deduplicated HpoGroup.
func New(ids ...hpoid.TermId) HpoGroup {
	return FromSlice(ids)
}

// FromSlice copies, sorts, and deduplicates ids into an HpoGroup. The input
// slice is never mutated or retained.
func FromSlice(ids []hpoid.TermId) HpoGroup {
	if len(ids) == 0 {
		return HpoGroup{}
	}
	cp := make([]hpoid.TermId, len(ids))
	copy(cp, ids)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	cp = dedupSorted(cp)
	return fromOwnedSorted(cp)
}

// dedupSorted compacts a sorted slice in place, removing adjacent
// duplicates, and returns the compacted prefix.
func dedupSorted(s []hpoid.TermId) []hpoid.TermId {
	if len(s) == 0 {
		return s
	}
	k := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[k-1] {
			s[k] = s[i]
			k++
		}
	}
	return s[:k]
}

// fromOwnedSorted wraps an already sorted, deduplicated, exclusively-owned
// slice into an HpoGroup, choosing inline or heap storage by size.
func fromOwnedSorted(sorted []hpoid.TermId) HpoGroup {
	g := HpoGroup{n: len(sorted)}
	if len(sorted) <= inlineCapacity {
		copy(g.small[:], sorted)
	} else {
		g.heap = sorted
	}
	return g
}

// raw returns the live backing slice: g.heap if the group has spilled,
// otherwise the occupied prefix of g.small. Callers must not retain or
// mutate the result past the next mutation of g.
func (g HpoGroup) raw() []hpoid.TermId {
	if g.heap != nil {
		return g.heap
	}
	return g.small[:g.n]
}

// Len returns the number of elements in g.
func (g HpoGroup) Len() int { return g.n }

// IsEmpty reports whether g has no elements.
func (g HpoGroup) IsEmpty() bool { return g.n == 0 }

// Contains reports whether id is a member of g. Runs in O(log n).
func (g HpoGroup) Contains(id hpoid.TermId) bool {
	items := g.raw()
	i := sort.Search(len(items), func(i int) bool { return items[i] >= id })
	return i < len(items) && items[i] == id
}

// At returns the i'th smallest element of g. It panics if i is out of
// range, matching slice indexing semantics.
func (g HpoGroup) At(i int) hpoid.TermId {
	return g.raw()[i]
}

// Slice returns a defensive copy of g's elements in ascending order.
func (g HpoGroup) Slice() []hpoid.TermId {
	items := g.raw()
	out := make([]hpoid.TermId, len(items))
	copy(out, items)
	return out
}

// ForEach calls f once for each element of g in ascending order, stopping
// early if f returns false. It performs no allocation.
func (g HpoGroup) ForEach(f func(hpoid.TermId) bool) {
	for _, id := range g.raw() {
		if !f(id) {
			return
		}
	}
}

// Insert adds id to g if it is not already present. O(log n) search plus
// O(n) shift; a no-op if id is already a member.
func (g *HpoGroup) Insert(id hpoid.TermId) {
	items := g.raw()
	idx := sort.Search(len(items), func(i int) bool { return items[i] >= id })
	if idx < len(items) && items[idx] == id {
		return
	}
	newN := g.n + 1
	if newN <= inlineCapacity {
		copy(g.small[idx+1:newN], g.small[idx:g.n])
		g.small[idx] = id
		g.n = newN
		return
	}
	grown := make([]hpoid.TermId, newN)
	copy(grown[:idx], items[:idx])
	grown[idx] = id
	copy(grown[idx+1:], items[idx:])
	g.heap = grown
	g.n = newN
}

// Union returns the sorted union of g and other.
func (g HpoGroup) Union(other HpoGroup) HpoGroup {
	a, b := g.raw(), other.raw()
	out := make([]hpoid.TermId, 0, len(a)+len(b))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return fromOwnedSorted(out)
}

// Intersection returns the sorted intersection of g and other.
func (g HpoGroup) Intersection(other HpoGroup) HpoGroup {
	a, b := g.raw(), other.raw()
	out := make([]hpoid.TermId, 0, min(len(a), len(b)))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return fromOwnedSorted(out)
}

// Difference returns the sorted set of elements in g but not in other.
func (g HpoGroup) Difference(other HpoGroup) HpoGroup {
	a, b := g.raw(), other.raw()
	out := make([]hpoid.TermId, 0, len(a))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return fromOwnedSorted(out)
}

// SymmetricDifference returns the sorted set of elements that are in
// exactly one of g and other.
func (g HpoGroup) SymmetricDifference(other HpoGroup) HpoGroup {
	a, b := g.raw(), other.raw()
	out := make([]hpoid.TermId, 0, len(a)+len(b))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return fromOwnedSorted(out)
}

// Equal reports whether g and other contain exactly the same elements.
func (g HpoGroup) Equal(other HpoGroup) bool {
	a, b := g.raw(), other.raw()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// String renders g as "{id1, id2, ...}" in ascending order, for debugging
// and test failure messages.
func (g HpoGroup) String() string {
	items := g.raw()
	parts := make([]string, len(items))
	for i, id := range items {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

var _ fmt.Stringer = HpoGroup{}
