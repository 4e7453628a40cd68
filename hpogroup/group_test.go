package hpogroup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anergictcell/hpo/hpoid"
)

func ids(vals ...uint32) []hpoid.TermId {
	out := make([]hpoid.TermId, len(vals))
	for i, v := range vals {
		out[i] = hpoid.TermId(v)
	}
	return out
}

func TestFromSliceSortsAndDedups(t *testing.T) {
	g := FromSlice(ids(5, 3, 5, 1, 3))
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, ids(1, 3, 5), g.Slice())
}

func TestInsertNoOpOnDuplicate(t *testing.T) {
	g := New(ids(1, 2, 3)...)
	g.Insert(hpoid.TermId(2))
	assert.Equal(t, 3, g.Len())
	g.Insert(hpoid.TermId(4))
	assert.Equal(t, ids(1, 2, 3, 4), g.Slice())
}

func TestInsertSpillsToHeap(t *testing.T) {
	var g HpoGroup
	for i := uint32(0); i < inlineCapacity; i++ {
		g.Insert(hpoid.TermId(i))
	}
	assert.Equal(t, inlineCapacity, g.Len())
	g.Insert(hpoid.TermId(inlineCapacity))
	assert.Equal(t, inlineCapacity+1, g.Len())
	for i := uint32(0); i <= inlineCapacity; i++ {
		assert.True(t, g.Contains(hpoid.TermId(i)))
	}
}

func TestContains(t *testing.T) {
	g := New(ids(1, 3, 5)...)
	assert.True(t, g.Contains(hpoid.TermId(3)))
	assert.False(t, g.Contains(hpoid.TermId(4)))
}

// S3 (HpoGroup algebra) from spec.md.
func TestAlgebra(t *testing.T) {
	a := New(ids(1, 3, 5)...)
	b := New(ids(2, 3, 4)...)

	assert.Equal(t, ids(1, 2, 3, 4, 5), a.Union(b).Slice())
	assert.Equal(t, ids(3), a.Intersection(b).Slice())
	assert.Equal(t, ids(1, 5), a.Difference(b).Slice())
	assert.Equal(t, ids(1, 2, 4, 5), a.SymmetricDifference(b).Slice())
}

func TestUnionCommutativeAssociativeIdempotent(t *testing.T) {
	a := New(ids(1, 3, 5)...)
	b := New(ids(2, 3, 4)...)
	c := New(ids(4, 6)...)

	assert.True(t, a.Union(b).Equal(b.Union(a)))
	assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))))
	assert.True(t, a.Union(a).Equal(a))
}

func TestIntersectionDistributesOverUnion(t *testing.T) {
	a := New(ids(1, 2, 3, 4)...)
	b := New(ids(2, 3, 5)...)
	c := New(ids(3, 4, 6)...)

	lhs := a.Intersection(b.Union(c))
	rhs := a.Intersection(b).Union(a.Intersection(c))
	assert.True(t, lhs.Equal(rhs))
}

func TestDifferenceIsSubsetOfA(t *testing.T) {
	a := New(ids(1, 2, 3)...)
	b := New(ids(2, 3, 4)...)
	diff := a.Difference(b)
	diff.ForEach(func(id hpoid.TermId) bool {
		assert.True(t, a.Contains(id))
		return true
	})
}

func TestEmptyGroupIsZeroValueReady(t *testing.T) {
	var g HpoGroup
	assert.True(t, g.IsEmpty())
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Contains(hpoid.TermId(1)))
}
