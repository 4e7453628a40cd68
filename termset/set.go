package termset

import (
	"gonum.org/v1/gonum/floats"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// HpoSet pairs an HpoGroup with the Ontology that defines it. It is a
// view: it owns its HpoGroup but not the Ontology, which must outlive any
// HpoSet derived from it.
type HpoSet struct {
	ont   *ontology.Ontology
	group hpogroup.HpoGroup
}

// New builds an HpoSet over ont from ids, silently dropping any id that
// does not name a term in ont.
func New(ont *ontology.Ontology, ids ...hpoid.TermId) HpoSet {
	known := make([]hpoid.TermId, 0, len(ids))
	for _, id := range ids {
		if _, ok := ont.GetTerm(id); ok {
			known = append(known, id)
		}
	}
	return FromGroup(ont, hpogroup.New(known...))
}

// FromGroup wraps an already-built HpoGroup as an HpoSet over ont.
func FromGroup(ont *ontology.Ontology, group hpogroup.HpoGroup) HpoSet {
	return HpoSet{ont: ont, group: group}
}

// Group returns the set's underlying HpoGroup.
func (s HpoSet) Group() hpogroup.HpoGroup { return s.group }

// Ontology returns the ontology this set is a view over.
func (s HpoSet) Ontology() *ontology.Ontology { return s.ont }

// Len returns the number of terms in the set.
func (s HpoSet) Len() int { return s.group.Len() }

// Terms returns the set's members as Term views, in ascending TermId
// order.
func (s HpoSet) Terms() []ontology.Term {
	out := make([]ontology.Term, 0, s.group.Len())
	s.group.ForEach(func(id hpoid.TermId) bool {
		if t, ok := s.ont.GetTerm(id); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// ChildNodes returns the subset of members with no other member in their
// AllParents: the set's "leaves" relative to itself.
func (s HpoSet) ChildNodes() HpoSet {
	return HpoSet{ont: s.ont, group: ontology.ChildNodesOf(s.ont, s.group)}
}

// AllAncestors returns the union of AllParents over every member.
func (s HpoSet) AllAncestors() hpogroup.HpoGroup {
	var out hpogroup.HpoGroup
	s.group.ForEach(func(id hpoid.TermId) bool {
		if t, ok := s.ont.GetTerm(id); ok {
			out = out.Union(t.AllParents())
		}
		return true
	})
	return out
}

// InformationContentStats summarizes a flavor's information content across
// a set's members.
type InformationContentStats struct {
	Max  float64
	Mean float64
	Sum  float64
}

// InformationContent returns the (max, mean, sum) of flavor's information
// content over the set's members.
func (s HpoSet) InformationContent(flavor ontology.Flavor) InformationContentStats {
	values := make([]float64, 0, s.group.Len())
	s.group.ForEach(func(id hpoid.TermId) bool {
		if t, ok := s.ont.GetTerm(id); ok {
			values = append(values, t.InformationContent(flavor))
		}
		return true
	})
	if len(values) == 0 {
		return InformationContentStats{}
	}
	return InformationContentStats{
		Max:  floats.Max(values),
		Mean: floats.Sum(values) / float64(len(values)),
		Sum:  floats.Sum(values),
	}
}

// ReplaceObsolete returns a new HpoSet with every obsolete member replaced
// by its ReplacedBy term. A replacement that is itself obsolete is
// followed in turn, bounded by a cycle guard; a member with no
// ReplacedBy is dropped.
func (s HpoSet) ReplaceObsolete() HpoSet {
	var out []hpoid.TermId
	s.group.ForEach(func(id hpoid.TermId) bool {
		t, ok := s.ont.GetTerm(id)
		if !ok {
			return true
		}
		seen := map[hpoid.TermId]bool{}
		for t.Obsolete() {
			next := t.ReplacedBy()
			if next == 0 || seen[next] {
				return true
			}
			seen[next] = true
			nt, ok := s.ont.GetTerm(next)
			if !ok {
				return true
			}
			t = nt
		}
		out = append(out, t.Id())
		return true
	})
	return HpoSet{ont: s.ont, group: hpogroup.FromSlice(out)}
}
