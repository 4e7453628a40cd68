package ontology

import (
	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
)

// icFlavor indexes the three information-content flavors a term carries.
type icFlavor int

const (
	icOmim icFlavor = iota
	icOrpha
	icGene
	icFlavorCount
)

// Flavor selects which association count an information-content or
// similarity computation is based on.
type Flavor int

const (
	// ICOmim bases information content on OMIM disease associations.
	ICOmim Flavor = iota
	// ICOrpha bases information content on Orphanet disease associations.
	ICOrpha
	// ICGene bases information content on gene associations.
	ICGene
)

func (f Flavor) index() icFlavor {
	switch f {
	case ICOmim:
		return icOmim
	case ICOrpha:
		return icOrpha
	default:
		return icGene
	}
}

// termData is the arena record for one term. All fields are populated by
// freeze and never mutated afterward; Term views read through to a termData
// by index, never copying a termData out of the arena.
type termData struct {
	id         hpoid.TermId
	name       string
	parents    hpogroup.HpoGroup
	children   hpogroup.HpoGroup
	allParents hpogroup.HpoGroup
	genes      []hpoid.GeneId
	diseases   []diseaseRef
	obsolete   bool
	replacedBy hpoid.TermId
	modifiers  ModifierFlags
	ic         [icFlavorCount]float64
}

// diseaseRef identifies one disease association by its composite key.
type diseaseRef struct {
	source hpoid.Source
	id     hpoid.DiseaseId
}

// Term is a read-only view of one arena term, tied to the Ontology that
// produced it. A Term is only valid as long as its Ontology is reachable;
// it carries no data of its own beyond an arena index.
type Term struct {
	ont *Ontology
	idx int32
}

// Ontology returns the Ontology this term is a view over.
func (t Term) Ontology() *Ontology { return t.ont }

// Id returns the term's canonical identifier.
func (t Term) Id() hpoid.TermId { return t.ont.terms[t.idx].id }

// Name returns the term's label.
func (t Term) Name() string { return t.ont.terms[t.idx].name }

// Parents returns the term's direct is_a relations.
func (t Term) Parents() hpogroup.HpoGroup { return t.ont.terms[t.idx].parents }

// Children returns the terms whose parents include this term.
func (t Term) Children() hpogroup.HpoGroup { return t.ont.terms[t.idx].children }

// AllParents returns the transitive closure of Parents, excluding the term
// itself.
func (t Term) AllParents() hpogroup.HpoGroup { return t.ont.terms[t.idx].allParents }

// Genes returns the upward-closed set of gene ids associated with the term
// or any of its descendants.
func (t Term) Genes() []hpoid.GeneId {
	return t.ont.terms[t.idx].genes
}

// Diseases returns the upward-closed set of disease ids (of any source)
// associated with the term or any of its descendants.
func (t Term) Diseases() []hpoid.DiseaseId {
	refs := t.ont.terms[t.idx].diseases
	out := make([]hpoid.DiseaseId, len(refs))
	for i, r := range refs {
		out[i] = r.id
	}
	return out
}

// DiseasesBySource returns only the disease ids of the given source.
func (t Term) DiseasesBySource(source hpoid.Source) []hpoid.DiseaseId {
	refs := t.ont.terms[t.idx].diseases
	out := make([]hpoid.DiseaseId, 0, len(refs))
	for _, r := range refs {
		if r.source == source {
			out = append(out, r.id)
		}
	}
	return out
}

// InformationContent returns the term's precomputed information content for
// the given flavor.
func (t Term) InformationContent(flavor Flavor) float64 {
	return t.ont.terms[t.idx].ic[flavor.index()]
}

// Obsolete reports whether the term has been retired.
func (t Term) Obsolete() bool { return t.ont.terms[t.idx].obsolete }

// ReplacedBy returns the term's replacement id, or the zero TermId if none
// was recorded.
func (t Term) ReplacedBy() hpoid.TermId { return t.ont.terms[t.idx].replacedBy }

// Modifiers returns the term's modifier-category bitmask.
func (t Term) Modifiers() ModifierFlags { return t.ont.terms[t.idx].modifiers }

// ParentOf reports whether t is an ancestor of other.
func (t Term) ParentOf(other Term) bool {
	return other.ont.terms[other.idx].allParents.Contains(t.Id())
}

// ChildOf reports whether t is a descendant of other.
func (t Term) ChildOf(other Term) bool {
	return other.ParentOf(t)
}

// CommonAncestors returns the intersection of t's and other's AllParents.
func (t Term) CommonAncestors(other Term) hpogroup.HpoGroup {
	return t.AllParents().Intersection(other.AllParents())
}

// Distance returns the length of the shortest path between t and other via
// parent/child edges, computed by bidirectional BFS. It returns -1 if no
// path exists (the terms are in disconnected components).
func (t Term) Distance(other Term) int {
	if t.Id() == other.Id() {
		return 0
	}
	ont := t.ont
	frontierFwd := map[int32]int{t.idx: 0}
	frontierBwd := map[int32]int{other.idx: 0}
	visitedFwd := map[int32]int{t.idx: 0}
	visitedBwd := map[int32]int{other.idx: 0}

	neighbors := func(idx int32) []int32 {
		td := &ont.terms[idx]
		out := make([]int32, 0, td.parents.Len()+td.children.Len())
		td.parents.ForEach(func(id hpoid.TermId) bool {
			if int(id) < len(ont.termIndex) && ont.termIndex[id] != absentIndex {
				out = append(out, ont.termIndex[id])
			}
			return true
		})
		td.children.ForEach(func(id hpoid.TermId) bool {
			if int(id) < len(ont.termIndex) && ont.termIndex[id] != absentIndex {
				out = append(out, ont.termIndex[id])
			}
			return true
		})
		return out
	}

	for layer := 0; layer < len(ont.terms); layer++ {
		expandFwd := frontierFwd
		frontierFwd = map[int32]int{}
		for idx, d := range expandFwd {
			for _, n := range neighbors(idx) {
				if bd, ok := visitedBwd[n]; ok {
					return d + 1 + bd
				}
				if _, seen := visitedFwd[n]; !seen {
					visitedFwd[n] = d + 1
					frontierFwd[n] = d + 1
				}
			}
		}
		expandBwd := frontierBwd
		frontierBwd = map[int32]int{}
		for idx, d := range expandBwd {
			for _, n := range neighbors(idx) {
				if fd, ok := visitedFwd[n]; ok {
					return fd + d + 1
				}
				if _, seen := visitedBwd[n]; !seen {
					visitedBwd[n] = d + 1
					frontierBwd[n] = d + 1
				}
			}
		}
		if len(frontierFwd) == 0 && len(frontierBwd) == 0 {
			break
		}
	}
	return -1
}
