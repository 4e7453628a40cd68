package ontology

import (
	"sort"
	"strings"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/util"
)

// absentIndex is the sentinel stored in termIndex for TermIds that do not
// name a term in this ontology.
const absentIndex int32 = -1

// Ontology is the frozen, read-only Human Phenotype Ontology. It owns three
// arenas (terms, genes, diseases) and the secondary indexes used for O(1)
// lookup. Every read method is safe for concurrent use by any number of
// goroutines: nothing here is ever mutated after Freeze returns.
type Ontology struct {
	terms    []termData
	genes    []geneData
	diseases []diseaseData

	// termIndex is a direct-address table: TermId -> arena index, sized
	// to the full 7-digit id space. This trades ~40MiB of steady-state
	// memory for O(1) term lookup, per spec.
	termIndex []int32

	termNameIndex *hashIndex[string]
	geneIndex     *hashIndex[uint32]
	geneNameIndex *hashIndex[string]
	diseaseIndex  *hashIndex[uint64]

	// altId resolves alt_id and obsolete replaced_by chains to their
	// canonical term, so GetTerm transparently follows a retired id.
	altId map[hpoid.TermId]hpoid.TermId
}

// GetTerm returns the term named by id, resolving alt_id redirects
// transparently. The second return value is false if id names no term.
func (o *Ontology) GetTerm(id hpoid.TermId) (Term, bool) {
	id = o.ResolveTermId(id)
	if int(id) >= len(o.termIndex) {
		return Term{}, false
	}
	idx := o.termIndex[id]
	if idx == absentIndex {
		return Term{}, false
	}
	return Term{ont: o, idx: idx}, true
}

// ResolveTermId follows any recorded alt_id redirect for id and returns the
// canonical id. If id carries no redirect, it is returned unchanged.
func (o *Ontology) ResolveTermId(id hpoid.TermId) hpoid.TermId {
	seen := map[hpoid.TermId]bool{}
	for {
		canon, ok := o.altId[id]
		if !ok || canon == id || seen[id] {
			return id
		}
		seen[id] = true
		id = canon
	}
}

// GetTermByName returns the term with the given exact name. Among terms
// sharing a name (only possible between an obsolete and a non-obsolete
// term, since invariant 6 requires uniqueness among non-obsolete terms),
// the non-obsolete one is preferred.
func (o *Ontology) GetTermByName(name string) (Term, bool) {
	idx, ok := o.termNameIndex.get(name)
	if !ok {
		return Term{}, false
	}
	return Term{ont: o, idx: idx}, true
}

// Search returns every term whose name contains substr, in arena order.
func (o *Ontology) Search(substr string) []Term {
	var out []Term
	for i := range o.terms {
		if strings.Contains(o.terms[i].name, substr) {
			out = append(out, Term{ont: o, idx: int32(i)})
		}
	}
	return out
}

// FuzzySearch returns terms whose name is within maxDistance edits of
// query, ordered by increasing edit distance. Use this for typo-tolerant
// lookups where Search's exact substring match misses a near-spelling of
// a term name.
func (o *Ontology) FuzzySearch(query string, maxDistance int) []Term {
	type scored struct {
		term Term
		dist int
	}
	var matches []scored
	for i := range o.terms {
		d := util.Levenshtein(o.terms[i].name, query)
		if d <= maxDistance {
			matches = append(matches, scored{Term{ont: o, idx: int32(i)}, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })
	out := make([]Term, len(matches))
	for i, m := range matches {
		out[i] = m.term
	}
	return out
}

// GetGene returns the gene named by id.
func (o *Ontology) GetGene(id hpoid.GeneId) (Gene, bool) {
	idx, ok := o.geneIndex.get(uint32(id))
	if !ok {
		return Gene{}, false
	}
	return Gene{ont: o, idx: idx}, true
}

// GetGeneByName returns the gene with the given exact symbol.
func (o *Ontology) GetGeneByName(name string) (Gene, bool) {
	idx, ok := o.geneNameIndex.get(name)
	if !ok {
		return Gene{}, false
	}
	return Gene{ont: o, idx: idx}, true
}

// GetDisease returns the disease named by (source, id).
func (o *Ontology) GetDisease(source hpoid.Source, id hpoid.DiseaseId) (Disease, bool) {
	idx, ok := o.diseaseIndex.get(diseaseIndexKey(uint8(source), uint32(id)))
	if !ok {
		return Disease{}, false
	}
	return Disease{ont: o, idx: idx}, true
}

// IterTerms calls f once for every term in arena order, stopping early if f
// returns false.
func (o *Ontology) IterTerms(f func(Term) bool) {
	for i := range o.terms {
		if !f((Term{ont: o, idx: int32(i)})) {
			return
		}
	}
}

// IterGenes calls f once for every gene in arena order, stopping early if f
// returns false.
func (o *Ontology) IterGenes(f func(Gene) bool) {
	for i := range o.genes {
		if !f((Gene{ont: o, idx: int32(i)})) {
			return
		}
	}
}

// IterDiseases calls f once for every disease in arena order, stopping
// early if f returns false.
func (o *Ontology) IterDiseases(f func(Disease) bool) {
	for i := range o.diseases {
		if !f((Disease{ont: o, idx: int32(i)})) {
			return
		}
	}
}

// TermsWithModifier calls f once for every term carrying all of flag's
// bits, in arena order, stopping early if f returns false.
func (o *Ontology) TermsWithModifier(flag ModifierFlags, f func(Term) bool) {
	for i := range o.terms {
		if o.terms[i].modifiers.Has(flag) {
			if !f((Term{ont: o, idx: int32(i)})) {
				return
			}
		}
	}
}

// DiseasesBySource calls f once for every disease of the given source, in
// arena order, stopping early if f returns false.
func (o *Ontology) DiseasesBySource(source hpoid.Source, f func(Disease) bool) {
	for i := range o.diseases {
		if o.diseases[i].source == source {
			if !f((Disease{ont: o, idx: int32(i)})) {
				return
			}
		}
	}
}

// AllGeneIds returns every gene id known to the ontology, in arena order.
func (o *Ontology) AllGeneIds() []hpoid.GeneId {
	out := make([]hpoid.GeneId, len(o.genes))
	for i := range o.genes {
		out[i] = o.genes[i].id
	}
	return out
}

// AllDiseaseIds returns the id of every disease known to the ontology, in
// arena order. The ids carry no Source, so diseases from different sources
// that share a numeric id appear as equal values.
func (o *Ontology) AllDiseaseIds() []hpoid.DiseaseId {
	out := make([]hpoid.DiseaseId, len(o.diseases))
	for i := range o.diseases {
		out[i] = o.diseases[i].id
	}
	return out
}

// OntologySummary reports the size of a frozen ontology, for diagnostics.
type OntologySummary struct {
	Terms    int
	Genes    int
	Diseases int
	Obsolete int
}

// Stats summarizes the ontology's arena sizes.
func (o *Ontology) Stats() OntologySummary {
	s := OntologySummary{Terms: len(o.terms), Genes: len(o.genes), Diseases: len(o.diseases)}
	for i := range o.terms {
		if o.terms[i].obsolete {
			s.Obsolete++
		}
	}
	return s
}

// SubontologyFilter controls how Subontology trims genes/diseases from the
// extracted subtree.
type SubontologyFilter struct {
	// AssociationsRequired, when true, drops genes and diseases that have
	// no remaining association once restricted to the retained terms.
	AssociationsRequired bool
}

// Subontology returns a new, independent Ontology containing root and all
// of its descendants (terms reachable by following Children), with gene
// and disease annotations filtered to that retained term set.
func (o *Ontology) Subontology(root hpoid.TermId, filter SubontologyFilter) (*Ontology, error) {
	rootTerm, ok := o.GetTerm(root)
	if !ok {
		return nil, newErr(UnknownTerm, nil, "subontology root %s not found", root)
	}

	retained := map[hpoid.TermId]bool{rootTerm.Id(): true}
	queue := []hpoid.TermId{rootTerm.Id()}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t, _ := o.GetTerm(id)
		t.Children().ForEach(func(c hpoid.TermId) bool {
			if !retained[c] {
				retained[c] = true
				queue = append(queue, c)
			}
			return true
		})
	}

	b := NewBuilder()
	o.IterTerms(func(t Term) bool {
		if !retained[t.Id()] {
			return true
		}
		var parents []hpoid.TermId
		t.Parents().ForEach(func(p hpoid.TermId) bool {
			if retained[p] {
				parents = append(parents, p)
			}
			return true
		})
		_ = b.AddTerm(TermInput{
			Id:         t.Id(),
			Name:       t.Name(),
			Parents:    parents,
			Obsolete:   t.Obsolete(),
			ReplacedBy: t.ReplacedBy(),
			Modifiers:  t.Modifiers(),
		})
		return true
	})

	o.IterGenes(func(g Gene) bool {
		var terms []hpoid.TermId
		g.Terms().ForEach(func(id hpoid.TermId) bool {
			if retained[id] {
				terms = append(terms, id)
			}
			return true
		})
		if len(terms) == 0 && filter.AssociationsRequired {
			return true
		}
		for _, id := range terms {
			_ = b.AddGeneAssociation(id, g.Id(), g.Name())
		}
		return true
	})

	o.IterDiseases(func(d Disease) bool {
		var terms []hpoid.TermId
		d.Terms().ForEach(func(id hpoid.TermId) bool {
			if retained[id] {
				terms = append(terms, id)
			}
			return true
		})
		if len(terms) == 0 && filter.AssociationsRequired {
			return true
		}
		for _, id := range terms {
			_ = b.AddDiseaseAssociation(id, d.Source(), d.Id(), d.Name())
		}
		return true
	})

	return b.Freeze()
}

// ChildNodesOf filters g down to the members with no other member of g in
// their AllParents. termset.HpoSet.ChildNodes delegates here.
func ChildNodesOf(o *Ontology, g hpogroup.HpoGroup) hpogroup.HpoGroup {
	var out []hpoid.TermId
	g.ForEach(func(id hpoid.TermId) bool {
		t, ok := o.GetTerm(id)
		if !ok {
			return true
		}
		isAncestorOfAnother := false
		g.ForEach(func(other hpoid.TermId) bool {
			if other == id {
				return true
			}
			if ot, ok := o.GetTerm(other); ok && ot.AllParents().Contains(id) {
				isAncestorOfAnother = true
				return false
			}
			return true
		})
		if !isAncestorOfAnother {
			out = append(out, id)
		}
		return true
	})
	return hpogroup.FromSlice(out)
}
