package similarity

import (
	"math"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// TermScorer scores a pair of terms. Every scorer in this package,
// DistanceGraph and Mutation included, is commutative.
type TermScorer func(a, b ontology.Term) float64

// mica finds the most informative common ancestor of a and b under
// flavor: the member of (a.AllParents ∪ {a}) ∩ (b.AllParents ∪ {b}) with
// the largest information content. It returns found=false only when a and
// b share no ancestor, which should not occur for non-obsolete terms in a
// single-rooted ontology.
func mica(a, b ontology.Term, flavor ontology.Flavor) (term ontology.Term, found bool) {
	ont := a.Ontology()
	common := closureWithSelf(a).Intersection(closureWithSelf(b))
	best := -math.MaxFloat64
	common.ForEach(func(id hpoid.TermId) bool {
		t, ok := ont.GetTerm(id)
		if !ok {
			return true
		}
		if ic := t.InformationContent(flavor); ic > best {
			best = ic
			term = t
			found = true
		}
		return true
	})
	return term, found
}

func closureWithSelf(t ontology.Term) hpogroup.HpoGroup {
	return t.AllParents().Union(hpogroup.New(t.Id()))
}

// Resnik scores a pair by the information content of their MICA.
func Resnik(flavor ontology.Flavor) TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		m, ok := mica(a, b, flavor)
		if !ok {
			return 0.0
		}
		return m.InformationContent(flavor)
	}
}

// Lin scores a pair by 2*ic(MICA)/(ic(a)+ic(b)), 0 when the denominator is
// 0.
func Lin(flavor ontology.Flavor) TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		m, ok := mica(a, b, flavor)
		if !ok {
			return 0.0
		}
		denom := a.InformationContent(flavor) + b.InformationContent(flavor)
		if denom == 0 {
			return 0.0
		}
		return 2 * m.InformationContent(flavor) / denom
	}
}

// Jc (Jiang-Conrath) scores a pair by 1/(1 + ic(a) + ic(b) - 2*ic(MICA)).
func Jc(flavor ontology.Flavor) TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		m, ok := mica(a, b, flavor)
		if !ok {
			return 0.0
		}
		return 1.0 / (1.0 + a.InformationContent(flavor) + b.InformationContent(flavor) - 2*m.InformationContent(flavor))
	}
}

// Rel scores a pair by Lin(a,b) * (1 - exp(-ic(MICA))).
func Rel(flavor ontology.Flavor) TermScorer {
	lin := Lin(flavor)
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		m, ok := mica(a, b, flavor)
		if !ok {
			return 0.0
		}
		return lin(a, b) * (1 - math.Exp(-m.InformationContent(flavor)))
	}
}

// Ic scores a pair by ic(MICA) / max(ic(a), ic(b)).
func Ic(flavor ontology.Flavor) TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		m, ok := mica(a, b, flavor)
		if !ok {
			return 0.0
		}
		denom := math.Max(a.InformationContent(flavor), b.InformationContent(flavor))
		if denom == 0 {
			return 0.0
		}
		return m.InformationContent(flavor) / denom
	}
}

// GraphIc scores a pair by (Σ ic(x) over the common-ancestor set) divided
// by (Σ ic(x) over the union of ancestor sets), 0 when the denominator is
// 0.
func GraphIc(flavor ontology.Flavor) TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		ont := a.Ontology()
		ca, cb := closureWithSelf(a), closureWithSelf(b)
		common := ca.Intersection(cb)
		union := ca.Union(cb)
		if common.IsEmpty() {
			return 0.0
		}
		var numer, denom float64
		union.ForEach(func(id hpoid.TermId) bool {
			if t, ok := ont.GetTerm(id); ok {
				denom += t.InformationContent(flavor)
			}
			return true
		})
		common.ForEach(func(id hpoid.TermId) bool {
			if t, ok := ont.GetTerm(id); ok {
				numer += t.InformationContent(flavor)
			}
			return true
		})
		if denom == 0 {
			return 0.0
		}
		return numer / denom
	}
}

// DistanceGraph scores a pair by 1/(1 + distance(a,b)), using the
// bidirectional-BFS shortest path across parent/child edges.
func DistanceGraph() TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		d := a.Distance(b)
		if d < 0 {
			return 0.0
		}
		return 1.0 / (1.0 + float64(d))
	}
}

// Mutation scores a pair by 2*gc/(ga+gb), where ga=|a.Genes()|,
// gb=|b.Genes()|, gc=|MICA.Genes()|, 0 when ga+gb is 0. MICA is selected
// by Gene-flavor information content, matching the gene-association basis
// of the formula.
func Mutation() TermScorer {
	return func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1.0
		}
		ga, gb := len(a.Genes()), len(b.Genes())
		if ga+gb == 0 {
			return 0.0
		}
		m, ok := mica(a, b, ontology.ICGene)
		if !ok {
			return 0.0
		}
		gc := len(m.Genes())
		return 2 * float64(gc) / float64(ga+gb)
	}
}
