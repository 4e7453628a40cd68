package stats

import (
	"math"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// GeneEnrichmentResult is one candidate gene's enrichment report.
type GeneEnrichmentResult struct {
	GeneId         hpoid.GeneId
	Observed       int
	Expected       float64
	FoldEnrichment float64
	PValue         float64
}

// DiseaseEnrichmentResult is one candidate disease's enrichment report.
type DiseaseEnrichmentResult struct {
	Source         hpoid.Source
	DiseaseId      hpoid.DiseaseId
	Observed       int
	Expected       float64
	FoldEnrichment float64
	PValue         float64
}

// expandedTerms returns direct's terms unioned with each one's AllParents:
// the same set that would appear in term.genes/term.diseases for an entity
// annotated exactly to direct, by the upward-closure freeze rule.
func expandedTerms(ont *ontology.Ontology, direct hpogroup.HpoGroup) hpogroup.HpoGroup {
	var out hpogroup.HpoGroup
	direct.ForEach(func(id hpoid.TermId) bool {
		out.Insert(id)
		if t, ok := ont.GetTerm(id); ok {
			out = out.Union(t.AllParents())
		}
		return true
	})
	return out
}

// GeneEnrichment tests every gene in ont for hypergeometric enrichment
// against query. Population N is the ontology's total term count; success
// count K is |query|; a gene's draw size n is the size of its expanded
// (direct + ancestor) term set; observed overlap k is the intersection of
// that expanded set with query. Results are unordered; sort with
// ByPValue/ByFoldEnrichment.
func GeneEnrichment(ont *ontology.Ontology, query hpogroup.HpoGroup) []GeneEnrichmentResult {
	n := ont.Stats().Terms
	k := query.Len()
	var out []GeneEnrichmentResult
	ont.IterGenes(func(g ontology.Gene) bool {
		expanded := expandedTerms(ont, g.Terms())
		drawSize := expanded.Len()
		observed := expanded.Intersection(query).Len()
		expected := float64(drawSize) * float64(k) / float64(n)
		out = append(out, GeneEnrichmentResult{
			GeneId:         g.Id(),
			Observed:       observed,
			Expected:       expected,
			FoldEnrichment: foldEnrichment(observed, expected),
			PValue:         upperTailPValue(observed, k, drawSize, n),
		})
		return true
	})
	return out
}

// DiseaseEnrichment tests every disease in ont under the same model as
// GeneEnrichment.
func DiseaseEnrichment(ont *ontology.Ontology, query hpogroup.HpoGroup) []DiseaseEnrichmentResult {
	n := ont.Stats().Terms
	k := query.Len()
	var out []DiseaseEnrichmentResult
	ont.IterDiseases(func(d ontology.Disease) bool {
		expanded := expandedTerms(ont, d.Terms())
		drawSize := expanded.Len()
		observed := expanded.Intersection(query).Len()
		expected := float64(drawSize) * float64(k) / float64(n)
		out = append(out, DiseaseEnrichmentResult{
			Source:         d.Source(),
			DiseaseId:      d.Id(),
			Observed:       observed,
			Expected:       expected,
			FoldEnrichment: foldEnrichment(observed, expected),
			PValue:         upperTailPValue(observed, k, drawSize, n),
		})
		return true
	})
	return out
}

func foldEnrichment(observed int, expected float64) float64 {
	if expected == 0 {
		if observed == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(observed) / expected
}

// logChoose returns ln(C(n,k)) via log-gamma, avoiding overflow for n in
// the tens of thousands.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n-k) + 1)
	return a - b - c
}

// upperTailPValue computes P(X >= k) for X ~ Hypergeometric(N, K, n) in
// log-space: population size N, success count K, draw size n.
func upperTailPValue(k, successes, draws, population int) float64 {
	upper := draws
	if successes < upper {
		upper = successes
	}
	if k > upper {
		return 0
	}
	if k < 0 {
		k = 0
	}
	logDenom := logChoose(population, draws)
	sum := 0.0
	for i := k; i <= upper; i++ {
		logP := logChoose(successes, i) + logChoose(population-successes, draws-i) - logDenom
		sum += math.Exp(logP)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}
