package termset

import (
	"github.com/anergictcell/hpo/ontology"
	"github.com/anergictcell/hpo/similarity"
	"github.com/anergictcell/hpo/stats"
)

// Similarity scores s against other using scorer for every (a, b) term
// pair and combiner to reduce the resulting matrix to a scalar.
func (s HpoSet) Similarity(other HpoSet, scorer similarity.TermScorer, combiner func([][]float64) float64) float64 {
	m := similarity.Matrix(s.Terms(), other.Terms(), scorer)
	return combiner(m)
}

// BmwaSimilarity scores s against other with the Bmwa combiner, weighting
// each side's row/column maxima by its members' information content under
// flavor.
func (s HpoSet) BmwaSimilarity(other HpoSet, scorer similarity.TermScorer, flavor ontology.Flavor) float64 {
	aTerms, bTerms := s.Terms(), other.Terms()
	m := similarity.Matrix(aTerms, bTerms, scorer)
	aIC := make([]float64, len(aTerms))
	for i, t := range aTerms {
		aIC[i] = t.InformationContent(flavor)
	}
	bIC := make([]float64, len(bTerms))
	for i, t := range bTerms {
		bIC[i] = t.InformationContent(flavor)
	}
	return similarity.Bmwa(m, aIC, bIC)
}

// GeneEnrichment tests every gene in the set's ontology for hypergeometric
// enrichment against s.
func (s HpoSet) GeneEnrichment() []stats.GeneEnrichmentResult {
	return stats.GeneEnrichment(s.ont, s.group)
}

// DiseaseEnrichment tests every disease in the set's ontology for
// hypergeometric enrichment against s.
func (s HpoSet) DiseaseEnrichment() []stats.DiseaseEnrichmentResult {
	return stats.DiseaseEnrichment(s.ont, s.group)
}
