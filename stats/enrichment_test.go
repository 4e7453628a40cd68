package stats

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// buildEnrichmentFixture is a 3-term chain (1 <- 2 <- 3) with one gene
// annotated to the leaf, so its upward-closed term set covers the whole
// ontology.
func buildEnrichmentFixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "root"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "mid", Parents: []hpoid.TermId{1}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 3, Name: "leaf", Parents: []hpoid.TermId{2}}))
	require.NoError(t, b.AddGeneAssociation(3, 10, "G1"))
	ont, err := b.Freeze()
	require.NoError(t, err)
	return ont
}

func TestGeneEnrichmentMatchesWorkedExample(t *testing.T) {
	ont := buildEnrichmentFixture(t)
	query := hpogroup.New(hpoid.TermId(1))

	results := GeneEnrichment(ont, query)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, hpoid.GeneId(10), r.GeneId)
	assert.Equal(t, 1, r.Observed)
	assert.InDelta(t, 1.0, r.Expected, 1e-9)
	assert.InDelta(t, 1.0, r.FoldEnrichment, 1e-9)
}

func TestGeneEnrichmentNoOverlapIsNotSignificant(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "a"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "b"}))
	require.NoError(t, b.AddGeneAssociation(1, 10, "G1"))
	ont, err := b.Freeze()
	require.NoError(t, err)

	results := GeneEnrichment(ont, hpogroup.New(hpoid.TermId(2)))
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Observed)
	// P(X >= 0) is trivially 1: zero overlap is never itself surprising.
	assert.InDelta(t, 1.0, results[0].PValue, 1e-9)
}

func TestDiseaseEnrichment(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "root"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "leaf", Parents: []hpoid.TermId{1}}))
	require.NoError(t, b.AddDiseaseAssociation(2, hpoid.Omim, 500, "Some syndrome"))
	ont, err := b.Freeze()
	require.NoError(t, err)

	results := DiseaseEnrichment(ont, hpogroup.New(hpoid.TermId(1)))
	require.Len(t, results, 1)
	assert.Equal(t, hpoid.DiseaseId(500), results[0].DiseaseId)
	assert.Equal(t, hpoid.Omim, results[0].Source)
	assert.Equal(t, 1, results[0].Observed)
}

func TestFoldEnrichmentEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, foldEnrichment(0, 0))
	assert.True(t, foldEnrichment(1, 0) > 1e300) // +Inf
}

func TestUpperTailPValueMonotonicInK(t *testing.T) {
	// Higher observed overlap should never increase the upper-tail p-value.
	p1 := upperTailPValue(1, 3, 4, 10)
	p2 := upperTailPValue(2, 3, 4, 10)
	assert.GreaterOrEqual(t, p1, p2)
}

func TestByPValueSort(t *testing.T) {
	results := []GeneEnrichmentResult{
		{GeneId: 1, PValue: 0.5},
		{GeneId: 2, PValue: 0.1},
		{GeneId: 3, PValue: 0.9},
	}
	sort.Sort(ByPValue(results))
	assert.Equal(t, []hpoid.GeneId{2, 1, 3}, []hpoid.GeneId{results[0].GeneId, results[1].GeneId, results[2].GeneId})
}

func TestByFoldEnrichmentSort(t *testing.T) {
	results := []GeneEnrichmentResult{
		{GeneId: 1, FoldEnrichment: 1.5},
		{GeneId: 2, FoldEnrichment: 3.0},
		{GeneId: 3, FoldEnrichment: 0.2},
	}
	sort.Sort(ByFoldEnrichment(results))
	assert.Equal(t, hpoid.GeneId(2), results[0].GeneId)
}

func TestDiseaseByPValueSort(t *testing.T) {
	results := []DiseaseEnrichmentResult{
		{DiseaseId: 1, PValue: 0.4},
		{DiseaseId: 2, PValue: 0.05},
	}
	sort.Sort(DiseaseByPValue(results))
	assert.Equal(t, hpoid.DiseaseId(2), results[0].DiseaseId)
}
