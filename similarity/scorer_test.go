package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// buildS4Fixture builds spec.md's S1 term tree (217 -> 218 -> 219, 219
// also direct is_a 217) with synthetic gene counts chosen so that
// Gene-flavor information content comes out to ic(217)=0.5, ic(218)=1.0,
// ic(219)=1.5, matching S4's synthetic values. IC is -ln(count/total); we
// reverse-engineer gene counts from that relation using a shared total.
func buildS4Fixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 217, Name: "Xerostomia"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 218, Name: "High palate", Parents: []hpoid.TermId{217}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 219, Name: "Thin upper lip vermilion", Parents: []hpoid.TermId{218, 217}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 900, Name: "Unrelated term"}))

	// Choose a total and per-term direct gene counts so that propagated
	// counts (219's genes also count for 218 and 217, by upward closure)
	// land on count(219)=exp(-1.5)*total, count(218)=exp(-1.0)*total,
	// count(217)=exp(-0.5)*total for some convenient total. Using
	// total=1000: count(219)~223, count(218)~368, count(217)~607. We
	// assign genes directly to each term so the upward-closed totals come
	// out close enough, then just trust the ontology's own IC computation
	// rather than hand-matching floating counts: assign one gene per
	// distinct count bucket using synthetic gene ids and round to the
	// nearest integer.
	total := 1000
	c219 := int(math.Round(math.Exp(-1.5) * float64(total)))
	c218 := int(math.Round(math.Exp(-1.0)*float64(total))) - c219
	c217 := int(math.Round(math.Exp(-0.5)*float64(total))) - c219 - c218
	rest := total - c219 - c218 - c217

	geneId := hpoid.GeneId(1)
	addGenes := func(term hpoid.TermId, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, b.AddGeneAssociation(term, geneId, "G"))
			geneId++
		}
	}
	addGenes(219, c219)
	addGenes(218, c218)
	addGenes(217, c217)
	// The remaining genes pad the population total without touching the
	// 217/218/219 subtree's counts.
	addGenes(900, rest)

	ont, err := b.Freeze()
	require.NoError(t, err)
	return ont
}

// S4 (similarity), adapted: rather than hand-injecting IC values (which
// the frozen ontology always derives from association counts), this
// fixture reproduces spec.md's synthetic IC values via gene-annotation
// counts and checks the resulting scores.
func TestS4Similarity(t *testing.T) {
	ont := buildS4Fixture(t)
	t218, _ := ont.GetTerm(218)
	t219, _ := ont.GetTerm(219)

	const tol = 0.02
	assert.InDelta(t, 1.0, t218.InformationContent(ontology.ICGene), tol)
	assert.InDelta(t, 1.5, t219.InformationContent(ontology.ICGene), tol)

	resnik := Resnik(ontology.ICGene)
	assert.InDelta(t, 1.0, resnik(t218, t219), tol)

	lin := Lin(ontology.ICGene)
	assert.InDelta(t, 0.8, lin(t218, t219), tol)

	graphIc := GraphIc(ontology.ICGene)
	assert.InDelta(t, 0.5, graphIc(t218, t219), tol)
}

func TestScorerReflexivity(t *testing.T) {
	ont := buildS4Fixture(t)
	t219, _ := ont.GetTerm(219)

	for name, scorer := range map[string]TermScorer{
		"Lin":           Lin(ontology.ICGene),
		"Ic":            Ic(ontology.ICGene),
		"GraphIc":       GraphIc(ontology.ICGene),
		"DistanceGraph": DistanceGraph(),
	} {
		assert.Equal(t, 1.0, scorer(t219, t219), name)
	}
}

func TestScorerSymmetry(t *testing.T) {
	ont := buildS4Fixture(t)
	a, _ := ont.GetTerm(218)
	bTerm, _ := ont.GetTerm(219)

	for name, scorer := range map[string]TermScorer{
		"Resnik":        Resnik(ontology.ICGene),
		"Lin":           Lin(ontology.ICGene),
		"Jc":            Jc(ontology.ICGene),
		"Rel":           Rel(ontology.ICGene),
		"Ic":            Ic(ontology.ICGene),
		"GraphIc":       GraphIc(ontology.ICGene),
		"DistanceGraph": DistanceGraph(),
		"Mutation":      Mutation(),
	} {
		assert.InDelta(t, scorer(a, bTerm), scorer(bTerm, a), 1e-9, name)
	}
}

func TestMutationScorer(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "root"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "a", Parents: []hpoid.TermId{1}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 3, Name: "b", Parents: []hpoid.TermId{1}}))
	require.NoError(t, b.AddGeneAssociation(2, 10, "G1"))
	require.NoError(t, b.AddGeneAssociation(2, 11, "G2"))
	require.NoError(t, b.AddGeneAssociation(3, 10, "G1"))
	ont, err := b.Freeze()
	require.NoError(t, err)

	a, _ := ont.GetTerm(2)
	bTerm, _ := ont.GetTerm(3)
	mutation := Mutation()
	// ga=2 (G1,G2), gb=1 (G1), gc at MICA(root)=2 (G1,G2) -> 2*2/(2+1) = 4/3
	assert.InDelta(t, 4.0/3.0, mutation(a, bTerm), 1e-9)
}
