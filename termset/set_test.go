package termset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anergictcell/hpo/hpoid"
	"github.com/anergictcell/hpo/ontology"
)

// buildFixture mirrors the S1/S2 three-term tree used by the ontology
// package's own fixture, plus an obsolete chain for ReplaceObsolete.
func buildFixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 217, Name: "Xerostomia"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 218, Name: "High palate", Parents: []hpoid.TermId{217}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 219, Name: "Thin upper lip vermilion", Parents: []hpoid.TermId{218, 217}}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 100, Name: "obsolete A", Obsolete: true, ReplacedBy: 101}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 101, Name: "obsolete B", Obsolete: true, ReplacedBy: 217}))
	ont, err := b.Freeze()
	require.NoError(t, err)
	return ont
}

func TestHpoSetTerms(t *testing.T) {
	ont := buildFixture(t)
	s := New(ont, 217, 219)
	assert.Equal(t, 2, s.Len())
	ids := make([]hpoid.TermId, 0)
	for _, term := range s.Terms() {
		ids = append(ids, term.Id())
	}
	assert.ElementsMatch(t, []hpoid.TermId{217, 219}, ids)
}

func TestHpoSetDropsUnknownIds(t *testing.T) {
	ont := buildFixture(t)
	s := New(ont, 217, 9999)
	assert.Equal(t, 1, s.Len())
}

func TestChildNodes(t *testing.T) {
	ont := buildFixture(t)
	s := New(ont, 217, 218, 219)
	leaves := s.ChildNodes()
	assert.Equal(t, []hpoid.TermId{219}, leaves.Group().Slice())
}

func TestAllAncestors(t *testing.T) {
	ont := buildFixture(t)
	s := New(ont, 219)
	assert.Equal(t, []hpoid.TermId{217, 218}, s.AllAncestors().Slice())
}

func TestInformationContentStats(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "a"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "b"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 3, Name: "c"}))
	require.NoError(t, b.AddGeneAssociation(1, 10, "G1"))
	// A second gene outside the set keeps term 1's IC above zero:
	// -ln(1/2) > 0, whereas a single gene gives -ln(1/1) = 0.
	require.NoError(t, b.AddGeneAssociation(3, 11, "G2"))
	ont, err := b.Freeze()
	require.NoError(t, err)

	s := New(ont, 1, 2)
	stats := s.InformationContent(ontology.ICGene)
	assert.True(t, stats.Max > 0)
	assert.Equal(t, stats.Sum, stats.Max+0)
}

func TestReplaceObsoleteCascades(t *testing.T) {
	ont := buildFixture(t)
	s := New(ont, 100)
	replaced := s.ReplaceObsolete()
	assert.Equal(t, []hpoid.TermId{217}, replaced.Group().Slice())
}

func TestReplaceObsoleteDropsDeadEnd(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "dead end", Obsolete: true}))
	ont, err := b.Freeze()
	require.NoError(t, err)

	s := New(ont, 1)
	replaced := s.ReplaceObsolete()
	assert.True(t, replaced.Group().IsEmpty())
}
