package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anergictcell/hpo/ontology"
)

func TestMatrixShape(t *testing.T) {
	b := ontology.NewBuilder()
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 1, Name: "a"}))
	require.NoError(t, b.AddTerm(ontology.TermInput{Id: 2, Name: "b"}))
	ont, err := b.Freeze()
	require.NoError(t, err)

	t1, _ := ont.GetTerm(1)
	t2, _ := ont.GetTerm(2)
	identity := func(a, b ontology.Term) float64 {
		if a.Id() == b.Id() {
			return 1
		}
		return 0
	}
	m := Matrix([]ontology.Term{t1, t2}, []ontology.Term{t1, t2}, identity)
	require.Len(t, m, 2)
	assert.Equal(t, []float64{1, 0}, m[0])
	assert.Equal(t, []float64{0, 1}, m[1])
}

func TestRowMaxColMax(t *testing.T) {
	m := [][]float64{
		{1, 5, 2},
		{4, 0, 3},
	}
	assert.Equal(t, []float64{5, 4}, rowMax(m))
	assert.Equal(t, []float64{4, 5, 3}, colMax(m))
}

func TestFunSimAvg(t *testing.T) {
	m := [][]float64{
		{1, 0},
		{0, 1},
	}
	// rowMax = [1,1] mean=1; colMax = [1,1] mean=1; avg = 1
	assert.InDelta(t, 1.0, FunSimAvg(m), 1e-9)
}

func TestFunSimMax(t *testing.T) {
	m := [][]float64{
		{1, 0.2},
		{0.2, 0.4},
	}
	// rowMax = [1, 0.4] mean=0.7; colMax = [1, 0.4] mean=0.7
	assert.InDelta(t, 0.7, FunSimMax(m), 1e-9)
}

func TestBma(t *testing.T) {
	m := [][]float64{
		{1, 0},
		{0, 1},
	}
	// sum(rowMax)=2, sum(colMax)=2, n=4 -> 1.0
	assert.InDelta(t, 1.0, Bma(m), 1e-9)
}

func TestBmaEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Bma(nil))
}

func TestBmwa(t *testing.T) {
	m := [][]float64{
		{1, 0},
		{0, 1},
	}
	aIC := []float64{2, 1}
	bIC := []float64{1, 2}
	// rowMax=[1,1], colMax=[1,1]; numer = 1*2+1*1+1*1+1*2=6; denom=2+1+1+2=6
	assert.InDelta(t, 1.0, Bmwa(m, aIC, bIC), 1e-9)
}

func TestBmwaZeroWeights(t *testing.T) {
	m := [][]float64{{0.5}}
	assert.Equal(t, 0.0, Bmwa(m, []float64{0}, []float64{0}))
}

func TestGoF(t *testing.T) {
	m := [][]float64{
		{1, 0},
		{0, 1},
	}
	assert.InDelta(t, 1.0, GoF(m), 1e-9)
}

func TestGoFNonPositive(t *testing.T) {
	m := [][]float64{{0, 0}}
	assert.Equal(t, 0.0, GoF(m))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 1e-9)
}

func TestColMaxEmptyMatrix(t *testing.T) {
	assert.Nil(t, colMax(nil))
}

func TestGoFSqrtMatchesManual(t *testing.T) {
	m := [][]float64{
		{0.8, 0.2},
		{0.3, 0.6},
	}
	want := math.Sqrt(mean(rowMax(m)) * mean(colMax(m)))
	assert.InDelta(t, want, GoF(m), 1e-9)
}
