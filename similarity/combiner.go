package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/anergictcell/hpo/ontology"
)

// Matrix builds the scoring matrix M[i][j] = scorer(a[i], b[j]). The same
// matrix can be passed to several combiners, so callers scoring a set pair
// with multiple combiners need to build it only once; each combiner
// computes its own row/column maxima from it.
func Matrix(a, b []ontology.Term, scorer TermScorer) [][]float64 {
	m := make([][]float64, len(a))
	for i, ai := range a {
		row := make([]float64, len(b))
		for j, bj := range b {
			row[j] = scorer(ai, bj)
		}
		m[i] = row
	}
	return m
}

// rowMax returns, for each row, the maximum entry (0 for an empty row).
func rowMax(m [][]float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		if len(row) == 0 {
			continue
		}
		out[i] = floats.Max(row)
	}
	return out
}

// colMax returns, for each column, the maximum entry across rows (nil for
// an empty matrix).
func colMax(m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m[0]))
	for j := range out {
		best := math.Inf(-1)
		for i := range m {
			if m[i][j] > best {
				best = m[i][j]
			}
		}
		out[j] = best
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Sum(xs) / float64(len(xs))
}

// FunSimAvg combines a score matrix as (mean(rowMax) + mean(colMax)) / 2.
func FunSimAvg(m [][]float64) float64 {
	return (mean(rowMax(m)) + mean(colMax(m))) / 2
}

// FunSimMax combines a score matrix as max(mean(rowMax), mean(colMax)).
func FunSimMax(m [][]float64) float64 {
	return math.Max(mean(rowMax(m)), mean(colMax(m)))
}

// Bma (best-match average) combines a score matrix as
// (sum(rowMax)+sum(colMax)) / (|A|+|B|).
func Bma(m [][]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	n := len(m) + len(m[0])
	if n == 0 {
		return 0
	}
	return (floats.Sum(rowMax(m)) + floats.Sum(colMax(m))) / float64(n)
}

// Bmwa (best-match weighted average) combines a score matrix the way Bma
// does, but weights each row/column maximum by the originating term's own
// information content rather than counting every term equally.
func Bmwa(m [][]float64, aIC, bIC []float64) float64 {
	rm, cm := rowMax(m), colMax(m)
	var numer, denom float64
	for i, v := range rm {
		numer += v * aIC[i]
		denom += aIC[i]
	}
	for j, v := range cm {
		numer += v * bIC[j]
		denom += bIC[j]
	}
	if denom == 0 {
		return 0
	}
	return numer / denom
}

// GoF combines a score matrix as sqrt(mean(rowMax) * mean(colMax)).
func GoF(m [][]float64) float64 {
	rm, cm := mean(rowMax(m)), mean(colMax(m))
	if rm <= 0 || cm <= 0 {
		return 0
	}
	return math.Sqrt(rm * cm)
}
