// Package util holds small standalone helpers shared across the module that
// don't belong to any one domain package.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

// matrix represents a 2 dimensional matrix.
type matrix struct {
	nRow, nCol int
	data       []int // row-major nRow*nCol array.
}

func newMatrix(n, m int) matrix {
	return matrix{
		nRow: n,
		nCol: m,
		data: make([]int, n*m),
	}
}

// String returns a string representation of a matrix.
func (m matrix) String() string {
	maxLength := 0
	for _, d := range m.data {
		if l := len(strconv.Itoa(d)); l > maxLength {
			maxLength = l
		}
	}

	lines := []string{"\n"}
	for i := 0; i < m.nRow; i++ {
		var parts []string
		for j := 0; j < m.nCol; j++ {
			parts = append(parts, fmt.Sprintf("%0*s", maxLength, strconv.Itoa(m.data[i*m.nCol+j])))
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}

// Levenshtein computes the edit distance between s1 and s2: the number of
// single-character insertions, deletions, and substitutions needed to turn
// s1 into s2.
func Levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	m := newMatrix(len(r1)+1, len(r2)+1)

	for i := 0; i <= len(r1); i++ {
		m.data[i*m.nCol] = i
	}
	for j := 0; j <= len(r2); j++ {
		m.data[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				m.data[i*m.nCol+j] = m.data[(i-1)*m.nCol+(j-1)]
				continue
			}
			del := m.data[(i-1)*m.nCol+j] + 1
			ins := m.data[i*m.nCol+(j-1)] + 1
			sub := m.data[(i-1)*m.nCol+(j-1)] + 1
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			m.data[i*m.nCol+j] = min
		}
	}
	return m.data[len(r1)*m.nCol+len(r2)]
}
