package hpoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTermIdRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want TermId
	}{
		{"HP:0000217", 217},
		{"HP:0000001", 1},
		{"HP:0000000", 0},
		{"HP:9999999", MaxTermId},
	}
	for _, test := range tests {
		got, err := ParseTermId(test.in)
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
		assert.Equal(t, test.in, got.String())
	}
}

func TestParseTermIdInvalid(t *testing.T) {
	for _, in := range []string{"", "HP:", "HP:12345678", "HP:abcdefg", "0000217", "XX:0000217"} {
		_, err := ParseTermId(in)
		assert.Errorf(t, err, "expected error for %q", in)
	}
}

func TestTermIdOrdering(t *testing.T) {
	a, b := TermId(217), TermId(218)
	assert.True(t, a < b)
}

func TestParseSource(t *testing.T) {
	tests := map[string]Source{
		"OMIM":     Omim,
		"omim":     Omim,
		"ORPHA":    Orpha,
		"Orphanet": Orpha,
		"DECIPHER": Decipher,
	}
	for in, want := range tests {
		got, err := ParseSource(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSource("MONDO")
	assert.Error(t, err)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "OMIM", Omim.String())
	assert.Equal(t, "ORPHA", Orpha.String())
	assert.Equal(t, "DECIPHER", Decipher.String())
}
