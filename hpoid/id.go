package hpoid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TermId is the numeric suffix of the canonical external identifier
// "HP:nnnnnnn", zero padded to seven digits. The conversions to and from
// string form are total on the 7-digit range (0 through 9,999,999).
//
// TermId(0) is reserved as the "absent" sentinel: it is never assigned to a
// real term, so a lookup that resolves to it can be treated as a miss.
type TermId uint32

// MaxTermId is the largest numeric suffix representable in the canonical
// 7-digit "HP:nnnnnnn" form.
const MaxTermId TermId = 9999999

// prefix is the canonical external namespace for HPO terms.
const prefix = "HP:"

// ParseTermId parses a canonical "HP:nnnnnnn" string into a TermId. It
// accepts any 1-to-7-digit numeric suffix and zero-pads internally, but
// String always emits the 7-digit form.
func ParseTermId(s string) (TermId, error) {
	rest := strings.TrimPrefix(s, prefix)
	if rest == s || len(rest) == 0 || len(rest) > 7 {
		return 0, errors.Errorf("hpoid: invalid term id format %q", s)
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "hpoid: invalid term id format %q", s)
	}
	if TermId(n) > MaxTermId {
		return 0, errors.Errorf("hpoid: term id %q exceeds the 7-digit range", s)
	}
	return TermId(n), nil
}

// String renders t in canonical "HP:nnnnnnn" form.
func (t TermId) String() string {
	return fmt.Sprintf("%s%07d", prefix, uint32(t))
}

// Valid reports whether t is within the representable 7-digit range. It does
// not report whether t names an actual term in any ontology.
func (t TermId) Valid() bool {
	return t <= MaxTermId
}

// GeneId is a numeric gene identifier (e.g., an NCBI/Entrez gene id),
// unique within the ontology that holds it.
type GeneId uint32

// DiseaseId is a numeric disease identifier whose namespace is qualified by
// a Source (OMIM, Orphanet, or DECIPHER numbering is independent between
// sources, so a DiseaseId is only unique in combination with its Source).
type DiseaseId uint32

// Source identifies the database a disease record was curated from.
type Source uint8

const (
	// Omim identifies OMIM (Online Mendelian Inheritance in Man) diseases.
	Omim Source = iota
	// Orpha identifies Orphanet diseases.
	Orpha
	// Decipher identifies DECIPHER diseases.
	Decipher
)

// String renders the source's canonical database-id prefix.
func (s Source) String() string {
	switch s {
	case Omim:
		return "OMIM"
	case Orpha:
		return "ORPHA"
	case Decipher:
		return "DECIPHER"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// ParseSource maps a database-id prefix (as found in the "database_id"
// column of a disease annotation row, e.g. "OMIM:123456") to a Source.
func ParseSource(prefix string) (Source, error) {
	switch strings.ToUpper(prefix) {
	case "OMIM":
		return Omim, nil
	case "ORPHA", "ORPHANET":
		return Orpha, nil
	case "DECIPHER":
		return Decipher, nil
	default:
		return 0, errors.Errorf("hpoid: unknown disease source %q", prefix)
	}
}
