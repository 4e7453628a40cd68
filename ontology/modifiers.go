package ontology

// ModifierFlags identifies the HPO modifier-subontology categories a term
// belongs to (spec.md §3 lists these as "optional modifier flags"; the
// concrete bits below are the SPEC_FULL supplement described in
// SPEC_FULL.md §4). A term may belong to more than one category, so this
// is a bitmask rather than an enum.
type ModifierFlags uint32

const (
	// ClinicalCourse marks terms under the Clinical course subontology
	// (HP:0031797).
	ClinicalCourse ModifierFlags = 1 << iota
	// ClinicalModifier marks terms under the Clinical modifier
	// subontology (HP:0012823).
	ClinicalModifier
	// ModeOfInheritance marks terms under the Mode of inheritance
	// subontology (HP:0000005).
	ModeOfInheritance
	// Frequency marks terms under the Frequency subontology
	// (HP:0040279).
	Frequency
	// Onset marks terms under the Age of onset subontology
	// (HP:0003674).
	Onset
)

// Has reports whether all bits of flag are set in f.
func (f ModifierFlags) Has(flag ModifierFlags) bool {
	return f&flag == flag
}

// With returns f with flag's bits set.
func (f ModifierFlags) With(flag ModifierFlags) ModifierFlags {
	return f | flag
}
