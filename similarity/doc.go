// Package similarity implements term-pair similarity scorers and
// set-to-set combiners over a frozen ontology.Ontology. Scorers are pure
// functions of read-only ontology state, so callers may fan a similarity
// matrix's rows across worker goroutines.
package similarity
