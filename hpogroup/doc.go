// Package hpogroup implements HpoGroup, the ordered, deduplicated set of
// term ids used throughout the ontology for parents, children, transitive
// closures, and patient phenotype profiles.
//
// An HpoGroup keeps its elements sorted in ascending hpoid.TermId order at
// all times; every algebraic operation (Union, Intersection, Difference,
// SymmetricDifference) is a linear two-pointer merge over that invariant
// rather than a hash-based set operation. Small groups (direct parents,
// direct children, short patient profiles) are the overwhelmingly common
// case, so up to inlineCapacity elements are held in an array embedded in
// the HpoGroup value itself; larger groups fall back to a heap-allocated
// slice. This mirrors the inlined/outlined split in
// fusion/kmer_index.go's kmerIndexEntry, scaled from 2 elements to
// inlineCapacity.
package hpogroup
