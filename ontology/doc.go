// Package ontology implements the frozen, in-memory Human Phenotype
// Ontology: arena-backed storage for terms, genes, and diseases; the
// builder and freeze pipeline that turns streamed annotation records into
// an immutable Ontology; transitive closure and information content
// precomputation; and the versioned binary codec.
//
// A Builder accumulates terms and annotations during a single-threaded
// ingestion phase, then Freeze consumes it and returns an Ontology. The
// Ontology is immutable for the remainder of its lifetime: any number of
// goroutines may call its read methods concurrently without external
// synchronization, and no method on Ontology or on the Term/Gene/Disease
// views it returns ever mutates shared state.
package ontology
