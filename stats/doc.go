// Package stats implements hypergeometric enrichment testing of genes and
// diseases against a phenotype term set, computed in log-space via
// log-gamma to avoid overflow at ontology scale.
package stats
