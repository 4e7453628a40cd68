// Package termset implements HpoSet, a view pairing an ontology.Ontology
// with an hpogroup.HpoGroup: the host for set-level phenotype-profile
// operations (child-node filtering, ancestor union, information content
// aggregation) and the entry point for similarity scoring and enrichment.
package termset
