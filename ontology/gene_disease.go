package ontology

import (
	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
)

// geneData is the arena record for one gene.
type geneData struct {
	id    hpoid.GeneId
	name  string
	terms hpogroup.HpoGroup
}

// diseaseData is the arena record for one disease. Diseases are keyed by
// the composite (source, id) pair, since DiseaseId numbering is only
// unique within a source.
type diseaseData struct {
	source hpoid.Source
	id     hpoid.DiseaseId
	name   string
	terms  hpogroup.HpoGroup
}

// Gene is a read-only view of one arena gene record.
type Gene struct {
	ont *Ontology
	idx int32
}

// Id returns the gene's identifier.
func (g Gene) Id() hpoid.GeneId { return g.ont.genes[g.idx].id }

// Name returns the gene's symbol.
func (g Gene) Name() string { return g.ont.genes[g.idx].name }

// Terms returns the directly annotated terms for this gene.
func (g Gene) Terms() hpogroup.HpoGroup { return g.ont.genes[g.idx].terms }

// Disease is a read-only view of one arena disease record.
type Disease struct {
	ont *Ontology
	idx int32
}

// Id returns the disease's identifier. It is unique only in combination
// with Source.
func (d Disease) Id() hpoid.DiseaseId { return d.ont.diseases[d.idx].id }

// Source returns the disease's curating database.
func (d Disease) Source() hpoid.Source { return d.ont.diseases[d.idx].source }

// Name returns the disease's label.
func (d Disease) Name() string { return d.ont.diseases[d.idx].name }

// Terms returns the directly annotated terms for this disease.
func (d Disease) Terms() hpogroup.HpoGroup { return d.ont.diseases[d.idx].terms }
