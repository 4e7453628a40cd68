package ontology

import (
	"errors"

	"github.com/biogo/store/llrb"

	grerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/anergictcell/hpo/hpoid"
)

type builderState int

const (
	stateCollecting builderState = iota
	stateFrozen
)

// TermInput is one parsed term stanza, as handed to Builder.AddTerm by the
// external term-stanza parser.
type TermInput struct {
	Id         hpoid.TermId
	Name       string
	Parents    []hpoid.TermId
	AltIds     []hpoid.TermId
	Obsolete   bool
	ReplacedBy hpoid.TermId
	Modifiers  ModifierFlags
}

// stagingTerm holds one term's raw, unclosed data during the mutable
// phase.
type stagingTerm struct {
	input    TermInput
	genes    []hpoid.GeneId
	diseases []diseaseRef
}

// Compare implements llrb.Comparable, ordering staging terms by TermId.
// This gives the builder both O(log n) duplicate detection on Insert and a
// deterministic ascending-TermId traversal at freeze time.
func (t *stagingTerm) Compare(other llrb.Comparable) int {
	o := other.(*stagingTerm)
	switch {
	case t.input.Id < o.input.Id:
		return -1
	case t.input.Id > o.input.Id:
		return 1
	default:
		return 0
	}
}

type stagingGene struct {
	id    hpoid.GeneId
	name  string
	terms []hpoid.TermId
}

type stagingDisease struct {
	source hpoid.Source
	id     hpoid.DiseaseId
	name   string
	terms  []hpoid.TermId
}

// Builder accumulates terms and annotations during a single-threaded
// ingestion phase. It is not safe for concurrent use: per spec, the
// ontology is single-writer during construction. Freeze consumes the
// Builder and returns an immutable Ontology.
type Builder struct {
	state builderState

	staging llrb.Tree
	lookup  map[hpoid.TermId]*stagingTerm

	altId map[hpoid.TermId]hpoid.TermId

	genes    map[hpoid.GeneId]*stagingGene
	diseases map[uint64]*stagingDisease

	names *nameDedup
}

// NewBuilder returns an empty Builder, ready to accept terms.
func NewBuilder() *Builder {
	return &Builder{
		lookup:   map[hpoid.TermId]*stagingTerm{},
		altId:    map[hpoid.TermId]hpoid.TermId{},
		genes:    map[hpoid.GeneId]*stagingGene{},
		diseases: map[uint64]*stagingDisease{},
		names:    newNameDedup(),
	}
}

// AddTerm inserts one term stanza. It fails with DuplicateTerm if id was
// already added, and also with DuplicateTerm if the term's name collides with
// an already-added non-obsolete term's name (invariant 6 is enforced
// eagerly here rather than deferred to freeze, matching the builder's
// fail-fast construction-time error policy).
func (b *Builder) AddTerm(in TermInput) error {
	if b.state != stateCollecting {
		return newErr(BuilderState, nil, "AddTerm called after Freeze")
	}
	if _, exists := b.lookup[in.Id]; exists {
		return newErr(DuplicateTerm, nil, "term %s already added", in.Id)
	}
	if !in.Obsolete && b.names.seenOrAdd(in.Name) {
		return newErr(DuplicateTerm, nil, "term name %q already used by another term", in.Name)
	}

	st := &stagingTerm{input: in}
	b.staging.Insert(st)
	b.lookup[in.Id] = st

	for _, alt := range in.AltIds {
		b.altId[alt] = in.Id
	}
	if in.Obsolete && in.ReplacedBy != 0 {
		b.altId[in.Id] = in.ReplacedBy
	}
	return nil
}

// resolveForAnnotation follows alt_id redirects and applies the
// UnknownTerm/ObsoleteTerm recoverable row policy. It returns the staging
// term to annotate, or nil with the policy error if the row should be
// dropped.
func (b *Builder) resolveForAnnotation(id hpoid.TermId) (*stagingTerm, error) {
	if canon, ok := b.altId[id]; ok {
		id = canon
	}
	st, ok := b.lookup[id]
	if !ok {
		return nil, newErr(UnknownTerm, nil, "annotation references unknown term %s", id)
	}
	if st.input.Obsolete {
		return nil, newErr(ObsoleteTerm, nil, "annotation references obsolete term %s", id)
	}
	return st, nil
}

// AddGeneAssociation registers a direct term<->gene annotation. Per spec
// §7, an UnknownTerm or ObsoleteTerm row is a recoverable policy: the
// error is returned to the caller for visibility, but the builder's state
// is otherwise unaffected and the build may continue.
func (b *Builder) AddGeneAssociation(termId hpoid.TermId, geneId hpoid.GeneId, geneName string) error {
	if b.state != stateCollecting {
		return newErr(BuilderState, nil, "AddGeneAssociation called after Freeze")
	}
	st, err := b.resolveForAnnotation(termId)
	if err != nil {
		return err
	}
	g, ok := b.genes[geneId]
	if !ok {
		g = &stagingGene{id: geneId, name: geneName}
		b.genes[geneId] = g
	}
	g.terms = append(g.terms, st.input.Id)
	st.genes = append(st.genes, geneId)
	return nil
}

// AddDiseaseAssociation registers a direct term<->disease annotation,
// under the same recoverable-row policy as AddGeneAssociation.
func (b *Builder) AddDiseaseAssociation(termId hpoid.TermId, source hpoid.Source, diseaseId hpoid.DiseaseId, diseaseName string) error {
	if b.state != stateCollecting {
		return newErr(BuilderState, nil, "AddDiseaseAssociation called after Freeze")
	}
	st, err := b.resolveForAnnotation(termId)
	if err != nil {
		return err
	}
	key := diseaseIndexKey(uint8(source), uint32(diseaseId))
	d, ok := b.diseases[key]
	if !ok {
		d = &stagingDisease{source: source, id: diseaseId, name: diseaseName}
		b.diseases[key] = d
	}
	d.terms = append(d.terms, st.input.Id)
	st.diseases = append(st.diseases, diseaseRef{source: source, id: diseaseId})
	return nil
}

// GeneAssociationRow is one row of the external gene-annotation file.
type GeneAssociationRow struct {
	TermId   hpoid.TermId
	GeneId   hpoid.GeneId
	GeneName string
}

// DiseaseAssociationRow is one row of the external disease-annotation
// file.
type DiseaseAssociationRow struct {
	TermId      hpoid.TermId
	Source      hpoid.Source
	DiseaseId   hpoid.DiseaseId
	DiseaseName string
}

// AddGeneAssociations ingests many rows, logging and skipping each
// recoverable failure rather than aborting, and returns the first
// unexpected (non-UnknownTerm/ObsoleteTerm) error it sees via an
// aggregator. This is the bulk path `from_standard` is expected to use.
func (b *Builder) AddGeneAssociations(rows []GeneAssociationRow) error {
	var agg grerrors.Once
	for _, r := range rows {
		if err := b.AddGeneAssociation(r.TermId, r.GeneId, r.GeneName); err != nil {
			var oe *Error
			if errors.As(err, &oe) && (oe.Kind == UnknownTerm || oe.Kind == ObsoleteTerm) {
				log.Error.Printf("dropping gene association row (gene=%d term=%s): %v", r.GeneId, r.TermId, err)
				continue
			}
			agg.Set(err)
		}
	}
	return agg.Err()
}

// AddDiseaseAssociations ingests many rows under the same policy as
// AddGeneAssociations.
func (b *Builder) AddDiseaseAssociations(rows []DiseaseAssociationRow) error {
	var agg grerrors.Once
	for _, r := range rows {
		if err := b.AddDiseaseAssociation(r.TermId, r.Source, r.DiseaseId, r.DiseaseName); err != nil {
			var oe *Error
			if errors.As(err, &oe) && (oe.Kind == UnknownTerm || oe.Kind == ObsoleteTerm) {
				log.Error.Printf("dropping disease association row (disease=%s:%d term=%s): %v", r.Source, r.DiseaseId, r.TermId, err)
				continue
			}
			agg.Set(err)
		}
	}
	return agg.Err()
}
