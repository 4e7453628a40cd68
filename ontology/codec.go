package ontology

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	grailunsafe "github.com/grailbio/base/unsafe"

	"github.com/anergictcell/hpo/hpoid"
)

// CodecVersion identifies a binary format revision. CurrentVersion is
// always written by WriteBinary; ReadBinary accepts any version in
// {1, 2, 3}.
type CodecVersion uint32

const (
	// VersionV1 carries no obsolete/replaced_by or modifier fields.
	VersionV1 CodecVersion = 1
	// VersionV2 adds per-term obsolete/replaced_by fields and tags
	// disease sources as Omim implicitly.
	VersionV2 CodecVersion = 2
	// VersionV3 adds per-term modifier_flags and an explicit disease
	// source_tag.
	VersionV3 CodecVersion = 3
	// CurrentVersion is written by WriteBinary.
	CurrentVersion = VersionV3
)

var magic = [4]byte{'H', 'P', 'O', 0}

// binaryWriter accumulates the little-endian fields of §4.6's layout into
// an in-memory buffer.
type binaryWriter struct {
	w   *bytes.Buffer
	buf [4]byte
}

func newBinaryWriter() *binaryWriter {
	return &binaryWriter{w: &bytes.Buffer{}}
}

func (w *binaryWriter) writeUint8(v uint8) {
	w.buf[0] = v
	w.w.Write(w.buf[:1])
}

func (w *binaryWriter) writeUint16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	w.w.Write(w.buf[:2])
}

func (w *binaryWriter) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.w.Write(w.buf[:4])
}

func (w *binaryWriter) writeString(s string) {
	w.writeUint16(uint16(len(s)))
	w.w.Write(grailunsafe.StringToBytes(s))
}

// binaryReader is the read-side counterpart of binaryWriter. It reports
// Truncated once the underlying buffer runs out of bytes.
type binaryReader struct {
	r   *bytes.Reader
	buf [4]byte
}

func newBinaryReader(data []byte) *binaryReader {
	return &binaryReader{r: bytes.NewReader(data)}
}

func (r *binaryReader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, newErr(Truncated, err, "unexpected end of stream")
	}
	return buf, nil
}

func (r *binaryReader) readUint8() (uint8, error) {
	b, err := r.readFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *binaryReader) readUint16() (uint16, error) {
	b, err := r.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *binaryReader) readUint32() (uint32, error) {
	b, err := r.readFull(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *binaryReader) readString() (string, error) {
	n, err := r.readUint16()
	if err != nil {
		return "", err
	}
	b, err := r.readFull(int(n))
	if err != nil {
		return "", err
	}
	return grailunsafe.BytesToString(b), nil
}

// WriteBinary serializes o in the §4.6 layout at CurrentVersion. Only
// direct is_a parents and direct annotations are persisted; children,
// transitive closures, and information content are recomputed by
// ReadBinary via the same freeze pipeline used by Builder.Freeze.
func (o *Ontology) WriteBinary() ([]byte, error) {
	w := newBinaryWriter()
	w.w.Write(magic[:])
	w.writeUint32(uint32(CurrentVersion))

	w.writeUint32(uint32(len(o.terms)))
	for _, t := range o.terms {
		w.writeUint32(uint32(t.id))
		w.writeString(t.name)

		direct := directParents(&t)
		w.writeUint16(uint16(len(direct)))
		for _, p := range direct {
			w.writeUint32(uint32(p))
		}

		if t.obsolete {
			w.writeUint8(1)
		} else {
			w.writeUint8(0)
		}
		w.writeUint32(uint32(t.replacedBy))
		w.writeUint32(uint32(t.modifiers))
	}

	w.writeUint32(uint32(len(o.genes)))
	for _, g := range o.genes {
		w.writeUint32(uint32(g.id))
		w.writeString(g.name)
		direct := g.terms.Slice()
		w.writeUint32(uint32(len(direct)))
		for _, id := range direct {
			w.writeUint32(uint32(id))
		}
	}

	w.writeUint32(uint32(len(o.diseases)))
	for _, d := range o.diseases {
		w.writeUint8(uint8(d.source))
		w.writeUint32(uint32(d.id))
		w.writeString(d.name)
		direct := d.terms.Slice()
		w.writeUint32(uint32(len(direct)))
		for _, id := range direct {
			w.writeUint32(uint32(id))
		}
	}

	return w.w.Bytes(), nil
}

// directParents returns t's direct is_a parents, the only parent relation
// persisted by the codec (children and the transitive closure are
// recomputed by ReadBinary's freeze pass).
func directParents(t *termData) []hpoid.TermId {
	return t.parents.Slice()
}

// ReadBinary decodes a byte stream produced by WriteBinary (or an earlier
// codec version) and rebuilds the ontology via the same freeze pipeline
// Builder.Freeze uses, recomputing children, transitive closures, upward
// annotation closures, and information content from the persisted direct
// relations.
func ReadBinary(data []byte) (*Ontology, error) {
	r := newBinaryReader(data)

	gotMagic, err := r.readFull(4)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(gotMagic, magic[:]) {
		return nil, newErr(Malformed, nil, "bad magic bytes")
	}

	versionRaw, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	version := CodecVersion(versionRaw)
	if version < VersionV1 || version > VersionV3 {
		return nil, newErr(UnsupportedVersion, nil, "unsupported codec version %d", versionRaw)
	}

	termCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	type pendingTerm struct {
		id         hpoid.TermId
		parents    []hpoid.TermId
		obsolete   bool
		replacedBy hpoid.TermId
		modifiers  ModifierFlags
	}
	pending := make([]pendingTerm, termCount)
	names := make([]string, termCount)

	for i := uint32(0); i < termCount; i++ {
		id, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		parentCount, err := r.readUint16()
		if err != nil {
			return nil, err
		}
		parents := make([]hpoid.TermId, parentCount)
		for j := range parents {
			p, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			parents[j] = hpoid.TermId(p)
		}

		pt := pendingTerm{id: hpoid.TermId(id), parents: parents}
		if version >= VersionV2 {
			obsolete, err := r.readUint8()
			if err != nil {
				return nil, err
			}
			replacedBy, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			pt.obsolete = obsolete != 0
			pt.replacedBy = hpoid.TermId(replacedBy)
		}
		if version >= VersionV3 {
			flags, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			pt.modifiers = ModifierFlags(flags)
		}
		pending[i] = pt
		names[i] = name
	}

	for i, pt := range pending {
		if err := b.AddTerm(TermInput{
			Id:         pt.id,
			Name:       names[i],
			Parents:    pt.parents,
			Obsolete:   pt.obsolete,
			ReplacedBy: pt.replacedBy,
			Modifiers:  pt.modifiers,
		}); err != nil {
			return nil, err
		}
	}

	geneCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < geneCount; i++ {
		id, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		annCount, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < annCount; j++ {
			termId, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			if err := b.AddGeneAssociation(hpoid.TermId(termId), hpoid.GeneId(id), name); err != nil {
				return nil, newErr(Malformed, err, "gene association referenced an invalid term")
			}
		}
	}

	diseaseCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < diseaseCount; i++ {
		source := hpoid.Omim
		if version >= VersionV3 {
			tag, err := r.readUint8()
			if err != nil {
				return nil, err
			}
			source = hpoid.Source(tag)
		}
		id, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		annCount, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < annCount; j++ {
			termId, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			if err := b.AddDiseaseAssociation(hpoid.TermId(termId), source, hpoid.DiseaseId(id), name); err != nil {
				return nil, newErr(Malformed, err, "disease association referenced an invalid term")
			}
		}
	}

	return b.Freeze()
}

// WriteCompressed is the SPEC_FULL gzip-layered convenience codec: the
// exact §4.6 byte format, gzip-compressed on top.
func (o *Ontology) WriteCompressed(w io.Writer) error {
	raw, err := o.WriteBinary()
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(w)
	if _, err := gw.Write(raw); err != nil {
		return errors.Wrap(err, "ontology: writing compressed stream")
	}
	return gw.Close()
}

// ReadCompressed decodes a stream produced by WriteCompressed.
func ReadCompressed(r io.Reader) (*Ontology, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "ontology: opening compressed stream")
	}
	defer gr.Close()
	raw, err := io.ReadAll(gr)
	if err != nil {
		return nil, errors.Wrap(err, "ontology: reading compressed stream")
	}
	return ReadBinary(raw)
}
