package ontology

import (
	farm "github.com/dgryski/go-farm"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/unsafe"
)

// hashEntry is one slot of a hashIndex's open-addressed table.
type hashEntry[K comparable] struct {
	key      K
	value    int32
	occupied bool
}

// hashIndex is a fixed-size, linear-probing hash table built once (at
// freeze time) and read many times thereafter. It is the frozen-ontology
// counterpart of fusion/kmer_index.go's kmer->genelist map: same
// farm-hash-plus-linear-probing approach, but backed by a plain Go slice
// instead of an mmap'd, huge-page-backed region, since an ontology's index
// tables (tens of thousands of genes/diseases, at most) are far smaller
// than the tens-of-millions-of-kmers table kmer_index.go was built for.
//
// A hashIndex is never resized after construction: the caller must know
// the final entry count up front, which freeze always does (it is sizing
// the index for exactly the arena it just finished building).
type hashIndex[K comparable] struct {
	hash    func(K) uint64
	entries []hashEntry[K]
	mask    uint64
}

// newHashIndex allocates a hashIndex sized for n entries at a 2x load
// factor (half the slots are expected to stay empty, keeping linear-probe
// chains short).
func newHashIndex[K comparable](n int, hash func(K) uint64) *hashIndex[K] {
	size := 1
	for size < 2*n+1 {
		size <<= 1
	}
	if size < 2 {
		size = 2
	}
	return &hashIndex[K]{
		hash:    hash,
		entries: make([]hashEntry[K], size),
		mask:    uint64(size - 1),
	}
}

// insert adds key->value. The caller is responsible for not inserting the
// same key twice (freeze only ever inserts each arena key once).
func (h *hashIndex[K]) insert(key K, value int32) {
	i := h.hash(key) & h.mask
	for h.entries[i].occupied {
		i = (i + 1) & h.mask
	}
	h.entries[i] = hashEntry[K]{key: key, value: value, occupied: true}
}

// get returns the value for key, if present. A nil *hashIndex behaves like
// an empty index, so zero-value Ontologies (e.g. a partially-constructed
// value in a test) are safe to query.
func (h *hashIndex[K]) get(key K) (int32, bool) {
	if h == nil || len(h.entries) == 0 {
		return 0, false
	}
	i := h.hash(key) & h.mask
	for h.entries[i].occupied {
		if h.entries[i].key == key {
			return h.entries[i].value, true
		}
		i = (i + 1) & h.mask
	}
	return 0, false
}

// hashUint64Key hashes a uint64-packed key the same way
// fusion/kmer_index.go.hashKmer does: by seeding farm's hash with the key
// value itself rather than hashing a byte slice.
func hashUint64Key(key uint64) uint64 {
	return farm.Hash64WithSeed(nil, key)
}

// hashStringKey hashes a string key (term/gene names) with farm's
// byte-slice hash, using a zero-copy string->[]byte view.
func hashStringKey(s string) uint64 {
	return farm.Hash64(unsafe.StringToBytes(s))
}

// diseaseIndexKey packs a (Source, DiseaseId) pair into a single uint64.
// DiseaseId numbering is independent per source (OMIM:154700 and
// ORPHA:154700 are unrelated diseases), so the index must key on the pair.
func diseaseIndexKey(source uint8, id uint32) uint64 {
	return uint64(source)<<32 | uint64(id)
}

// nameDedupShards is the number of shards nameDedup splits its name set
// across, matching bamprovider/concurrentmap.go's numConcurrentMapShards
// sharding factor.
const nameDedupShards = 256

// nameDedup detects duplicate term names during the builder's mutable
// phase. It is sharded the way bamprovider.concurrentMap is, though the
// builder is single-threaded so the sharding here buys smaller individual
// maps rather than reduced lock contention.
type nameDedup struct {
	shards [nameDedupShards]map[string]struct{}
}

func newNameDedup() *nameDedup {
	d := &nameDedup{}
	for i := range d.shards {
		d.shards[i] = make(map[string]struct{})
	}
	return d
}

// seenOrAdd reports whether name was already recorded, adding it if not.
func (d *nameDedup) seenOrAdd(name string) bool {
	h := seahash.Sum64(unsafe.StringToBytes(name))
	shard := d.shards[h%nameDedupShards]
	if _, ok := shard[name]; ok {
		return true
	}
	shard[name] = struct{}{}
	return false
}
