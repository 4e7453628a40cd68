package ontology

import (
	"math"
	"sort"

	"github.com/biogo/store/llrb"

	"github.com/anergictcell/hpo/hpogroup"
	"github.com/anergictcell/hpo/hpoid"
)

// Freeze performs the freeze pipeline documented in spec.md §4.1 and
// consumes the Builder: validate is_a targets, invert parents into
// children, detect cycles via Kahn's algorithm, compute transitive
// closures, propagate gene/disease associations upward, compute
// information content, and populate the frozen Ontology's indexes. The
// Builder is left in the Frozen state and rejects all further Add* calls.
func (b *Builder) Freeze() (*Ontology, error) {
	if b.state != stateCollecting {
		return nil, newErr(BuilderState, nil, "Freeze called more than once")
	}
	b.state = stateFrozen

	ordered := make([]*stagingTerm, 0, b.staging.Len())
	b.staging.Do(func(item llrb.Comparable) bool {
		ordered = append(ordered, item.(*stagingTerm))
		return false // llrb.Operation: returning true stops the traversal
	})

	idToIdx := make(map[hpoid.TermId]int32, len(ordered))
	for i, st := range ordered {
		idToIdx[st.input.Id] = int32(i)
	}

	terms := make([]termData, len(ordered))
	for i, st := range ordered {
		terms[i] = termData{
			id:         st.input.Id,
			name:       st.input.Name,
			obsolete:   st.input.Obsolete,
			replacedBy: st.input.ReplacedBy,
			modifiers:  st.input.Modifiers,
		}
	}

	parentIdx := make([][]int32, len(ordered))
	childIdx := make([][]int32, len(ordered))
	for i, st := range ordered {
		var parentIds []hpoid.TermId
		for _, p := range st.input.Parents {
			pi, ok := idToIdx[p]
			if !ok {
				return nil, newErr(UnknownParent, nil, "term %s has unknown parent %s", st.input.Id, p)
			}
			parentIds = append(parentIds, p)
			parentIdx[i] = append(parentIdx[i], pi)
			childIdx[pi] = append(childIdx[pi], int32(i))
		}
		terms[i].parents = hpogroup.FromSlice(parentIds)
	}
	for i := range terms {
		var childIds []hpoid.TermId
		for _, ci := range childIdx[i] {
			childIds = append(childIds, terms[ci].id)
		}
		terms[i].children = hpogroup.FromSlice(childIds)
	}

	// Kahn's algorithm: a node is ready once every parent has been
	// processed, so the resulting topo order always visits a term after
	// all of its parents.
	indegree := make([]int32, len(terms))
	for i := range terms {
		indegree[i] = int32(len(parentIdx[i]))
	}
	queue := make([]int32, 0, len(terms))
	for i, d := range indegree {
		if d == 0 {
			queue = append(queue, int32(i))
		}
	}
	topo := make([]int32, 0, len(terms))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		topo = append(topo, idx)
		for _, c := range childIdx[idx] {
			indegree[c]--
			if indegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	if len(topo) != len(terms) {
		return nil, newErr(Cycle, nil, "parent graph contains a cycle")
	}

	allParents := make([]hpogroup.HpoGroup, len(terms))
	for _, idx := range topo {
		ag := hpogroup.HpoGroup{}
		for _, pidx := range parentIdx[idx] {
			ag = ag.Union(hpogroup.New(terms[pidx].id))
			ag = ag.Union(allParents[pidx])
		}
		allParents[idx] = ag
	}
	for i := range terms {
		terms[i].allParents = allParents[i]
	}

	geneSets := make([]map[hpoid.GeneId]bool, len(terms))
	diseaseSets := make([]map[diseaseRef]bool, len(terms))
	for i := range terms {
		geneSets[i] = map[hpoid.GeneId]bool{}
		diseaseSets[i] = map[diseaseRef]bool{}
	}
	for i, st := range ordered {
		for _, g := range st.genes {
			geneSets[i][g] = true
			allParents[i].ForEach(func(p hpoid.TermId) bool {
				geneSets[idToIdx[p]][g] = true
				return true
			})
		}
		for _, d := range st.diseases {
			diseaseSets[i][d] = true
			allParents[i].ForEach(func(p hpoid.TermId) bool {
				diseaseSets[idToIdx[p]][d] = true
				return true
			})
		}
	}
	for i := range terms {
		genes := make([]hpoid.GeneId, 0, len(geneSets[i]))
		for g := range geneSets[i] {
			genes = append(genes, g)
		}
		sort.Slice(genes, func(a, b int) bool { return genes[a] < genes[b] })
		terms[i].genes = genes

		diseases := make([]diseaseRef, 0, len(diseaseSets[i]))
		for d := range diseaseSets[i] {
			diseases = append(diseases, d)
		}
		sort.Slice(diseases, func(a, c int) bool {
			if diseases[a].source != diseases[c].source {
				return diseases[a].source < diseases[c].source
			}
			return diseases[a].id < diseases[c].id
		})
		terms[i].diseases = diseases
	}

	totalGenes := len(b.genes)
	totalOmim, totalOrpha := 0, 0
	for _, d := range b.diseases {
		switch d.source {
		case hpoid.Omim:
			totalOmim++
		case hpoid.Orpha:
			totalOrpha++
		}
	}
	for i := range terms {
		terms[i].ic[icGene] = informationContentValue(len(terms[i].genes), totalGenes)
		terms[i].ic[icOmim] = informationContentValue(countDiseasesBySource(terms[i].diseases, hpoid.Omim), totalOmim)
		terms[i].ic[icOrpha] = informationContentValue(countDiseasesBySource(terms[i].diseases, hpoid.Orpha), totalOrpha)
	}

	geneList := make([]*stagingGene, 0, len(b.genes))
	for _, g := range b.genes {
		geneList = append(geneList, g)
	}
	sort.Slice(geneList, func(i, j int) bool { return geneList[i].id < geneList[j].id })
	genes := make([]geneData, len(geneList))
	for i, g := range geneList {
		genes[i] = geneData{id: g.id, name: g.name, terms: hpogroup.FromSlice(g.terms)}
	}

	diseaseList := make([]*stagingDisease, 0, len(b.diseases))
	for _, d := range b.diseases {
		diseaseList = append(diseaseList, d)
	}
	sort.Slice(diseaseList, func(i, j int) bool {
		if diseaseList[i].source != diseaseList[j].source {
			return diseaseList[i].source < diseaseList[j].source
		}
		return diseaseList[i].id < diseaseList[j].id
	})
	diseases := make([]diseaseData, len(diseaseList))
	for i, d := range diseaseList {
		diseases[i] = diseaseData{source: d.source, id: d.id, name: d.name, terms: hpogroup.FromSlice(d.terms)}
	}

	termIndex := make([]int32, hpoid.MaxTermId+1)
	for i := range termIndex {
		termIndex[i] = absentIndex
	}
	for i, st := range ordered {
		termIndex[st.input.Id] = int32(i)
	}

	nameChoice := make(map[string]int32, len(terms))
	for i, t := range terms {
		existing, ok := nameChoice[t.name]
		if !ok {
			nameChoice[t.name] = int32(i)
			continue
		}
		if terms[existing].obsolete && !t.obsolete {
			nameChoice[t.name] = int32(i)
		}
	}
	termNameIndex := newHashIndex[string](len(nameChoice), hashStringKey)
	for name, idx := range nameChoice {
		termNameIndex.insert(name, idx)
	}

	geneIndex := newHashIndex[uint32](len(genes), func(k uint32) uint64 { return hashUint64Key(uint64(k)) })
	for i, g := range genes {
		geneIndex.insert(uint32(g.id), int32(i))
	}
	geneNameIndex := newHashIndex[string](len(genes), hashStringKey)
	for i, g := range genes {
		geneNameIndex.insert(g.name, int32(i))
	}

	diseaseIndex := newHashIndex[uint64](len(diseases), hashUint64Key)
	for i, d := range diseases {
		diseaseIndex.insert(diseaseIndexKey(uint8(d.source), uint32(d.id)), int32(i))
	}

	altId := make(map[hpoid.TermId]hpoid.TermId, len(b.altId))
	for k, v := range b.altId {
		altId[k] = v
	}

	return &Ontology{
		terms:         terms,
		genes:         genes,
		diseases:      diseases,
		termIndex:     termIndex,
		termNameIndex: termNameIndex,
		geneIndex:     geneIndex,
		geneNameIndex: geneNameIndex,
		diseaseIndex:  diseaseIndex,
		altId:         altId,
	}, nil
}

// informationContentValue computes -ln(count/total), defined as 0 when
// count is 0 (spec.md §4.1 step 6).
func informationContentValue(count, total int) float64 {
	if count == 0 || total == 0 {
		return 0
	}
	return -math.Log(float64(count) / float64(total))
}

func countDiseasesBySource(refs []diseaseRef, source hpoid.Source) int {
	n := 0
	for _, r := range refs {
		if r.source == source {
			n++
		}
	}
	return n
}
