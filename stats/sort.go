package stats

// ByPValue sorts GeneEnrichmentResult ascending by PValue. It implements
// sort.Interface directly rather than defaulting to ascending-sort-only,
// matching the teacher's convention of exporting a named sort.Interface
// type instead of forcing one ordering on callers.
type ByPValue []GeneEnrichmentResult

func (s ByPValue) Len() int           { return len(s) }
func (s ByPValue) Less(i, j int) bool { return s[i].PValue < s[j].PValue }
func (s ByPValue) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// ByFoldEnrichment sorts GeneEnrichmentResult descending by fold
// enrichment.
type ByFoldEnrichment []GeneEnrichmentResult

func (s ByFoldEnrichment) Len() int           { return len(s) }
func (s ByFoldEnrichment) Less(i, j int) bool { return s[i].FoldEnrichment > s[j].FoldEnrichment }
func (s ByFoldEnrichment) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// DiseaseByPValue sorts DiseaseEnrichmentResult ascending by PValue.
type DiseaseByPValue []DiseaseEnrichmentResult

func (s DiseaseByPValue) Len() int           { return len(s) }
func (s DiseaseByPValue) Less(i, j int) bool { return s[i].PValue < s[j].PValue }
func (s DiseaseByPValue) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// DiseaseByFoldEnrichment sorts DiseaseEnrichmentResult descending by fold
// enrichment.
type DiseaseByFoldEnrichment []DiseaseEnrichmentResult

func (s DiseaseByFoldEnrichment) Len() int { return len(s) }
func (s DiseaseByFoldEnrichment) Less(i, j int) bool {
	return s[i].FoldEnrichment > s[j].FoldEnrichment
}
func (s DiseaseByFoldEnrichment) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
