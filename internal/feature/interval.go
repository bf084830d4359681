// Package feature parses GTF/GFF3/BED gene annotation files into a
// per-chromosome sorted interval index used by the proximity scan.
package feature

// IntervalLabel is one gene-model interval: a half-open [Start, End) 0-based
// range on a chromosome, a strand, and an index into an Index's gene-name
// table.
type IntervalLabel struct {
	Start  int32
	End    int32
	Strand byte
	LID    int32
}

// Index is the fully built, flattened, per-chromosome sorted interval
// table plus the gene-name/protein-coding side tables it indexes into.
type Index struct {
	GeneIDs       []string
	ProteinCoding []bool
	byChrom       map[int32][]IntervalLabel
}

// Intervals returns the sorted interval list for a chromosome id, or nil if
// the chromosome carries no features.
func (idx *Index) Intervals(chrID int32) []IntervalLabel {
	return idx.byChrom[chrID]
}

// Name returns the gene name for an interval's label id.
func (idx *Index) Name(lid int32) string {
	if lid < 0 || int(lid) >= len(idx.GeneIDs) {
		return ""
	}
	return idx.GeneIDs[lid]
}

// IsProteinCoding reports whether the gene behind lid was tagged
// biotype=protein_coding.
func (idx *Index) IsProteinCoding(lid int32) bool {
	if lid < 0 || int(lid) >= len(idx.ProteinCoding) {
		return false
	}
	return idx.ProteinCoding[lid]
}

// Empty reports whether the index carries no intervals at all (§7: an
// empty feature file after parsing is a warning, not a fatal error).
func (idx *Index) Empty() bool {
	return len(idx.GeneIDs) == 0
}

// geneTable assigns stable integer ids to gene names in first-seen order,
// shared by the GTF/GFF3/BED builders.
type geneTable struct {
	ids           map[string]int32
	names         []string
	proteinCoding []bool
}

func newGeneTable() *geneTable {
	return &geneTable{ids: make(map[string]int32)}
}

func (g *geneTable) idFor(name string, proteinCoding bool) int32 {
	if id, ok := g.ids[name]; ok {
		return id
	}
	id := int32(len(g.names))
	g.ids[name] = id
	g.names = append(g.names, name)
	g.proteinCoding = append(g.proteinCoding, proteinCoding)
	return id
}
