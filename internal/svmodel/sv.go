// Package svmodel defines the canonical structural-variant tuple and the
// total order the matching engine sweeps over.
package svmodel

import "fmt"

// SV type codes. Mirrors DELLY/sansa's numeric encoding so that database
// files produced by those tools decode without a translation table.
const (
	SvtInv3to3 int32 = 0
	SvtInv5to5 int32 = 1
	SvtDeletion int32 = 2
	SvtDuplication int32 = 3
	SvtInsertion int32 = 4
	// Translocations occupy 5..8, offset by connection type (3to3, 5to5,
	// 3to5, 5to3) in that order.
	SvtTransOffset int32 = 5
	SvtCNV         int32 = 9
	// 10..13 are complex/CNV subtypes that pass through unchanged.
)

// SV is the canonical structural variant tuple: two breakpoints, a stable
// annotation id, quality, numeric type and length. Eight int32 fields by
// design so two fit in a single 64-byte cache line during the sweep.
type SV struct {
	Chr   int32 // reference index of breakpoint 1
	Start int32 // 1-based position of breakpoint 1
	Chr2  int32 // reference index of breakpoint 2
	End   int32 // 1-based position of breakpoint 2
	ID    int32 // stable annotation id, -1 for query SVs
	Qual  int32
	Svt   int32
	SVLen int32 // -1 if unknown
}

// IsTranslocation reports whether svt falls in the inter-chromosomal block.
func IsTranslocation(svt int32) bool {
	return svt >= SvtTransOffset && svt < SvtCNV
}

// IsBalancedIntraChromosomal reports whether svt is one of the four
// intra-chromosomal "balanced" types eligible for reciprocal-overlap scoring:
// the two inversion orientations, deletion and duplication. Insertions have
// no second breakpoint to overlap and translocations are inter-chromosomal,
// so both are excluded.
func IsBalancedIntraChromosomal(svt int32) bool {
	return svt >= SvtInv3to3 && svt <= SvtDuplication
}

// Less implements the canonical total order: lexicographic on
// (Chr, Start, Chr2, End, ID). The DB vector is sorted under this order and
// the matching sweep's binary search assumes it.
func Less(a, b SV) bool {
	if a.Chr != b.Chr {
		return a.Chr < b.Chr
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.Chr2 != b.Chr2 {
		return a.Chr2 < b.Chr2
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return a.ID < b.ID
}

// Canonicalize rewrites a translocation so that chr >= chr2, per spec: when
// chr < chr2 the two ends are swapped and the 3to5/5to3 connection flips.
// Idempotent: canonicalizing an already-canonical SV is a no-op.
func Canonicalize(sv SV) SV {
	if !IsTranslocation(sv.Svt) {
		return sv
	}
	if sv.Chr >= sv.Chr2 {
		return sv
	}
	out := sv
	out.Chr, out.Chr2 = sv.Chr2, sv.Chr
	out.Start, out.End = sv.End, sv.Start
	switch sv.Svt - SvtTransOffset {
	case 2: // 3to5 -> 5to3
		out.Svt = SvtTransOffset + 3
	case 3: // 5to3 -> 3to5
		out.Svt = SvtTransOffset + 2
	default:
		out.Svt = sv.Svt
	}
	return out
}

// AnnoID formats the stable annotation id as the "idNNNNNNNNN" token used in
// the match log and the ANNOID INFO field. Negative ids (query SVs) format
// as the literal "None".
func AnnoID(id int32) string {
	if id < 0 {
		return "None"
	}
	return fmt.Sprintf("id%09d", id)
}
