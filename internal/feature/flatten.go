package feature

import "sort"

// flattenChromosome merges overlapping/adjacent intervals sharing the same
// label into a disjoint union, then sorts the whole chromosome by start.
// Implemented as sort-by-(lid,start) followed by a running [lo,hi]
// accumulator rather than a general-purpose interval-set container.
func flattenChromosome(regions []IntervalLabel) []IntervalLabel {
	if len(regions) == 0 {
		return nil
	}

	sorted := make([]IntervalLabel, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].LID != sorted[j].LID {
			return sorted[i].LID < sorted[j].LID
		}
		return sorted[i].Start < sorted[j].Start
	})

	var out []IntervalLabel
	i := 0
	for i < len(sorted) {
		lid := sorted[i].LID
		strand := sorted[i].Strand
		lo, hi := sorted[i].Start, sorted[i].End
		j := i + 1
		for j < len(sorted) && sorted[j].LID == lid {
			if sorted[j].Start <= hi {
				if sorted[j].End > hi {
					hi = sorted[j].End
				}
			} else {
				out = append(out, IntervalLabel{Start: lo, End: hi, Strand: strand, LID: lid})
				lo, hi = sorted[j].Start, sorted[j].End
			}
			j++
		}
		out = append(out, IntervalLabel{Start: lo, End: hi, Strand: strand, LID: lid})
		i = j
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// flatten applies flattenChromosome to every chromosome slot.
func flatten(overlapping map[int32][]IntervalLabel) map[int32][]IntervalLabel {
	out := make(map[int32][]IntervalLabel, len(overlapping))
	for chrID, regions := range overlapping {
		out[chrID] = flattenChromosome(regions)
	}
	return out
}
