// Package match implements the sorted-sweep join between a query SV and
// the sorted database vector.
package match

import (
	"sort"

	"github.com/dellytools/sansa-go/internal/svmodel"
)

// Mode selects how many candidate matches are reported per query.
type Mode int

const (
	// ModeBest retains only the highest-scoring candidate.
	ModeBest Mode = iota
	// ModeAll reports every candidate that passes the predicate.
	ModeAll
)

// Config holds the matching predicate's tunables (§4.5).
type Config struct {
	BPWindow      int32
	SizeDiff      float64
	MatchSVType   bool
	Mode          Mode
	ReportNoMatch bool
}

// Row is one emitted match: either a real DB hit (DBID >= 0) or the
// synthetic "None" row emitted when ReportNoMatch is set and nothing
// passed.
type Row struct {
	Query svmodel.SV
	DBID  int32
}

// AnnoID formats the row's matched id, "None" when DBID is negative.
func (r Row) AnnoID() string {
	return svmodel.AnnoID(r.DBID)
}

type candidate struct {
	sv    svmodel.SV
	score float64
}

// Match sweeps db (assumed sorted under svmodel.Less) for every candidate
// matching q under cfg, and returns the rows to emit for q.
func Match(db []svmodel.SV, q svmodel.SV, cfg Config) []Row {
	seedStart := q.Start - cfg.BPWindow
	if seedStart < 0 {
		seedStart = 0
	}
	threshold := svmodel.SV{Chr: q.Chr, Start: seedStart, Chr2: q.Chr2, End: q.End, ID: -1}
	idx := sort.Search(len(db), func(i int) bool { return !svmodel.Less(db[i], threshold) })

	var candidates []candidate
	for i := idx; i < len(db); i++ {
		d := db[i]
		if d.Chr != q.Chr {
			break
		}
		if d.Start-q.Start > cfg.BPWindow {
			break
		}

		if d.Chr2 != q.Chr2 {
			continue
		}
		if cfg.MatchSVType && d.Svt != q.Svt {
			continue
		}
		if absInt32(d.End-q.End) > cfg.BPWindow {
			continue
		}
		if d.ID < 0 {
			continue
		}

		score := 0.0

		if d.SVLen > 0 && q.SVLen > 0 {
			ratio := sizeRatio(d.SVLen, q.SVLen)
			if ratio < cfg.SizeDiff {
				continue
			}
			score += ratio
		}

		if svmodel.IsBalancedIntraChromosomal(d.Svt) && svmodel.IsBalancedIntraChromosomal(q.Svt) &&
			d.End-d.Start == d.SVLen && q.End-q.Start == q.SVLen {
			overlap := reciprocalOverlap(d, q)
			if float64(overlap)/float64(q.SVLen) < cfg.SizeDiff || float64(overlap)/float64(d.SVLen) < cfg.SizeDiff {
				continue
			}
		}

		maxDiff := absInt32(d.Start - q.Start)
		if endDiff := absInt32(d.End - q.End); endDiff > maxDiff {
			maxDiff = endDiff
		}
		if cfg.BPWindow > 0 {
			score += 1 - float64(maxDiff)/float64(cfg.BPWindow)
		} else {
			score += 1
		}

		candidates = append(candidates, candidate{sv: d, score: score})
	}

	if len(candidates) == 0 {
		if cfg.ReportNoMatch {
			return []Row{{Query: q, DBID: -1}}
		}
		return nil
	}

	if cfg.Mode == ModeAll {
		rows := make([]Row, len(candidates))
		for i, c := range candidates {
			rows[i] = Row{Query: q, DBID: c.sv.ID}
		}
		return rows
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return []Row{{Query: q, DBID: best.sv.ID}}
}

func sizeRatio(a, b int32) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) / float64(hi)
}

// reciprocalOverlap computes sorted_positions[2] - sorted_positions[1] of
// the four breakpoints, the overlap length shared by two balanced
// intra-chromosomal intervals.
func reciprocalOverlap(a, b svmodel.SV) int32 {
	positions := [4]int32{a.Start, a.End, b.Start, b.End}
	sort.Slice(positions[:], func(i, j int) bool { return positions[i] < positions[j] })
	return positions[2] - positions[1]
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
