// Package proximity reports, for each breakpoint of a query structural
// variant, the nearest annotated features within a bounded distance and,
// optionally, the features fully contained between the two breakpoints.
package proximity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dellytools/sansa-go/internal/feature"
	"github.com/dellytools/sansa-go/internal/svmodel"
)

// Config holds the proximity scan's tunables.
type Config struct {
	MaxDistance    int32
	ContainedGenes bool
}

type token struct {
	name     string
	distance int32
	strand   byte
}

// Annotate computes the start-breakpoint and end-breakpoint proximity
// strings for q against idx, and, when cfg.ContainedGenes is set and both
// breakpoints share a chromosome, the contained-feature string.
func Annotate(idx *feature.Index, q svmodel.SV, cfg Config) (startFeature, endFeature, containedFeature string) {
	if idx == nil || idx.Empty() {
		return "", "", ""
	}

	startFeature = formatTokens(scan(idx, q.Chr, q.Start, cfg.MaxDistance))
	endFeature = formatTokens(scan(idx, q.Chr2, q.End, cfg.MaxDistance))

	if cfg.ContainedGenes && q.Chr == q.Chr2 {
		containedFeature = formatContained(contained(idx, q.Chr, q.Start, q.End))
	}

	return startFeature, endFeature, containedFeature
}

// scan walks idx's sorted interval list for chrID, collecting every
// interval within maxDistance of bp. The list is sorted by Start, so the
// skip/break bounds below terminate the scan at the first interval that
// can no longer be in range.
func scan(idx *feature.Index, chrID int32, bp int32, maxDistance int32) []token {
	intervals := idx.Intervals(chrID)
	var tokens []token
	for _, iv := range intervals {
		if iv.End+maxDistance < bp {
			continue
		}
		if iv.Start > bp+maxDistance {
			break
		}

		var dist int32
		switch {
		case bp >= iv.Start && bp <= iv.End:
			dist = 0
		case bp > iv.End:
			dist = iv.End - bp
		default:
			dist = iv.Start - bp
		}
		tokens = append(tokens, token{name: idx.Name(iv.LID), distance: dist, strand: iv.Strand})
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return absInt32(tokens[i].distance) < absInt32(tokens[j].distance)
	})
	return tokens
}

func contained(idx *feature.Index, chrID int32, start, end int32) []token {
	intervals := idx.Intervals(chrID)
	var tokens []token
	for _, iv := range intervals {
		if iv.Start > end {
			break
		}
		if iv.Start >= start && iv.End <= end {
			tokens = append(tokens, token{name: idx.Name(iv.LID), strand: iv.Strand})
		}
	}
	return tokens
}

func formatTokens(tokens []token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.name + "(" + strconv.Itoa(int(t.distance)) + ";" + string(t.strand) + ")"
	}
	return strings.Join(parts, ",")
}

func formatContained(tokens []token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.name + "(" + string(t.strand) + ")"
	}
	return strings.Join(parts, ",")
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
