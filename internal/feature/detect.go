package feature

import "strings"

// Format identifies a gene-annotation file's dialect.
type Format int

const (
	FormatGFF3 Format = iota
	FormatGTF
	FormatBED
)

// DetectFormat classifies a file by suffix first, then by the magic of its
// first line: GFF3 declares "##gff", GTF declares "#!", and BED is the
// fallback when neither magic is present.
func DetectFormat(filename, firstLine string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, ".gff3"), strings.Contains(lower, ".gff"):
		return FormatGFF3
	case strings.Contains(lower, ".gtf"):
		return FormatGTF
	case strings.Contains(lower, ".bed"):
		return FormatBED
	}

	switch {
	case strings.HasPrefix(firstLine, "##gff"):
		return FormatGFF3
	case strings.HasPrefix(firstLine, "#!"):
		return FormatGTF
	default:
		return FormatBED
	}
}
