package feature

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseGTF reads a GTF stream and inserts one interval per record whose
// feature column matches featureType, keyed by the idName attribute.
// Intervals are not yet flattened; Build does that after this pass.
func ParseGTF(r io.Reader, resolve func(name string) (int32, bool), idName, featureType string) (map[int32][]IntervalLabel, *geneTable, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1<<20)

	overlapping := make(map[int32][]IntervalLabel)
	genes := newGeneTable()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			continue
		}
		if fields[2] != featureType {
			continue
		}

		chrID, ok := resolve(fields[0])
		if !ok {
			continue
		}

		start, err := strconv.Atoi(fields[3])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(fields[4])
		if err != nil {
			continue
		}
		if start == 0 {
			return nil, nil, fmt.Errorf("GTF is 1-based format, got start=0")
		}
		if start > end {
			continue
		}

		attrs := parseGTFAttributes(fields[8])
		name, ok := attrs[idName]
		if !ok || name == "" {
			continue
		}
		proteinCoding := attrs["gene_biotype"] == "protein_coding" || attrs["gene_type"] == "protein_coding"

		lid := genes.idFor(name, proteinCoding)
		strand := byte('*')
		if len(fields[6]) == 1 {
			strand = fields[6][0]
		}

		overlapping[chrID] = append(overlapping[chrID], IntervalLabel{
			Start:  int32(start - 1),
			End:    int32(end),
			Strand: strand,
			LID:    lid,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan GTF: %w", err)
	}

	return overlapping, genes, nil
}

// parseGTFAttributes parses the `key "value"; key "value";...` attribute
// column used by GTF.
func parseGTFAttributes(attr string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(attr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.IndexByte(part, ' ')
		if idx == -1 {
			continue
		}
		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")
		out[key] = value
	}
	return out
}
