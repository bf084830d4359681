package feature

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseBED reads a BED stream. BED coordinates are already 0-based
// half-open, so unlike GTF/GFF3 no shift is applied. Column 4 (name) is
// used as the interval label when present; a record without one still
// contributes a unique name-less label rather than being dropped, since
// BED carries no attribute list to reject as "attribute-less" the way
// GTF/GFF3 records can be (§7 is about attribute lists, not this format).
func ParseBED(r io.Reader, resolve func(name string) (int32, bool)) (map[int32][]IntervalLabel, *geneTable, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1<<20)

	overlapping := make(map[int32][]IntervalLabel)
	genes := newGeneTable()
	anonCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		chrID, ok := resolve(fields[0])
		if !ok {
			continue
		}

		start, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}

		name := ""
		if len(fields) > 3 {
			name = fields[3]
		}
		if name == "" || name == "." {
			name = fmt.Sprintf("region_%d", anonCount)
			anonCount++
		}

		strand := byte('*')
		if len(fields) > 5 && len(fields[5]) == 1 {
			strand = fields[5][0]
		}

		lid := genes.idFor(name, false)
		overlapping[chrID] = append(overlapping[chrID], IntervalLabel{
			Start:  int32(start),
			End:    int32(end),
			Strand: strand,
			LID:    lid,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan BED: %w", err)
	}

	return overlapping, genes, nil
}
