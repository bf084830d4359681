package feature

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type gff3IDEntry struct {
	name          string
	proteinCoding bool
}

type gff3TreeNode struct {
	parent        string
	proteinCoding bool
}

// buildGFF3IDDict makes a first pass over the file collecting every
// record's own id/name/biotype, then flattens the Parent chain so that
// children and grandchildren resolve to the same ancestor name. Mirrors
// the original two-pass _buildIDdict exactly: a record contributes to the
// id table whenever its attribute string merely contains idName, and
// separately to the parent tree whenever it contains "Parent" - the two
// checks are independent, not mutually exclusive.
func buildGFF3IDDict(r io.Reader, idName string) (map[string]gff3IDEntry, error) {
	pId := make(map[string]gff3IDEntry)
	tree := make(map[string]gff3TreeNode)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			continue
		}
		attrStr := fields[8]

		if strings.Contains(attrStr, idName) {
			attrs := parseGFF3Attrs(attrStr)
			ival := attrs["ID"]
			kval := attrs[idName]
			pCode := attrs["biotype"] == "protein_coding"
			if ival == "" {
				ival = kval
			}
			if ival != "" {
				pId[ival] = gff3IDEntry{name: kval, proteinCoding: pCode}
			}
		}

		if strings.Contains(attrStr, "Parent") {
			attrs := parseGFF3Attrs(attrStr)
			tree[attrs["ID"]] = gff3TreeNode{parent: attrs["Parent"], proteinCoding: attrs["biotype"] == "protein_coding"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GFF3 id dictionary: %w", err)
	}

	for child, node := range tree {
		newParent := node.parent
		for {
			if entry, ok := pId[newParent]; ok {
				pId[child] = entry
			}
			next, ok := tree[newParent]
			if !ok {
				break
			}
			newParent = next.parent
		}
	}

	return pId, nil
}

// parseGFF3Attrs parses the `key=value;key=value;...` attribute column
// used by GFF3.
func parseGFF3Attrs(attr string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(attr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}

// ParseGFF3 reads a GFF3 stream twice: once (via idDict, already built by
// the caller from a fresh reader) to resolve the Parent chain, once to
// collect the feature-type intervals themselves.
func ParseGFF3(r io.Reader, idDict map[string]gff3IDEntry, resolve func(name string) (int32, bool), idName, featureType string) (map[int32][]IntervalLabel, *geneTable, error) {
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
		chrID, ok := resolve(fields[0])
		if !ok {
			continue
		}
		if fields[2] != featureType {
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
			return nil, nil, fmt.Errorf("GFF3 is 1-based format, got start=0")
		}
		if start > end {
			return nil, nil, fmt.Errorf("feature start %d greater than end %d", start, end)
		}

		strand := byte('*')
		if len(fields[6]) == 1 {
			strand = fields[6][0]
		}

		attrs := parseGFF3Attrs(fields[8])
		for _, key := range []string{"ID", "Parent", idName} {
			ival, present := attrs[key]
			if !present || ival == "" {
				continue
			}
			entry, ok := idDict[ival]
			if !ok {
				continue
			}
			lid := genes.idFor(entry.name, entry.proteinCoding)
			overlapping[chrID] = append(overlapping[chrID], IntervalLabel{
				Start:  int32(start - 1),
				End:    int32(end),
				Strand: strand,
				LID:    lid,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan GFF3: %w", err)
	}

	return overlapping, genes, nil
}
