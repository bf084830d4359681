// Package output writes the match-report TSV.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dellytools/sansa-go/internal/chrom"
	"github.com/dellytools/sansa-go/internal/match"
)

// MatchWriter writes match rows in the gzip-compressed TSV format (§6):
// a fixed header beginning "[1]ANNOID", then one tab-separated row per
// emitted match.
type MatchWriter struct {
	w              *bufio.Writer
	reconciler     *chrom.Reconciler
	containedGenes bool
}

// NewMatchWriter wraps w (expected to already be a gzip.Writer) with the
// match-row TSV format. Set containedGenes when the pipeline was run with
// contained-gene reporting, which adds a trailing column.
func NewMatchWriter(w io.Writer, reconciler *chrom.Reconciler, containedGenes bool) *MatchWriter {
	return &MatchWriter{w: bufio.NewWriter(w), reconciler: reconciler, containedGenes: containedGenes}
}

// WriteHeader writes the fixed column header.
func (mw *MatchWriter) WriteHeader() error {
	columns := []string{
		"[1]ANNOID", "query.chr", "query.start", "query.chr2", "query.end",
		"query.id", "query.qual", "query.svtype", "query.ct", "query.svlen",
		"query.startfeature", "query.endfeature",
	}
	if mw.containedGenes {
		columns = append(columns, "query.containedfeature")
	}
	_, err := mw.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// Row is everything WriteRow needs beyond the matched SV tuple itself: the
// free-text labels the decoder recovered and the proximity annotations.
type Row struct {
	Match        match.Row
	SVTypeLabel  string
	CTLabel      string
	StartFeature string
	EndFeature   string
	Contained    string
}

// WriteRow renders one match (or "None") row.
func (mw *MatchWriter) WriteRow(r Row) error {
	q := r.Match.Query
	values := []string{
		r.Match.AnnoID(),
		mw.chromName(q.Chr),
		strconv.Itoa(int(q.Start)),
		mw.chromName(q.Chr2),
		strconv.Itoa(int(q.End)),
		strconv.Itoa(int(q.ID)),
		strconv.Itoa(int(q.Qual)),
		r.SVTypeLabel,
		r.CTLabel,
		svlenString(q.SVLen),
		r.StartFeature,
		r.EndFeature,
	}
	if mw.containedGenes {
		values = append(values, r.Contained)
	}
	_, err := mw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes the buffered writer.
func (mw *MatchWriter) Flush() error {
	return mw.w.Flush()
}

func (mw *MatchWriter) chromName(id int32) string {
	if name := mw.reconciler.Name(id); name != "" {
		return name
	}
	return fmt.Sprintf("chrid%d", id)
}

func svlenString(svlen int32) string {
	if svlen < 0 {
		return "-1"
	}
	return strconv.Itoa(int(svlen))
}
