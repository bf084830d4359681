package dbingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dellytools/sansa-go/internal/chrom"
	"github.com/dellytools/sansa-go/internal/svmodel"
	"github.com/dellytools/sansa-go/internal/vcfio"
)

// fakeRecord is a minimal vcfio.RecordSource for ingest tests; it carries
// no Annotatable implementation, so the writer path is never exercised
// here (that's exercised at the vcfio.Writer level instead).
type fakeRecord struct {
	chrom   string
	pos     int32
	ref     string
	alts    []string
	qual    int32
	infoStr map[string]string
	infoInt map[string]int
}

func (r fakeRecord) Chrom() string  { return r.chrom }
func (r fakeRecord) Pos() int32     { return r.pos }
func (r fakeRecord) ID() string     { return "." }
func (r fakeRecord) Ref() string    { return r.ref }
func (r fakeRecord) Alts() []string { return r.alts }
func (r fakeRecord) QualInt() int32 { return r.qual }

func (r fakeRecord) InfoString(key string) (string, bool) {
	v, ok := r.infoStr[key]
	return v, ok
}

func (r fakeRecord) InfoInt(key string) (int, bool) {
	v, ok := r.infoInt[key]
	return v, ok
}

type fakeSource struct {
	records []vcfio.RecordSource
	pos     int
}

func (s *fakeSource) Next() (vcfio.RecordSource, error) {
	if s.pos >= len(s.records) {
		return nil, nil
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

func delRecord(chromName string, pos, end int32) fakeRecord {
	return fakeRecord{
		chrom:   chromName,
		pos:     pos,
		ref:     "A",
		alts:    []string{"<DEL>"},
		infoStr: map[string]string{"SVTYPE": "DEL"},
		infoInt: map[string]int{"END": int(end), "SVLEN": int(end - pos)},
	}
}

func newReconciler(names ...string) *chrom.Reconciler {
	r := chrom.New()
	r.ScanHeader(names)
	r.AddAliases()
	return r
}

func TestIngestAssignsSequentialIdsAndSortsByCanonicalOrder(t *testing.T) {
	src := &fakeSource{records: []vcfio.RecordSource{
		delRecord("chr1", 500, 600),
		delRecord("chr1", 100, 200),
	}}
	reconciler := newReconciler("chr1")

	result, err := Ingest(src, nil, reconciler, nil)
	require.NoError(t, err)
	require.Len(t, result.SVs, 2)
	assert.Equal(t, 2, result.Stats.SiteCount)
	assert.Equal(t, 2, result.Stats.Parsed)

	assert.True(t, svmodel.Less(result.SVs[0], result.SVs[1]))
	assert.Equal(t, int32(100), result.SVs[0].Start)
	assert.Equal(t, int32(500), result.SVs[1].Start)
	// ids follow input order, not sorted order.
	assert.Equal(t, int32(1), result.SVs[0].ID)
	assert.Equal(t, int32(0), result.SVs[1].ID)
}

func TestIngestSkipsUnknownChromosome(t *testing.T) {
	src := &fakeSource{records: []vcfio.RecordSource{
		delRecord("chrUnknown", 100, 200),
		delRecord("chr1", 100, 200),
	}}
	reconciler := newReconciler("chr1")

	var rejections []string
	result, err := Ingest(src, nil, reconciler, func(reason string) { rejections = append(rejections, reason) })
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.SiteCount)
	assert.Equal(t, 1, result.Stats.Parsed)
	assert.Len(t, rejections, 1)
}

func TestIngestSkipsUndecodableRecordsAndKeepsGoing(t *testing.T) {
	bad := fakeRecord{chrom: "chr1", pos: 10, ref: "A", alts: []string{"T"}} // no SVTYPE
	src := &fakeSource{records: []vcfio.RecordSource{bad, delRecord("chr1", 100, 200)}}
	reconciler := newReconciler("chr1")

	result, err := Ingest(src, nil, reconciler, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Parsed)
	assert.Equal(t, 2, result.Stats.SiteCount)
}

func TestIngestCanonicalizesTranslocationsAfterChr2Resolution(t *testing.T) {
	rec := fakeRecord{
		chrom: "chr1",
		pos:   100,
		ref:   "A",
		alts:  []string{"<BND>"},
		infoStr: map[string]string{
			"SVTYPE": "BND",
			"CT":     "3to5",
			"CHR2":   "chr3",
		},
		infoInt: map[string]int{"POS2": 200},
	}
	src := &fakeSource{records: []vcfio.RecordSource{rec}}
	reconciler := newReconciler("chr1", "chr3")

	result, err := Ingest(src, nil, reconciler, nil)
	require.NoError(t, err)
	require.Len(t, result.SVs, 1)

	sv := result.SVs[0]
	chr1ID, _ := reconciler.Lookup("chr1")
	chr3ID, _ := reconciler.Lookup("chr3")
	// chr1 < chr3 so the record must have been swapped onto chr3/chr1.
	assert.Equal(t, chr3ID, sv.Chr)
	assert.Equal(t, chr1ID, sv.Chr2)
	assert.Equal(t, int32(200), sv.Start)
	assert.Equal(t, int32(100), sv.End)
	assert.True(t, sv.Chr >= sv.Chr2)
}
