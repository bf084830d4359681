package match

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dellytools/sansa-go/internal/svmodel"
)

func sortedDB(svs ...svmodel.SV) []svmodel.SV {
	out := append([]svmodel.SV(nil), svs...)
	sort.Slice(out, func(i, j int) bool { return svmodel.Less(out[i], out[j]) })
	return out
}

func TestExactDeletionMatch(t *testing.T) {
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtDeletion, SVLen: 100})
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	require.Len(t, rows, 1)
	assert.Equal(t, int32(0), rows[0].DBID)
	assert.Equal(t, "id000000000", rows[0].AnnoID())
}

func TestOffBy30DeletionMatchesWithinWindowNotOutside(t *testing.T) {
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 500, ID: 7, Svt: svmodel.SvtDeletion, SVLen: 400})
	q := svmodel.SV{Chr: 0, Start: 130, Chr2: 0, End: 530, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 400}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	require.Len(t, rows, 1)
	assert.Equal(t, int32(7), rows[0].DBID)

	rows = Match(db, q, Config{BPWindow: 20, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	assert.Len(t, rows, 0)
}

func TestNoMatchEmitsNoneRowWhenReportNoMatchSet(t *testing.T) {
	var db []svmodel.SV
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest, ReportNoMatch: true})
	require.Len(t, rows, 1)
	assert.Equal(t, "None", rows[0].AnnoID())

	rows = Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest, ReportNoMatch: false})
	assert.Len(t, rows, 0)
}

func TestBPWindowZeroRequiresExactCoordinates(t *testing.T) {
	db := sortedDB(
		svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtDeletion, SVLen: 100},
		svmodel.SV{Chr: 0, Start: 101, Chr2: 0, End: 200, ID: 1, Svt: svmodel.SvtDeletion, SVLen: 99},
	)
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 0, SizeDiff: 0.8, MatchSVType: true, Mode: ModeAll})
	require.Len(t, rows, 1)
	assert.Equal(t, int32(0), rows[0].DBID)
}

func TestSizeDiffZeroAlwaysPassesWhenLengthsKnown(t *testing.T) {
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 110, ID: 0, Svt: svmodel.SvtDeletion, SVLen: 10})
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 100, SizeDiff: 0, MatchSVType: true, Mode: ModeBest})
	require.Len(t, rows, 1)
}

func TestMatchSvTypeFalseIgnoresTypeMismatch(t *testing.T) {
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtDuplication, SVLen: 100})
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: false, Mode: ModeBest})
	require.Len(t, rows, 1)

	rows = Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	assert.Len(t, rows, 0)
}

func TestAllModeEmitsEveryPassingCandidate(t *testing.T) {
	db := sortedDB(
		svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtDeletion, SVLen: 100},
		svmodel.SV{Chr: 0, Start: 105, Chr2: 0, End: 205, ID: 1, Svt: svmodel.SvtDeletion, SVLen: 100},
	)
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeAll})
	assert.Len(t, rows, 2)
}

func TestBestModeEmitsAtMostOneRow(t *testing.T) {
	db := sortedDB(
		svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtDeletion, SVLen: 100},
		svmodel.SV{Chr: 0, Start: 105, Chr2: 0, End: 205, ID: 1, Svt: svmodel.SvtDeletion, SVLen: 100},
	)
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: -1, Svt: svmodel.SvtDeletion, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	require.Len(t, rows, 1)
	assert.Equal(t, int32(0), rows[0].DBID, "exact coordinate match scores highest")
}

func TestReciprocalOverlapRejectsInsufficientOverlap(t *testing.T) {
	// Balanced types with end-start == svlen on both sides but overlap
	// below sizediff.
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 0, End: 200, ID: 0, Svt: svmodel.SvtInv3to3, SVLen: 100})
	q := svmodel.SV{Chr: 0, Start: 180, Chr2: 0, End: 280, ID: -1, Svt: svmodel.SvtInv3to3, SVLen: 100}

	rows := Match(db, q, Config{BPWindow: 100, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	assert.Len(t, rows, 0, "overlap of 20/100 is far below the 0.8 reciprocal-overlap threshold")
}

func TestChromosomeTwoMismatchSkipsCandidate(t *testing.T) {
	db := sortedDB(svmodel.SV{Chr: 0, Start: 100, Chr2: 1, End: 200, ID: 0, Svt: svmodel.SvtTransOffset, SVLen: -1})
	q := svmodel.SV{Chr: 0, Start: 100, Chr2: 2, End: 200, ID: -1, Svt: svmodel.SvtTransOffset, SVLen: -1}

	rows := Match(db, q, Config{BPWindow: 50, SizeDiff: 0.8, MatchSVType: true, Mode: ModeBest})
	assert.Len(t, rows, 0)
}
