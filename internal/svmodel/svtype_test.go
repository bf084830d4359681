package svmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSVTNaturalConnectionFallback(t *testing.T) {
	svt, ok := DecodeSVT("DEL", "NA")
	assert.True(t, ok)
	assert.Equal(t, SvtDeletion, svt)

	svt, ok = DecodeSVT("DUP", "")
	assert.True(t, ok)
	assert.Equal(t, SvtDuplication, svt)

	svt, ok = DecodeSVT("ins", "NA")
	assert.True(t, ok)
	assert.Equal(t, SvtInsertion, svt)
}

func TestDecodeSVTInversionRequiresExplicitCT(t *testing.T) {
	svt, ok := DecodeSVT("INV", "3to3")
	assert.True(t, ok)
	assert.Equal(t, SvtInv3to3, svt)

	svt, ok = DecodeSVT("INV", "5to5")
	assert.True(t, ok)
	assert.Equal(t, SvtInv5to5, svt)

	_, ok = DecodeSVT("INV", "NA")
	assert.False(t, ok, "inversion orientation cannot be inferred without CT")
}

func TestDecodeSVTTranslocationConnections(t *testing.T) {
	cases := []struct {
		ct   string
		want int32
	}{
		{"3to3", SvtTransOffset + 0},
		{"5to5", SvtTransOffset + 1},
		{"3to5", SvtTransOffset + 2},
		{"5to3", SvtTransOffset + 3},
	}
	for _, c := range cases {
		svt, ok := DecodeSVT("BND", c.ct)
		assert.True(t, ok)
		assert.Equal(t, c.want, svt)

		svt, ok = DecodeSVT("TRA", c.ct)
		assert.True(t, ok)
		assert.Equal(t, c.want, svt)
	}

	_, ok := DecodeSVT("BND", "NA")
	assert.False(t, ok, "an inter-chromosomal event needs a known connection")
}

func TestDecodeSVTRejectsInconsistentCombination(t *testing.T) {
	_, ok := DecodeSVT("DEL", "5to3")
	assert.False(t, ok)
	_, ok = DecodeSVT("DUP", "3to5")
	assert.False(t, ok)
	_, ok = DecodeSVT("FOOBAR", "NA")
	assert.False(t, ok)
}

func TestReclassifyBySVClass(t *testing.T) {
	svtype, ct, ok := ReclassifyBySVClass("h2hINV")
	assert.True(t, ok)
	assert.Equal(t, "INV", svtype)
	assert.Equal(t, "3to3", ct)

	svtype, ct, ok = ReclassifyBySVClass("t2tINV")
	assert.True(t, ok)
	assert.Equal(t, "INV", svtype)
	assert.Equal(t, "5to5", ct)

	svtype, ct, ok = ReclassifyBySVClass("DEL")
	assert.True(t, ok)
	assert.Equal(t, "DEL", svtype)
	assert.Equal(t, "3to5", ct)

	_, _, ok = ReclassifyBySVClass("unknown")
	assert.False(t, ok)
}

func TestDecodeSVTAcceptsReclassifiedInversionCT(t *testing.T) {
	_, _, ok := ReclassifyBySVClass("h2hINV")
	assert.True(t, ok)
	svt, ok := DecodeSVT("INV", "3to3")
	assert.True(t, ok)
	assert.Equal(t, SvtInv3to3, svt)
}

func TestReclassifyByCT(t *testing.T) {
	svtype, ok := ReclassifyByCT("3to5")
	assert.True(t, ok)
	assert.Equal(t, "DEL", svtype)

	svtype, ok = ReclassifyByCT("NtoN")
	assert.True(t, ok)
	assert.Equal(t, "INS", svtype)

	_, ok = ReclassifyByCT("bogus")
	assert.False(t, ok)
}

func TestNaturalCT(t *testing.T) {
	assert.Equal(t, "3to5", NaturalCT("del"))
	assert.Equal(t, "5to3", NaturalCT("DUP"))
	assert.Equal(t, "NtoN", NaturalCT("INS"))
	assert.Equal(t, "NA", NaturalCT("BND"))
}
