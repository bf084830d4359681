package vcfio

import (
	"fmt"
	"strings"

	"github.com/dellytools/sansa-go/internal/svmodel"
)

// Decoded is a canonical SV tuple before chromosome names have been
// resolved to the unified integer id space (that reconciliation is C2's
// job, not the decoder's).
type Decoded struct {
	ChromName   string
	Start       int32
	Chr2Name    string
	End         int32
	Qual        int32
	Svt         int32
	SVLen       int32
	SVTypeLabel string
	CTLabel     string
	HasCT       bool
}

// RejectedError explains why a record failed decoding (§7: the caller
// skips the record and continues, it never aborts the run).
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string { return "rejected: " + e.Reason }

func reject(format string, args ...any) error {
	return &RejectedError{Reason: fmt.Sprintf(format, args...)}
}

// Decode turns one raw record into a Decoded tuple, applying the resolution
// rules in order: SVTYPE, CT, CHR2, POS2/END/SVLEN, endPos derivation
// (including BND/TRA ALT parsing and SVCLASS/CT reclassification), svlen
// derivation, and svt encoding. requireBiallelic gates the bi-allelic
// filter, checked before any other rule: true for DB ingest and false for
// query decoding.
func Decode[R RecordSource](rec R, requireBiallelic bool) (Decoded, error) {
	alts := rec.Alts()
	if requireBiallelic && len(alts) != 1 {
		return Decoded{}, reject("record has %d ALT alleles, bi-allelic required", len(alts))
	}

	svtypeLabel, ok := rec.InfoString("SVTYPE")
	if !ok {
		if len(alts) != 1 {
			return Decoded{}, reject("no SVTYPE and no single symbolic ALT allele")
		}
		lbl, symOK := symbolicAlleleType(alts[0])
		if !symOK {
			return Decoded{}, reject("no SVTYPE and ALT %q is not symbolic", alts[0])
		}
		svtypeLabel = lbl
	}

	ctLabel, hasCT := rec.InfoString("CT")
	if !hasCT {
		ctLabel = "NA"
	}

	chr2Name, hasChr2 := rec.InfoString("CHR2")
	if !hasChr2 {
		chr2Name = rec.Chrom()
	}

	pos2, pos2Present := rec.InfoInt("POS2")
	end, endPresent := rec.InfoInt("END")
	svlenField, svlenPresent := rec.InfoInt("SVLEN")

	start := rec.Pos()
	upperType := strings.ToUpper(svtypeLabel)

	endPos := int32(-1)
	switch {
	case pos2Present && endPresent:
		if upperType == "BND" || upperType == "TRA" {
			endPos = int32(pos2)
		} else {
			endPos = int32(end)
		}
	case pos2Present:
		endPos = int32(pos2)
	case endPresent:
		endPos = int32(end)
	case upperType == "INS":
		endPos = start + 2
	case upperType == "DEL":
		ref := rec.Ref()
		if len(alts) == 1 && !isSymbolicAllele(alts[0]) && len(ref) > len(alts[0]) {
			endPos = start + 1 + int32(len(ref)-len(alts[0]))
		}
	}

	if endPos == -1 && (upperType == "BND" || upperType == "TRA") {
		if len(alts) != 1 {
			return Decoded{}, reject("BND record needs exactly one ALT allele")
		}
		mateChrom, matePos, parsedOK := parseBNDAlt(alts[0])
		if !parsedOK {
			return Decoded{}, reject("unparseable BND ALT %q", alts[0])
		}
		chr2Name = mateChrom
		endPos = matePos

		if chr2Name == rec.Chrom() {
			reclassified := false
			if svclass, svclassOK := rec.InfoString("SVCLASS"); svclassOK {
				if lbl, impliedCT, lblOK := svmodel.ReclassifyBySVClass(svclass); lblOK {
					svtypeLabel, upperType = lbl, strings.ToUpper(lbl)
					ctLabel, hasCT = impliedCT, true
					reclassified = true
				}
			}
			if !reclassified {
				if lbl, lblOK := svmodel.ReclassifyByCT(ctLabel); lblOK {
					svtypeLabel, upperType = lbl, strings.ToUpper(lbl)
					reclassified = true
				}
			}
			if !reclassified {
				return Decoded{}, reject("same-chromosome BND could not be reclassified to a concrete type")
			}
		}
	}

	if endPos == -1 {
		return Decoded{}, reject("could not derive an end position")
	}

	svlen := int32(-1)
	if svlenPresent {
		svlen = absInt32(int32(svlenField))
	} else {
		switch upperType {
		case "DEL", "DUP", "INV":
			svlen = endPos - start
		}
	}

	svt, svtOK := svmodel.DecodeSVT(svtypeLabel, ctLabel)
	if !svtOK {
		return Decoded{}, reject("unknown SVTYPE/CT combination %q/%q", svtypeLabel, ctLabel)
	}

	return Decoded{
		ChromName:   rec.Chrom(),
		Start:       start,
		Chr2Name:    chr2Name,
		End:         endPos,
		Qual:        rec.QualInt(),
		Svt:         svt,
		SVLen:       svlen,
		SVTypeLabel: svtypeLabel,
		CTLabel:     ctLabel,
		HasCT:       hasCT,
	}, nil
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
