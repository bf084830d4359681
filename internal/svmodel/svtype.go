package svmodel

import "strings"

// DecodeSVT combines an SVTYPE label and a CT (connection-type) label into
// the numeric svt code. A missing/"NA" ct falls back to the type's natural
// connection (DEL -> 3to5, DUP -> 5to3, INS -> NtoN). Unknown combinations
// return ok=false and the record must be rejected.
func DecodeSVT(svtype, ct string) (svt int32, ok bool) {
	svtype = strings.ToUpper(strings.TrimSpace(svtype))
	ct = strings.TrimSpace(ct)
	if ct == "" {
		ct = "NA"
	}

	switch svtype {
	case "DEL":
		if ct == "NA" {
			ct = "3to5"
		}
		if ct != "3to5" {
			return 0, false
		}
		return SvtDeletion, true
	case "DUP":
		if ct == "NA" {
			ct = "5to3"
		}
		if ct != "5to3" {
			return 0, false
		}
		return SvtDuplication, true
	case "INV":
		switch ct {
		case "3to3":
			return SvtInv3to3, true
		case "5to5":
			return SvtInv5to5, true
		default:
			return 0, false
		}
	case "INS":
		return SvtInsertion, true
	case "BND", "TRA":
		switch ct {
		case "3to3":
			return SvtTransOffset + 0, true
		case "5to5":
			return SvtTransOffset + 1, true
		case "3to5":
			return SvtTransOffset + 2, true
		case "5to3":
			return SvtTransOffset + 3, true
		default:
			return 0, false
		}
	case "CNV":
		return SvtCNV, true
	case "CPX", "COMPLEX":
		return SvtCNV + 1, true
	default:
		return 0, false
	}
}

// NaturalCT returns the connection type a given SVTYPE label implies when
// the record carries no explicit CT field.
func NaturalCT(svtype string) string {
	switch strings.ToUpper(strings.TrimSpace(svtype)) {
	case "DEL":
		return "3to5"
	case "DUP":
		return "5to3"
	case "INS":
		return "NtoN"
	default:
		return "NA"
	}
}

// ReclassifyBySVClass maps the SVCLASS INFO value (used on BND records with
// an ambiguous single-breakpoint encoding) to a concrete SVTYPE label and the
// CT it implies, since SVCLASS-reclassified records carry no CT of their own.
func ReclassifyBySVClass(svclass string) (svtype, ct string, ok bool) {
	switch svclass {
	case "DEL":
		return "DEL", "3to5", true
	case "DUP":
		return "DUP", "5to3", true
	case "h2hINV":
		return "INV", "3to3", true
	case "t2tINV":
		return "INV", "5to5", true
	case "INS":
		return "INS", "NtoN", true
	default:
		return "", "", false
	}
}

// ReclassifyByCT maps a CT string to a concrete SVTYPE label, used as the
// second-priority BND reclassification rule when SVCLASS is absent.
func ReclassifyByCT(ct string) (svtype string, ok bool) {
	switch ct {
	case "3to5":
		return "DEL", true
	case "5to3":
		return "DUP", true
	case "3to3", "5to5":
		return "INV", true
	case "NtoN":
		return "INS", true
	default:
		return "", false
	}
}
