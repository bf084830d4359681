package vcfio

import "regexp"

// bndAltPattern matches the four bracket forms of a breakend ALT allele:
// t[chr:pos[, t]chr:pos], [chr:pos[t, ]chr:pos]t. Only the embedded
// chr:pos token is extracted; the bracket direction does not by itself
// determine the connection type (that comes from SVCLASS/CT).
var bndAltPattern = regexp.MustCompile(`[\[\]]([^:\[\]]+):(\d+)[\[\]]`)

// parseBNDAlt extracts the mate chromosome and position from a breakend ALT
// allele string.
func parseBNDAlt(alt string) (chr2Name string, pos2 int32, ok bool) {
	m := bndAltPattern.FindStringSubmatch(alt)
	if m == nil {
		return "", 0, false
	}
	n, err := parsePositiveInt(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], int32(n), true
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errNotDigits
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

var errNotDigits = &parseError{"not a digit string"}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// isSymbolicAllele reports whether alt is a symbolic allele of the form
// <XYZ>.
func isSymbolicAllele(alt string) bool {
	return len(alt) >= 2 && alt[0] == '<' && alt[len(alt)-1] == '>'
}

// symbolicAlleleType extracts XYZ from <XYZ>, optionally followed by a
// colon-separated subtype (e.g. <DUP:TANDEM> yields DUP).
func symbolicAlleleType(alt string) (string, bool) {
	if !isSymbolicAllele(alt) {
		return "", false
	}
	inner := alt[1 : len(alt)-1]
	for i, c := range inner {
		if c == ':' {
			return inner[:i], true
		}
	}
	return inner, true
}
