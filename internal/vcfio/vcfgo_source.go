package vcfio

import (
	"math"
	"strconv"

	"github.com/brentp/vcfgo"
)

// vcfgoSource adapts *vcfgo.Variant to RecordSource. Decode and everything
// downstream of it work against the interface; only this adapter, the
// Reader and the Writer touch vcfgo types.
type vcfgoSource struct {
	v *vcfgo.Variant
}

// Wrap adapts a vcfgo-decoded variant for Decode.
func Wrap(v *vcfgo.Variant) RecordSource {
	return vcfgoSource{v: v}
}

func (s vcfgoSource) Chrom() string { return s.v.Chromosome }
func (s vcfgoSource) Pos() int32    { return int32(s.v.Pos) }
func (s vcfgoSource) ID() string    { return s.v.Id() }
func (s vcfgoSource) Ref() string   { return s.v.Ref() }
func (s vcfgoSource) Alts() []string {
	return s.v.Alt()
}

// Stamp writes the underlying variant to w with an ANNOID field set,
// satisfying Annotatable.
func (s vcfgoSource) Stamp(id int32, w *Writer) error {
	return w.WriteAnnotated(s.v, id)
}

func (s vcfgoSource) QualInt() int32 {
	q := s.v.Quality
	if math.IsNaN(float64(q)) || q < 0 {
		return 0
	}
	return int32(q)
}

func (s vcfgoSource) InfoString(key string) (string, bool) {
	raw, err := s.v.Info().Get(key)
	if err != nil || raw == nil {
		return "", false
	}
	switch val := raw.(type) {
	case string:
		return val, true
	case []string:
		if len(val) == 0 {
			return "", false
		}
		return val[0], true
	default:
		return "", false
	}
}

func (s vcfgoSource) InfoInt(key string) (int, bool) {
	raw, err := s.v.Info().Get(key)
	if err != nil || raw == nil {
		return 0, false
	}
	switch val := raw.(type) {
	case int:
		return val, true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case []int:
		if len(val) == 0 {
			return 0, false
		}
		return val[0], true
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
