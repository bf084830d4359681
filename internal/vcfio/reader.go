package vcfio

import (
	"fmt"
	"io"
	"strings"

	"github.com/brentp/vcfgo"
)

// Reader streams vcfgo-decoded variants from an open VCF/BCF stream.
type Reader struct {
	inner *vcfgo.Reader
	lines int
}

// NewReader wraps r (already gzip-decompressed if needed) as a VCF reader.
// lazy controls vcfgo's genotype-field laziness; the core never inspects
// genotypes so lazy decoding is always on.
func NewReader(r io.Reader) (*Reader, error) {
	inner, err := vcfgo.NewReader(r, true)
	if err != nil {
		return nil, fmt.Errorf("open VCF/BCF header: %w", err)
	}
	return &Reader{inner: inner}, nil
}

// ContigNames returns every sequence name declared in the header, in
// declaration order, for C2's eager header scan.
func (r *Reader) ContigNames() []string {
	return r.inner.Header.SeqNames
}

// Next returns the next record as a RecordSource, or nil at end of stream.
// The second return reports a parse error on the underlying stream, which
// is fatal (§7: header/stream failures abort, individual bad records do
// not — those surface from Decode, not from Next).
func (r *Reader) Next() (RecordSource, error) {
	v := r.inner.Read()
	if v == nil {
		if err := r.inner.Error(); err != nil && !strings.Contains(err.Error(), "EOF") {
			return nil, err
		}
		return nil, nil
	}
	r.lines++
	return Wrap(v), nil
}

// LineNumber reports how many records have been read so far.
func (r *Reader) LineNumber() int { return r.lines }

// Header exposes the underlying vcfgo header, needed by the annotated-DB
// writer, which appends the ANNOID field to it.
func (r *Reader) Header() *vcfgo.Header { return r.inner.Header }
