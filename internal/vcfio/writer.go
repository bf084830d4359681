package vcfio

import (
	"fmt"
	"io"

	"github.com/brentp/vcfgo"

	"github.com/dellytools/sansa-go/internal/svmodel"
)

// annoIDInfo is the header line appended to the annotated DB output,
// mirroring parsedb.h's bcf_hdr_append call.
var annoIDInfo = &vcfgo.Info{
	Id:          "ANNOID",
	Description: "Annotation ID that links query SVs to database SVs.",
	Number:      "1",
	Type:        "String",
}

// Writer emits a copy of every ingested DB record with its ANNOID INFO
// field set (any pre-existing ANNOID is overwritten first).
type Writer struct {
	inner *vcfgo.Writer
}

// NewWriter modifies hdr (the DB reader's header) in place, removing any
// existing ANNOID definition and re-adding it, then opens the output stream.
func NewWriter(w io.Writer, hdr *vcfgo.Header) (*Writer, error) {
	delete(hdr.Infos, "ANNOID")
	hdr.Infos["ANNOID"] = annoIDInfo

	inner, err := vcfgo.NewWriter(w, hdr)
	if err != nil {
		return nil, fmt.Errorf("open annotated DB output: %w", err)
	}
	return &Writer{inner: inner}, nil
}

// WriteAnnotated stamps v with ANNOID derived from id and writes it.
func (w *Writer) WriteAnnotated(v *vcfgo.Variant, id int32) error {
	if err := v.Info().Set("ANNOID", svmodel.AnnoID(id)); err != nil {
		return fmt.Errorf("set ANNOID: %w", err)
	}
	w.inner.WriteVariant(v)
	return nil
}

// Close is a no-op. vcfgo.Writer has no explicit Close; the caller's
// io.Writer (typically a bufio.Writer wrapping a file) owns flushing and
// closing.
func (w *Writer) Close() error { return nil }
