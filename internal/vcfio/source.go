// Package vcfio turns one VCF/BCF record into a canonical svmodel.SV tuple.
//
// The decoder is polymorphic over the record's capability set rather than
// tied to a single VCF library: anything that implements RecordSource can
// be fed to Decode. The production adapter wraps github.com/brentp/vcfgo;
// tests feed a hand-built RecordSource directly, with no VCF text parsing
// in the loop at all.
package vcfio

// RecordSource is the minimal capability set the decoder needs from a raw
// variant record: chromosome/position/allele accessors plus typed INFO
// field lookups. Implemented once per underlying VCF library.
type RecordSource interface {
	Chrom() string
	Pos() int32
	ID() string
	Ref() string
	Alts() []string
	QualInt() int32
	InfoString(key string) (string, bool)
	InfoInt(key string) (int, bool)
}

// Annotatable is implemented by RecordSources whose underlying library
// record can be re-emitted with an ANNOID tag attached. The vcfgo adapter
// implements it; a RecordSource built only for testing Decode need not.
type Annotatable interface {
	Stamp(id int32, w *Writer) error
}
