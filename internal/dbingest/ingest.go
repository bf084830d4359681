// Package dbingest streams the annotation database through the decoder,
// assigns stable ids, canonicalizes translocations and produces the sorted
// DB vector the matching engine sweeps over.
package dbingest

import (
	"fmt"
	"sort"

	"github.com/dellytools/sansa-go/internal/chrom"
	"github.com/dellytools/sansa-go/internal/svmodel"
	"github.com/dellytools/sansa-go/internal/vcfio"
)

// Stats tracks how many DB records were seen versus successfully parsed,
// reported at the end of ingest the way the original logs "Parsed N out of
// M VCF/BCF records."
type Stats struct {
	SiteCount int
	Parsed    int
}

// Result is the output of a completed ingest pass.
type Result struct {
	SVs   []svmodel.SV
	Stats Stats
}

// Source is the minimal record stream Ingest consumes. *vcfio.Reader
// satisfies it; tests substitute an in-memory fake.
type Source interface {
	Next() (vcfio.RecordSource, error)
}

// Ingest reads every record from reader, decodes it with the bi-allelic
// filter enabled, resolves its primary chromosome against reconciler
// (skipping records on chromosomes absent from both headers), defers CHR2
// resolution through a TempMap the way the original chr2Map did, writes an
// ANNOID-stamped copy to writer when non-nil, canonicalizes translocations
// and returns the DB vector sorted under the canonical order.
//
// onReject, if non-nil, is called with a human-readable reason for every
// skipped or rejected record; it is the hook debug logging attaches to.
func Ingest(reader Source, writer *vcfio.Writer, reconciler *chrom.Reconciler, onReject func(reason string)) (Result, error) {
	tempChr2 := chrom.NewTempMap()
	var svs []svmodel.SV
	var stats Stats

	for {
		rec, err := reader.Next()
		if err != nil {
			return Result{}, fmt.Errorf("read DB record: %w", err)
		}
		if rec == nil {
			break
		}
		stats.SiteCount++

		d, err := vcfio.Decode(rec, true)
		if err != nil {
			notify(onReject, err.Error())
			continue
		}

		chrID, ok := reconciler.Lookup(d.ChromName)
		if !ok {
			notify(onReject, fmt.Sprintf("unknown chromosome %q", d.ChromName))
			continue
		}

		sv := svmodel.SV{
			Chr:   chrID,
			Start: d.Start,
			Chr2:  tempChr2.IDFor(d.Chr2Name),
			End:   d.End,
			ID:    int32(stats.Parsed),
			Qual:  d.Qual,
			Svt:   d.Svt,
			SVLen: d.SVLen,
		}

		if writer != nil {
			if annotatable, canStamp := rec.(vcfio.Annotatable); canStamp {
				if err := annotatable.Stamp(sv.ID, writer); err != nil {
					return Result{}, fmt.Errorf("write annotated DB record: %w", err)
				}
			}
		}

		svs = append(svs, sv)
		stats.Parsed++
	}

	translate := tempChr2.Resolve(reconciler)
	for i := range svs {
		svs[i].Chr2 = translate[svs[i].Chr2]
	}
	for i := range svs {
		svs[i] = svmodel.Canonicalize(svs[i])
	}

	sort.Slice(svs, func(i, j int) bool { return svmodel.Less(svs[i], svs[j]) })

	return Result{SVs: svs, Stats: stats}, nil
}

func notify(onReject func(string), reason string) {
	if onReject != nil {
		onReject(reason)
	}
}
