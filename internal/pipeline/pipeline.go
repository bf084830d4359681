// Package pipeline orchestrates the full annotate run: header reconciliation,
// DB ingest, optional feature-index build, and the per-query match sweep.
// It replaces the module-global mutable state the original tool relied on
// (a growing chromosome map, a file-scoped "hasCT" flag) with one explicit
// struct threaded through every stage.
package pipeline

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/dellytools/sansa-go/internal/chrom"
	"github.com/dellytools/sansa-go/internal/config"
	"github.com/dellytools/sansa-go/internal/dbingest"
	"github.com/dellytools/sansa-go/internal/feature"
	"github.com/dellytools/sansa-go/internal/match"
	"github.com/dellytools/sansa-go/internal/output"
	"github.com/dellytools/sansa-go/internal/proximity"
	"github.com/dellytools/sansa-go/internal/store"
	"github.com/dellytools/sansa-go/internal/svmodel"
	"github.com/dellytools/sansa-go/internal/vcfio"
)

// Stats summarizes one completed run for the closing log line.
type Stats struct {
	DBSiteCount    int
	DBParsed       int
	QuerySiteCount int
	QueryMatched   int
	QueryRejected  int
}

// Pipeline holds the shared state built up once at startup (§9's explicit
// replacement for the original's global chromosome map) and read-only for
// the rest of the run.
type Pipeline struct {
	cfg        config.AnnotateConfig
	log        *zap.SugaredLogger
	reconciler *chrom.Reconciler
	db         []svmodel.SV
	features   *feature.Index
	cache      *store.Store
	dbFP       store.Fingerprint
}

// New builds a Pipeline with an empty chromosome reconciler;
// ReconcileHeaders then scans both headers into it before either stream is
// decoded.
func New(cfg config.AnnotateConfig, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, reconciler: chrom.New()}
}

// ReconcileHeaders scans both headers and extends the map with the fixed
// alias table. Must run before IngestDB or RunQueries.
func (p *Pipeline) ReconcileHeaders(dbHeader, queryHeader []string) {
	p.reconciler.ScanHeader(dbHeader)
	p.reconciler.ScanHeader(queryHeader)
	p.reconciler.AddAliases()
	p.log.Infow("chromosome dictionary reconciled", "distinct_ids", p.reconciler.Len())
}

// IngestDB streams the DB file through dbingest, optionally writing an
// ANNOID-stamped copy to annoWriter.
func (p *Pipeline) IngestDB(dbSource dbingest.Source, annoWriter *vcfio.Writer) (dbingest.Stats, error) {
	result, err := dbingest.Ingest(dbSource, annoWriter, p.reconciler, func(reason string) {
		p.log.Debugw("DB record rejected", "reason", reason)
	})
	if err != nil {
		return dbingest.Stats{}, err
	}
	p.db = result.SVs
	p.log.Infow("DB ingest complete", "sites", result.Stats.SiteCount, "parsed", result.Stats.Parsed)
	return result.Stats, nil
}

// BuildFeatures loads the optional gene-annotation index. A no-op (idx
// stays nil) when cfg.GTFFile is empty.
func (p *Pipeline) BuildFeatures(open feature.Opener) error {
	if p.cfg.GTFFile == "" {
		return nil
	}
	idx, err := feature.Build(open, p.cfg.GTFFile, p.reconciler.Lookup, p.cfg.IDName, p.cfg.Feature)
	if err != nil {
		return fmt.Errorf("build feature index: %w", err)
	}
	if idx.Empty() {
		p.log.Warnw("feature file produced no intervals, continuing without feature annotation", "file", p.cfg.GTFFile)
	}
	p.features = idx
	return nil
}

// UseCache attaches an optional DuckDB match-row cache fingerprinted
// against the DB file at dbPath. A cache miss always falls through to a
// live sweep; a fingerprint mismatch invalidates the whole cache.
func (p *Pipeline) UseCache(s *store.Store, dbPath string) error {
	fp, err := store.StatFile(dbPath)
	if err != nil {
		return fmt.Errorf("fingerprint DB file: %w", err)
	}
	p.cache = s
	p.dbFP = fp
	return nil
}

// matchConfig maps the external config onto the matching engine's tunables.
func (p *Pipeline) matchConfig() match.Config {
	mode := match.ModeBest
	if p.cfg.Strategy == config.StrategyAll {
		mode = match.ModeAll
	}
	return match.Config{
		BPWindow:      p.cfg.BPWindow,
		SizeDiff:      p.cfg.SizeDiff,
		MatchSVType:   p.cfg.MatchSVType,
		Mode:          mode,
		ReportNoMatch: p.cfg.ReportNoMatch,
	}
}

func (p *Pipeline) proximityConfig() proximity.Config {
	return proximity.Config{MaxDistance: p.cfg.MaxDistance, ContainedGenes: p.cfg.ContainedGenes}
}

// RunQueries decodes every record from querySource, sweeps it against the
// ingested DB, and writes one row per emitted match to w (expected to
// already be gzip-compressed per §6).
func (p *Pipeline) RunQueries(querySource dbingest.Source, w io.Writer, totalHint int) (Stats, error) {
	mw := output.NewMatchWriter(w, p.reconciler, p.cfg.ContainedGenes)
	if err := mw.WriteHeader(); err != nil {
		return Stats{}, fmt.Errorf("write match header: %w", err)
	}

	var bar *pb.ProgressBar
	if p.cfg.ShowProgress && totalHint > 0 {
		bar = pb.StartNew(totalHint)
		defer bar.Finish()
	}

	var stats Stats
	pcfg := p.proximityConfig()

	for {
		rec, err := querySource.Next()
		if err != nil {
			return stats, fmt.Errorf("read query record: %w", err)
		}
		if rec == nil {
			break
		}
		stats.QuerySiteCount++
		if bar != nil {
			bar.Increment()
		}

		d, err := vcfio.Decode(rec, false)
		if err != nil {
			stats.QueryRejected++
			p.log.Debugw("query record rejected", "reason", err.Error())
			continue
		}

		chrID, ok := p.reconciler.Lookup(d.ChromName)
		if !ok {
			stats.QueryRejected++
			p.log.Debugw("query record rejected", "reason", fmt.Sprintf("unknown chromosome %q", d.ChromName))
			continue
		}
		chr2ID, ok := p.reconciler.Lookup(d.Chr2Name)
		if !ok {
			stats.QueryRejected++
			p.log.Debugw("query record rejected", "reason", fmt.Sprintf("unknown chromosome %q", d.Chr2Name))
			continue
		}

		q := svmodel.SV{Chr: chrID, Start: d.Start, Chr2: chr2ID, End: d.End, ID: -1, Qual: d.Qual, Svt: d.Svt, SVLen: d.SVLen}

		rows, err := p.sweep(q)
		if err != nil {
			return stats, err
		}

		startFeature, endFeature, contained := proximity.Annotate(p.features, q, pcfg)
		for _, row := range rows {
			if row.DBID >= 0 {
				stats.QueryMatched++
			}
			if err := mw.WriteRow(output.Row{
				Match:        row,
				SVTypeLabel:  d.SVTypeLabel,
				CTLabel:      d.CTLabel,
				StartFeature: startFeature,
				EndFeature:   endFeature,
				Contained:    contained,
			}); err != nil {
				return stats, fmt.Errorf("write match row: %w", err)
			}
		}
	}

	if err := mw.Flush(); err != nil {
		return stats, fmt.Errorf("flush match output: %w", err)
	}
	p.log.Infow("query sweep complete", "sites", stats.QuerySiteCount, "matched", stats.QueryMatched, "rejected", stats.QueryRejected)
	return stats, nil
}

// sweep consults the cache (when attached) before falling back to a live
// match-engine sweep, and populates the cache on a miss.
func (p *Pipeline) sweep(q svmodel.SV) ([]match.Row, error) {
	mcfg := p.matchConfig()

	if p.cache != nil && mcfg.Mode == match.ModeBest {
		if dbid, ok, err := p.cache.Lookup(p.dbFP, q); err != nil {
			return nil, fmt.Errorf("cache lookup: %w", err)
		} else if ok {
			if dbid < 0 && !mcfg.ReportNoMatch {
				return nil, nil
			}
			return []match.Row{{Query: q, DBID: dbid}}, nil
		}
	}

	rows := match.Match(p.db, q, mcfg)

	if p.cache != nil && mcfg.Mode == match.ModeBest {
		dbid := int32(-1)
		if len(rows) > 0 {
			dbid = rows[0].DBID
		}
		if err := p.cache.Put(p.dbFP, q, dbid); err != nil {
			return nil, fmt.Errorf("cache store: %w", err)
		}
	}

	return rows, nil
}

// NewGzipWriter opens a gzip-compressed sink for the match-report TSV, the
// format §6 requires.
func NewGzipWriter(w io.Writer) *gzip.Writer {
	return gzip.NewWriter(w)
}
