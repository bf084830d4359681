package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dellytools/sansa-go/internal/config"
	"github.com/dellytools/sansa-go/internal/feature"
	"github.com/dellytools/sansa-go/internal/ioutil"
	"github.com/dellytools/sansa-go/internal/logging"
	"github.com/dellytools/sansa-go/internal/pipeline"
	"github.com/dellytools/sansa-go/internal/store"
	"github.com/dellytools/sansa-go/internal/vcfio"
)

func newAnnotateCmd(v *viper.Viper) *cobra.Command {
	cfg := config.Default()
	var debug bool

	cmd := &cobra.Command{
		Use:   "annotate <query-file>",
		Short: "Annotate query structural variants against a database",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bpwindow, sizediff := cfg.BPWindow, cfg.SizeDiff
			config.Overlay(v, &cfg)
			// bpwindow and sizediff have non-zero flag defaults, which Overlay
			// never replaces: an explicit flag wins, then the configured value.
			if cmd.Flags().Changed("bpwindow") {
				cfg.BPWindow = bpwindow
			} else if v.IsSet("annotate.bpwindow") {
				cfg.BPWindow = int32(v.GetInt("annotate.bpwindow"))
			}
			if cmd.Flags().Changed("sizediff") {
				cfg.SizeDiff = sizediff
			} else if v.IsSet("annotate.sizediff") {
				cfg.SizeDiff = v.GetFloat64("annotate.sizediff")
			}
			if err := cfg.Validate(); err != nil {
				return &usageError{err: err}
			}
			return runAnnotate(args[0], cfg, debug)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.DB, "db", "d", "", "annotation database VCF/BCF (required)")
	flags.StringVarP(&cfg.AnnoFile, "anno-out", "a", "", "annotated copy of the DB, ANNOID-stamped")
	flags.StringVarP(&cfg.MatchFile, "match-out", "o", "", "gzip-compressed match report (default: stdout)")
	flags.Int32VarP(&cfg.BPWindow, "bpwindow", "b", cfg.BPWindow, "breakpoint window")
	flags.Float64VarP(&cfg.SizeDiff, "sizediff", "r", cfg.SizeDiff, "minimum size-ratio/reciprocal-overlap")
	strategy := string(cfg.Strategy)
	flags.StringVarP(&strategy, "strategy", "s", strategy, "matching strategy: best|all")
	disableSVType := false
	flags.BoolVarP(&disableSVType, "no-svtype-match", "n", false, "disable SV-type matching")
	flags.BoolVarP(&cfg.ReportNoMatch, "report-no-match", "m", false, "report a None row for unmatched queries")
	flags.StringVarP(&cfg.GTFFile, "gtf", "g", "", "gene-annotation file (GTF/GFF3/BED, GTF/GFF3 must be gzipped)")
	flags.StringVarP(&cfg.IDName, "id-attr", "i", cfg.IDName, "feature identifier attribute")
	flags.StringVarP(&cfg.Feature, "feature", "f", cfg.Feature, "feature type to keep")
	flags.Int32VarP(&cfg.MaxDistance, "max-distance", "t", cfg.MaxDistance, "maximum proximity-report distance")
	flags.BoolVar(&cfg.ContainedGenes, "contained-genes", false, "report features fully contained between breakpoints")
	flags.BoolVar(&cfg.ShowProgress, "progress", false, "show a progress bar while sweeping queries")
	flags.StringVar(&cfg.CacheDB, "cache", "", "DuckDB sidecar path to cache match rows across runs")
	flags.BoolVar(&debug, "debug", false, "verbose per-record rejection logging")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg.Strategy = config.Strategy(strategy)
		cfg.MatchSVType = !disableSVType
		return nil
	}

	return cmd
}

func runAnnotate(queryPath string, cfg config.AnnotateConfig, debug bool) error {
	log := logging.New(debug)
	log.Infow("sansa invoked", "args", os.Args)

	if cfg.MatchFile != "" {
		if err := ioutil.ValidateOutputPath(cfg.MatchFile); err != nil {
			return fmt.Errorf("match output: %w", err)
		}
	}
	if cfg.AnnoFile != "" {
		if err := ioutil.ValidateOutputPath(cfg.AnnoFile); err != nil {
			return fmt.Errorf("annotated DB output: %w", err)
		}
	}

	dbStream, err := openMaybeGzip(cfg.DB)
	if err != nil {
		return fmt.Errorf("open DB file: %w", err)
	}
	defer dbStream.Close()
	dbReader, err := vcfio.NewReader(dbStream)
	if err != nil {
		return fmt.Errorf("open DB header: %w", err)
	}

	queryStream, err := openMaybeGzip(queryPath)
	if err != nil {
		return fmt.Errorf("open query file: %w", err)
	}
	defer queryStream.Close()
	queryReader, err := vcfio.NewReader(queryStream)
	if err != nil {
		return fmt.Errorf("open query header: %w", err)
	}

	p := pipeline.New(cfg, log)
	p.ReconcileHeaders(dbReader.ContigNames(), queryReader.ContigNames())

	var annoWriter *vcfio.Writer
	var annoFile *os.File
	if cfg.AnnoFile != "" {
		annoFile, err = os.Create(cfg.AnnoFile)
		if err != nil {
			return fmt.Errorf("create annotated DB output: %w", err)
		}
		defer annoFile.Close()
		annoWriter, err = vcfio.NewWriter(annoFile, dbReader.Header())
		if err != nil {
			return fmt.Errorf("open annotated DB writer: %w", err)
		}
	}

	if _, err := p.IngestDB(dbReader, annoWriter); err != nil {
		return fmt.Errorf("DB ingest: %w", err)
	}

	if cfg.GTFFile != "" {
		if err := p.BuildFeatures(featureOpener(cfg.GTFFile)); err != nil {
			return err
		}
	}

	if cfg.CacheDB != "" {
		s, err := store.Open(cfg.CacheDB)
		if err != nil {
			return fmt.Errorf("open match cache: %w", err)
		}
		defer s.Close()
		if err := p.UseCache(s, cfg.DB); err != nil {
			return fmt.Errorf("fingerprint DB for cache: %w", err)
		}
	}

	var out io.Writer = os.Stdout
	var outFile *os.File
	if cfg.MatchFile != "" {
		outFile, err = os.Create(cfg.MatchFile)
		if err != nil {
			return fmt.Errorf("create match output: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}
	gz := gzip.NewWriter(out)
	defer gz.Close()

	if _, err := p.RunQueries(queryReader, gz, 0); err != nil {
		return fmt.Errorf("query sweep: %w", err)
	}

	return nil
}

// openMaybeGzip opens path and wraps it in a gzip reader when the name
// ends in .gz; the VCF/BCF reader expects an already-decompressed stream.
// Feature files are not opened here: feature.Build detects and decompresses
// gzip itself.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{Reader: gz, file: f}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	g.Reader.Close()
	return g.file.Close()
}

// featureOpener returns a feature.Opener that reopens path from the start
// each time it is called, since the GFF3 builder needs two full passes.
func featureOpener(path string) feature.Opener {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}
