// Package config defines the annotate pipeline's settings and its
// flag/environment/file overlay, mirroring the precedence the teacher's
// own config command applies (flag > env > config file > default).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Strategy selects the matching engine's candidate-reporting mode.
type Strategy string

const (
	StrategyBest Strategy = "best"
	StrategyAll  Strategy = "all"
)

// AnnotateConfig holds every tunable of the `sansa annotate` pipeline.
type AnnotateConfig struct {
	DB       string
	AnnoFile string
	MatchFile string

	BPWindow      int32
	SizeDiff      float64
	Strategy      Strategy
	MatchSVType   bool
	ReportNoMatch bool

	GTFFile        string
	IDName         string
	Feature        string
	MaxDistance    int32
	ContainedGenes bool

	ShowProgress bool
	CacheDB      string
	Debug        bool
}

// Default returns the flag defaults from the external CLI surface.
func Default() AnnotateConfig {
	return AnnotateConfig{
		BPWindow:    50,
		SizeDiff:    0.8,
		Strategy:    StrategyBest,
		MatchSVType: true,
		IDName:      "gene_name",
		Feature:     "gene",
		MaxDistance: 1000,
	}
}

// Validate reports a usage error for a config that cannot run the pipeline.
func (c AnnotateConfig) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("db file is required")
	}
	if c.Strategy != StrategyBest && c.Strategy != StrategyAll {
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyBest, StrategyAll, c.Strategy)
	}
	if c.SizeDiff < 0 || c.SizeDiff > 1 {
		return fmt.Errorf("sizediff must be in [0, 1], got %v", c.SizeDiff)
	}
	if c.BPWindow < 0 {
		return fmt.Errorf("bpwindow must be >= 0, got %d", c.BPWindow)
	}
	return nil
}

// Overlay applies viper-sourced defaults (SANSA_ prefixed env vars, then
// ~/.sansa.yaml) onto fields the caller left at their zero value (IDName
// also while it still holds its "gene_name" default), following the same
// flag-then-viper precedence as the teacher's config command.
func Overlay(v *viper.Viper, c *AnnotateConfig) {
	if c.BPWindow == 0 && v.IsSet("annotate.bpwindow") {
		c.BPWindow = int32(v.GetInt("annotate.bpwindow"))
	}
	if c.SizeDiff == 0 && v.IsSet("annotate.sizediff") {
		c.SizeDiff = v.GetFloat64("annotate.sizediff")
	}
	if c.GTFFile == "" {
		c.GTFFile = v.GetString("annotate.gtf")
	}
	if c.IDName == "" || c.IDName == "gene_name" {
		if v.IsSet("annotate.idname") {
			c.IDName = v.GetString("annotate.idname")
		}
	}
	if c.CacheDB == "" {
		c.CacheDB = v.GetString("annotate.cachedb")
	}
}

// NewViper builds the viper instance used by both `sansa annotate` (env and
// file overlay) and `sansa config` (show/get/set), rooted at ~/.sansa.yaml
// and the SANSA_ environment prefix.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("SANSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	v.SetConfigFile(filepath.Join(home, ".sansa.yaml"))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}
