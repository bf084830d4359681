// Package main provides the sansa command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sansaconfig "github.com/dellytools/sansa-go/internal/config"
)

// Exit codes (§6).
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// usageError marks a failure that should surface as the usage exit code
// rather than a runtime/ingest failure.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run())
}

func run() int {
	v, err := sansaconfig.NewViper()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	root := &cobra.Command{
		Use:           "sansa",
		Short:         "Structural variant database annotation",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnnotateCmd(v))
	root.AddCommand(newConfigCmd(v))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}
