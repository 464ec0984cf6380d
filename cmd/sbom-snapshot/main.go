package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/external-adapters/env"
	"github.com/ochairo/sbom-snapshot/internal/external-adapters/logging"
)

var verbose bool

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sbom-snapshot",
		Short: "sbom-snapshot - Per-repository SBOM snapshots for CI",
		Long: `sbom-snapshot computes a Software Bill of Materials snapshot of a repository:
repository metadata, the scanner's component list (falling back to images built
from the repository's Dockerfiles) and the language histogram, persisted locally
and to an S3 bucket behind an assumed role.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRunCommand(),
		newScanCommand(),
		newFindCommand(),
		newVerifyCommand(),
	)

	return root
}

// loadEnvironment reads the runtime settings and builds the logger
func loadEnvironment() (entities.RuntimeEnvironment, *logging.Logger) {
	runtimeEnv := env.NewLoader().Load()

	level := runtimeEnv.LogLevel
	if verbose {
		level = "debug"
	}

	return runtimeEnv, logging.New(os.Stderr, level)
}
