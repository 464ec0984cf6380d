package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/services"
)

func newScanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Acquire the component list of a directory without persisting it",
		Args:  cobra.MaximumNArgs(1),
		Example: `  sbom-snapshot scan
  sbom-snapshot scan ./checkout --output table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			if output != "json" && output != "table" {
				return fmt.Errorf("unsupported output %q (want json or table)", output)
			}

			runtimeEnv, logger := loadEnvironment()
			deps, err := buildSnapshotDeps(runtimeEnv, runtimeEnv.GitHubToken, path, logger)
			if err != nil {
				return err
			}

			components, err := deps.orchestrator.Scan(cmd.Context(), path, runtimeEnv.RegistryCredentials())
			if err != nil {
				return err
			}

			report := services.NewReportCompressor(logger).Compress(runtimeEnv.RepoName, entities.RepositoryMetadata{}, nil, components)

			if output == "table" {
				writePackageTable(cmd.OutOrStdout(), report.Packages)
				return nil
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetEscapeHTML(false)
			encoder.SetIndent("", "    ")
			return encoder.Encode(report.Packages)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or table")

	return cmd
}

// writePackageTable renders packages as a text table
func writePackageTable(w io.Writer, packages []entities.Package) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Version", "Type", "BOM Ref"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, pkg := range packages {
		table.Append([]string{pkg.Name, valueOrDash(pkg.Version), valueOrDash(pkg.Type), valueOrDash(pkg.BOMRef)})
	}
	table.Render()
}

func valueOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
