package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/sbom-snapshot/internal/domain-orchestrators"
	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
	"github.com/ochairo/sbom-snapshot/internal/external-adapters/yaml"
)

func newRunCommand() *cobra.Command {
	var (
		configBlob string
		configFile string
		path       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute and persist the SBOM snapshot of the current repository",
		Example: `  sbom-snapshot run -c '{"s3-role-arn": "arn:aws:iam::123456789012:role/sbom-writer"}'
  sbom-snapshot run --config-file action.yaml --path ./checkout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := parseActionConfig(configBlob, configFile)
			if err != nil {
				return err
			}

			runtimeEnv, logger := loadEnvironment()

			token := config.Token
			if token == "" {
				token = runtimeEnv.GitHubToken
			}
			org := config.Org
			if org == "" {
				org = runtimeEnv.RepoOwner
			}

			deps, err := buildSnapshotDeps(runtimeEnv, token, path, logger)
			if err != nil {
				return err
			}

			logger.Info("Starting snapshot",
				interfaces.F("repo", runtimeEnv.RepoName),
				interfaces.F("org", org),
				interfaces.F("branch", runtimeEnv.DefaultBranch))

			result, err := deps.orchestrator.Run(cmd.Context(), orchestrators.SnapshotRequest{
				Org:      org,
				Repo:     runtimeEnv.RepoName,
				Branch:   runtimeEnv.DefaultBranch,
				ScanPath: path,
				Registry: runtimeEnv.RegistryCredentials(),
				Target: services.RemoteTarget{
					Bucket:     config.Bucket,
					RoleARN:    config.RoleARN,
					ExternalID: config.RoleExternalID,
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), deps.orchestrator.GetSnapshotSummary(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configBlob, "config", "c", "", "Action configuration as a JSON or YAML string")
	cmd.Flags().StringVar(&configFile, "config-file", "", "Read the action configuration from a file")
	cmd.Flags().StringVar(&path, "path", ".", "Repository checkout to scan")

	return cmd
}

// parseActionConfig reads the configuration from the flag value or the file
func parseActionConfig(blob, file string) (*entities.ActionConfig, error) {
	parser := yaml.NewConfigParser()
	if file != "" {
		if blob != "" {
			return nil, fmt.Errorf("--config and --config-file are mutually exclusive")
		}
		return parser.ParseFile(file)
	}
	if blob == "" {
		blob = os.Getenv("INPUT_CONFIG")
	}
	return parser.Parse([]byte(blob))
}
