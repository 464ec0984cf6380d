package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbom-snapshot/internal/domain-adapters/gateways"
	"github.com/ochairo/sbom-snapshot/internal/domain/services"
	"github.com/ochairo/sbom-snapshot/internal/external-adapters/gpg"
)

func newVerifyCommand() *cobra.Command {
	var (
		keyFile      string
		signature    string
		skipChecksum bool
	)

	cmd := &cobra.Command{
		Use:     "verify <report>",
		Short:   "Verify the detached signature of a persisted report",
		Args:    cobra.ExactArgs(1),
		Example: `  sbom-snapshot verify /tmp/2024-05-04-tech-radar-0123456789abcdef.json --key signing-public.asc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := args[0]
			if signature == "" {
				signature = report + services.SignatureSuffix
			}

			if !skipChecksum {
				if err := gateways.NewReportChecksumVerifier().VerifyReportName(report); err != nil {
					return err
				}
			}

			verifier, err := gpg.NewVerifierFromFile(keyFile)
			if err != nil {
				return err
			}

			keyID, err := verifier.VerifyFiles(report, signature)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Good signature from key %s\n", keyID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Armored public key file")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "Signature file (default <report>.asc)")
	cmd.Flags().BoolVar(&skipChecksum, "skip-checksum", false, "Do not compare the content hash with the one in the file name")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
