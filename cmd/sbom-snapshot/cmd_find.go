package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbom-snapshot/internal/domain-adapters/gateways"
	"github.com/ochairo/sbom-snapshot/internal/domain/services"
)

func newFindCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "find [root]",
		Short: "List the files the container fallback would build, in build order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			files, err := gateways.NewRegexFileLocator().FindFiles(pattern, root)
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", services.DockerfilePattern, "Regular expression matched against the start of relative paths")

	return cmd
}
