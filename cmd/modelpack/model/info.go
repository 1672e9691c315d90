package model

import (
	"fmt"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
	"kubegems.io/modelpack/pkg/client"
)

func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the raw descriptor of a published version",
		Example: `
	# Print the MLmodel document as published
	modelpack info myrepo/project/demo@v1
		`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return repo.CompleteRegistryRepositoryVersion(cmd.Context(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("info requires a reference argument")
			}
			ref, err := ParseVersionedReference(args[0])
			if err != nil {
				return err
			}
			_, raw, err := client.GetConfig(cmd.Context(), ref.Reference, ref.Authorization)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
	return cmd
}
