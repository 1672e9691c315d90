package model

import (
	"fmt"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
)

func NewPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a model directory",
		Long:  "Validate the MLmodel descriptor, pack the directory and upload it as a version",
		Example: `
	# Push the current directory
	modelpack push myrepo/project/demo@v1

	# Push another directory
	modelpack push myrepo/project/demo@v1 path/to/model
		`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return repo.CompleteRegistryRepositoryVersion(cmd.Context(), toComplete)
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("push requires a reference argument")
			}
			ref, err := ParseVersionedReference(args[0])
			if err != nil {
				return err
			}
			dir := "."
			if len(args) > 1 {
				dir = args[1]
			}
			return ref.Client().Push(cmd.Context(), ref.Repository, ref.Version, dir)
		},
	}
	return cmd
}
