package model

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
)

func NewPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull a model version",
		Example: `
	# Pull into a directory named after the model
	modelpack pull myrepo/project/demo@v1

	# Pull into a specific directory
	modelpack pull myrepo/project/demo@v1 path/to/model
		`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return repo.CompleteRegistryRepositoryVersion(cmd.Context(), toComplete)
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("pull requires a reference argument")
			}
			ref, err := ParseVersionedReference(args[0])
			if err != nil {
				return err
			}
			into := path.Base(ref.Repository)
			if len(args) > 1 {
				into = args[1]
			}
			return ref.Client().Pull(cmd.Context(), ref.Repository, ref.Version, into)
		},
	}
	return cmd
}
