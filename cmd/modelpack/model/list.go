package model

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
	"kubegems.io/modelpack/pkg/client"
)

func NewListCmd() *cobra.Command {
	search := ""
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories, versions or files",
		Example: `
	# List repositories on a registry
	modelpack list myrepo

	# List versions of a model
	modelpack list myrepo/project/demo

	# List files of a version
	modelpack list myrepo/project/demo@v1
		`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return repo.CompleteRegistryRepositoryVersion(cmd.Context(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("list requires a reference argument")
			}
			ref, err := ParseReference(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var show *client.ShowList
			switch {
			case ref.Repository == "" && ref.Version == "":
				show, err = client.ListRepositories(ctx, ref.Reference, search, ref.Authorization)
			case ref.Version == "":
				show, err = client.ListVersions(ctx, ref.Reference, search, ref.Authorization)
			case ref.Repository != "":
				show, err = client.ListFiles(ctx, ref.Reference, ref.Authorization)
			default:
				err = errors.New("invalid reference")
			}
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(show.Header)
			for _, item := range show.Items {
				t.AppendRow(item)
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", search, "filter by name")
	return cmd
}
