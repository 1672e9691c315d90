package repo

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRepoRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a repository",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{}
			for _, repo := range DefaultRepoManager.List() {
				completions = append(completions, repo.Name)
			}
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("repo remove requires one argument")
			}
			return DefaultRepoManager.Remove(args[0])
		},
	}
	return cmd
}
