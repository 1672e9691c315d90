package repo

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRepoAddCmd() *cobra.Command {
	token := ""
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a repository",
		Example: `
	# Add a repository
	modelpack repo add my-repo https://models.example.com
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("repo add requires two arguments")
			}
			return DefaultRepoManager.Set(RepoDetails{
				Name:  args[0],
				URL:   args[1],
				Token: token,
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", token, "bearer token for the repository")
	return cmd
}
