package model

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
	"kubegems.io/modelpack/pkg/client"
)

func NewLoginCmd() *cobra.Command {
	name, token := "", ""
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a registry",
		Long:  "Verify a token against a registry and store it as a named repository",
		Example: `
	# Log in and store the token under the host name
	modelpack login https://models.example.com --token <token>

	# Store under a custom alias, token read from stdin
	modelpack login https://models.example.com --name my-repo
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("login requires a registry argument")
			}
			registry := args[0]
			if !strings.Contains(registry, "://") {
				registry = "https://" + registry
			}
			u, err := url.ParseRequestURI(registry)
			if err != nil {
				return err
			}
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Token: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				token = strings.TrimSpace(line)
			}

			if err := client.NewClient(registry, "Bearer "+token).Ping(cmd.Context()); err != nil {
				return fmt.Errorf("login %s: %w", registry, err)
			}

			if name == "" {
				name = u.Host
			}
			if err := repo.DefaultRepoManager.Set(repo.RepoDetails{Name: name, URL: registry, Token: token}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login succeeded, stored as %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", name, "alias to store the registry under, defaults to the host")
	cmd.Flags().StringVar(&token, "token", token, "bearer token, prompted when empty")
	return cmd
}
