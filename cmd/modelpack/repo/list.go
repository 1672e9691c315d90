package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	SplitorRepo    = "/"
	SplitorVersion = "@"
)

func NewRepoListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Name", "URL"})
			for _, repo := range DefaultRepoManager.List() {
				t.AppendRow(table.Row{repo.Name, repo.URL})
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}
	return cmd
}

// CompleteRegistryRepositoryVersion completes "<repo>/<repository>@<version>"
// style arguments stage by stage.
func CompleteRegistryRepositoryVersion(ctx context.Context, tocomplete string) ([]string, cobra.ShellCompDirective) {
	if idx := strings.Index(tocomplete, SplitorVersion); idx != -1 {
		return CompleteVersion(ctx, tocomplete[:idx], tocomplete[idx+1:])
	}
	if idx := strings.Index(tocomplete, SplitorRepo); idx != -1 {
		return CompleteRepositories(ctx, tocomplete[:idx], tocomplete[idx+1:])
	}
	return CompleteRegistry(ctx, tocomplete)
}

func CompleteRegistry(ctx context.Context, tocomplete string) ([]string, cobra.ShellCompDirective) {
	completions := []string{}
	for _, repo := range DefaultRepoManager.List() {
		if strings.HasPrefix(repo.Name, tocomplete) {
			completions = append(completions, repo.Name+SplitorRepo)
		}
	}
	return completions, cobra.ShellCompDirectiveNoSpace
}

func CompleteRepositories(ctx context.Context, name string, tocomplete string) ([]string, cobra.ShellCompDirective) {
	details, err := DefaultRepoManager.Get(name)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	index, err := details.Client().GetGlobalIndex(ctx, tocomplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	completions := make([]string, 0, len(index.Manifests))
	for _, manifest := range index.Manifests {
		completions = append(completions, fmt.Sprintf("%s%s%s", name, SplitorRepo, manifest.Name))
	}
	return completions, cobra.ShellCompDirectiveNoSpace
}

func CompleteVersion(ctx context.Context, name string, tocomplete string) ([]string, cobra.ShellCompDirective) {
	repository := ""
	if idx := strings.Index(name, SplitorRepo); idx != -1 {
		name, repository = name[:idx], name[idx+1:]
	}
	details, err := DefaultRepoManager.Get(name)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	index, err := details.Client().GetIndex(ctx, repository, tocomplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	completions := make([]string, 0, len(index.Manifests))
	for _, manifest := range index.Manifests {
		completions = append(completions, fmt.Sprintf("%s%s%s%s%s", name, SplitorRepo, repository, SplitorVersion, manifest.Name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
