package model

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/repo"
	"kubegems.io/modelpack/pkg/client"
	"kubegems.io/modelpack/pkg/mlmodel"
)

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a published model version",
		Long:  "Show the parsed descriptor of a published version, including its signature",
		Example: `
	# Inspect a version
	modelpack inspect myrepo/project/demo@v1
		`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return repo.CompleteRegistryRepositoryVersion(cmd.Context(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("inspect requires a reference argument")
			}
			ref, err := ParseVersionedReference(args[0])
			if err != nil {
				return err
			}
			descriptor, _, err := client.GetConfig(cmd.Context(), ref.Reference, ref.Authorization)
			if err != nil {
				return err
			}
			printDescriptor(cmd, ref, descriptor)
			return nil
		},
	}
	return cmd
}

func printDescriptor(cmd *cobra.Command, ref Reference, descriptor *mlmodel.ModelDescriptor) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reference:     %s\n", ref.String())
	fmt.Fprintf(out, "Framework:     %s\n", descriptor.Framework())
	fmt.Fprintf(out, "Flavors:       %v\n", descriptor.Flavors.Names())
	if descriptor.ModelUUID != "" {
		fmt.Fprintf(out, "Model UUID:    %s\n", descriptor.ModelUUID)
	}
	if descriptor.RunID != "" {
		fmt.Fprintf(out, "Run ID:        %s\n", descriptor.RunID)
	}
	if descriptor.MLflowVersion != "" {
		fmt.Fprintf(out, "Exporter:      mlflow %s\n", descriptor.MLflowVersion)
	}
	if created, err := descriptor.Created(); err == nil {
		fmt.Fprintf(out, "Created:       %s\n", created)
	}

	if descriptor.Signature == nil {
		fmt.Fprintln(out, "Signature:     none")
		return
	}
	fmt.Fprintln(out, "Signature:")
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"", "#", "Name", "Type"})
	for i, col := range descriptor.Signature.Inputs.Columns {
		t.AppendRow(table.Row{"input", i, col.Name, col.Type})
	}
	for i, col := range descriptor.Signature.Outputs.Columns {
		t.AppendRow(table.Row{"output", i, col.Name, col.Type})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
