package model

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/pkg/mlmodel"
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a local model directory",
		Long:  "Parse the MLmodel descriptor and check that the files it references exist",
		Example: `
	# Validate the current directory
	modelpack validate

	# Validate another directory
	modelpack validate path/to/model
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			model, err := mlmodel.LoadDir(dir)
			if err != nil {
				return err
			}
			fmt.Printf("%s: OK\n", filepath.Join(dir, mlmodel.DescriptorFileName))
			fmt.Printf("  framework:  %s\n", model.Descriptor.Framework())
			fmt.Printf("  model file: %s\n", model.ModelFile)
			for _, env := range model.EnvironmentFiles {
				fmt.Printf("  env file:   %s\n", env)
			}
			if sig := model.Descriptor.Signature; sig != nil {
				fmt.Printf("  signature:  %d inputs, %d outputs\n", len(sig.Inputs.Columns), len(sig.Outputs.Columns))
			}
			return nil
		},
	}
	return cmd
}
