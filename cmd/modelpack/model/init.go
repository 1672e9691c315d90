package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/pkg/mlmodel"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a model directory",
		Example: `
	# Scaffold a descriptor and environment files in ./my-model
	modelpack init my-model
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("init requires a directory argument")
			}
			return InitModelDir(args[0])
		},
	}
	return cmd
}

const initReadme = `# %s

Place the serialized model at model.pkl, adjust MLmodel and the
environment files, then publish with:

	modelpack push <repo>/%s@<version> %s
`

const initCondaEnv = `channels:
- conda-forge
dependencies:
- python=3.8.10
- pip
- pip:
  - -r requirements.txt
name: %s
`

const initPythonEnv = `python: 3.8.10
build_dependencies:
- pip
dependencies:
- -r requirements.txt
`

const initRequirements = `mlflow
scikit-learn
`

// InitModelDir scaffolds dir with a fresh descriptor and the
// environment files it references. An existing descriptor is never
// overwritten.
func InitModelDir(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, mlmodel.DescriptorFileName)); err == nil {
		return fmt.Errorf("%s already contains a %s", dir, mlmodel.DescriptorFileName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := filepath.Base(dir)
	descriptor := &mlmodel.ModelDescriptor{
		ArtifactPath: name,
		Flavors: mlmodel.Flavors{
			mlmodel.FlavorPythonFunction: {
				"loader_module":  "mlflow.sklearn",
				"model_path":     "model.pkl",
				"python_version": "3.8.10",
				"env": map[string]any{
					"conda":      mlmodel.CondaEnvFileName,
					"virtualenv": mlmodel.PythonEnvFileName,
				},
			},
			mlmodel.FlavorSklearn: {
				"pickled_model":        "model.pkl",
				"serialization_format": "cloudpickle",
			},
		},
		ModelUUID:      mlmodel.NewModelUUID(),
		UTCTimeCreated: time.Now().UTC().Format("2006-01-02 15:04:05.999999"),
	}
	content, err := descriptor.Marshal()
	if err != nil {
		return err
	}

	files := map[string]string{
		mlmodel.DescriptorFileName:   string(content),
		mlmodel.CondaEnvFileName:     fmt.Sprintf(initCondaEnv, name),
		mlmodel.PythonEnvFileName:    initPythonEnv,
		mlmodel.RequirementsFileName: initRequirements,
		"README.md":                  fmt.Sprintf(initReadme, name, name, dir),
	}
	for filename, content := range files {
		if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
			return err
		}
	}
	fmt.Printf("Initialized model directory %s\n", dir)
	return nil
}
