package mlmodel

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
)

// Model is a loaded model directory: the validated descriptor plus
// resolved references to the files it points at.
type Model struct {
	// Dir is the model directory the descriptor was loaded from.
	Dir string
	// Descriptor is the parsed MLmodel document.
	Descriptor *ModelDescriptor
	// ModelFile is the absolute path of the serialized predictor.
	ModelFile string
	// EnvironmentFiles are the environment descriptors present next to
	// the model, absolute paths. Their content stays opaque here.
	EnvironmentFiles []string
}

// LoadDir loads <dir>/MLmodel.
func LoadDir(dir string) (*Model, error) {
	return Load(filepath.Join(dir, DescriptorFileName))
}

// Load parses and validates the descriptor at file and resolves the
// serialized model file and environment descriptors relative to it.
func Load(file string) (*Model, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read model descriptor: %w", err)
	}
	descriptor, err := Parse(content)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return nil, err
	}
	modelfile, err := resolveModelFile(dir, descriptor)
	if err != nil {
		return nil, err
	}
	return &Model{
		Dir:              dir,
		Descriptor:       descriptor,
		ModelFile:        modelfile,
		EnvironmentFiles: resolveEnvironmentFiles(dir, descriptor),
	}, nil
}

// resolveModelFile picks the model file the flavors reference. The
// sklearn flavor wins over the generic python_function one: both name
// the same file in practice and sklearn is the more specific loader.
func resolveModelFile(dir string, descriptor *ModelDescriptor) (string, error) {
	relpath := ""
	if descriptor.Flavors.Has(FlavorSklearn) {
		flavor, err := descriptor.Sklearn()
		if err != nil {
			return "", err
		}
		relpath = flavor.PickledModel
	} else if descriptor.Flavors.Has(FlavorPythonFunction) {
		flavor, err := descriptor.PythonFunction()
		if err != nil {
			return "", err
		}
		relpath = flavor.ModelPath
	}
	if relpath == "" {
		return "", newInvalidError("flavors", "no flavor references a serialized model file")
	}

	modelfile := filepath.Join(dir, relpath)
	if _, err := os.Stat(modelfile); err != nil {
		return "", fmt.Errorf("resolve model file %s: %w", relpath, err)
	}
	return modelfile, nil
}

func resolveEnvironmentFiles(dir string, descriptor *ModelDescriptor) []string {
	candidates := []string{CondaEnvFileName, PythonEnvFileName, RequirementsFileName}
	if descriptor.Flavors.Has(FlavorPythonFunction) {
		if flavor, err := descriptor.PythonFunction(); err == nil {
			candidates = append(candidates, flavor.Env.Files()...)
		}
	}

	files := []string{}
	for _, name := range candidates {
		file := filepath.Join(dir, name)
		if slices.Contains(files, file) {
			continue
		}
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	return files
}
