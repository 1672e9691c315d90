package mlmodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	CondaEnvFileName     = "conda.yaml"
	PythonEnvFileName    = "python_env.yaml"
	RequirementsFileName = "requirements.txt"
)

// CondaEnv is the part of a conda environment file worth showing to a
// human. Dependencies stay loosely typed, conda mixes strings and
// nested pip maps in the same list.
type CondaEnv struct {
	Name         string   `yaml:"name,omitempty"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []any    `yaml:"dependencies,omitempty"`
}

func ReadCondaEnv(path string) (*CondaEnv, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env := &CondaEnv{}
	if err := yaml.Unmarshal(content, env); err != nil {
		return nil, fmt.Errorf("parse conda env %s: %w", path, err)
	}
	return env, nil
}

func (e *CondaEnv) Marshal() ([]byte, error) {
	return yaml.Marshal(e)
}

type PythonEnv struct {
	Python            string   `yaml:"python,omitempty"`
	BuildDependencies []string `yaml:"build_dependencies,omitempty"`
	Dependencies      []string `yaml:"dependencies,omitempty"`
}

func ReadPythonEnv(path string) (*PythonEnv, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env := &PythonEnv{}
	if err := yaml.Unmarshal(content, env); err != nil {
		return nil, fmt.Errorf("parse python env %s: %w", path, err)
	}
	return env, nil
}
