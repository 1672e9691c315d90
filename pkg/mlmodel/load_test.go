package mlmodel

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDir(t *testing.T) {
	model, err := LoadDir("testdata/forecaster")
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if filepath.Base(model.ModelFile) != "model.pkl" {
		t.Errorf("ModelFile = %s, want model.pkl", model.ModelFile)
	}
	if !filepath.IsAbs(model.ModelFile) {
		t.Errorf("ModelFile = %s, want absolute", model.ModelFile)
	}

	envs := map[string]bool{}
	for _, file := range model.EnvironmentFiles {
		envs[filepath.Base(file)] = true
	}
	for _, want := range []string{CondaEnvFileName, PythonEnvFileName, RequirementsFileName} {
		if !envs[want] {
			t.Errorf("EnvironmentFiles = %v, want %s included", model.EnvironmentFiles, want)
		}
	}
	if len(model.EnvironmentFiles) != 3 {
		t.Errorf("EnvironmentFiles = %v, want 3 entries", model.EnvironmentFiles)
	}
}

func TestLoadDirMissingModelFile(t *testing.T) {
	_, err := LoadDir("testdata/missing-model")
	if err == nil {
		t.Fatal("LoadDir() expected error for missing model file")
	}
	if !strings.Contains(err.Error(), "model.pkl") {
		t.Errorf("LoadDir() error = %v, want model file mentioned", err)
	}
}

func TestLoadDirNoDescriptor(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	if err == nil {
		t.Fatal("LoadDir() expected error for missing MLmodel")
	}
}

func TestReadCondaEnv(t *testing.T) {
	env, err := ReadCondaEnv("testdata/forecaster/conda.yaml")
	if err != nil {
		t.Fatalf("ReadCondaEnv() error = %v", err)
	}
	if env.Name != "mlflow-env" {
		t.Errorf("Name = %s, want mlflow-env", env.Name)
	}
	if len(env.Dependencies) == 0 {
		t.Error("Dependencies empty")
	}
}

func TestReadPythonEnv(t *testing.T) {
	env, err := ReadPythonEnv("testdata/forecaster/python_env.yaml")
	if err != nil {
		t.Fatalf("ReadPythonEnv() error = %v", err)
	}
	if env.Python != "3.10.9" {
		t.Errorf("Python = %s, want 3.10.9", env.Python)
	}
}
