package client

import (
	"context"
	"reflect"
	"testing"

	"kubegems.io/modelpack/pkg/types"
)

func TestPackManifest(t *testing.T) {
	manifest, descriptor, err := PackManifest(context.Background(), "testdata/forecaster")
	if err != nil {
		t.Fatalf("PackManifest() error = %v", err)
	}

	if manifest.Config.Name != "MLmodel" {
		t.Errorf("Config.Name = %s, want MLmodel", manifest.Config.Name)
	}
	if manifest.Config.MediaType != types.MediaTypeModelConfigYaml {
		t.Errorf("Config.MediaType = %s", manifest.Config.MediaType)
	}

	wantBlobs := map[string]string{
		"artifacts":          types.MediaTypeModelDirectoryTarGz,
		"conda.yaml":         types.MediaTypeModelFile,
		"input_example.json": types.MediaTypeModelFile,
		"model.pkl":          types.MediaTypeModelFile,
		"python_env.yaml":    types.MediaTypeModelFile,
		"requirements.txt":   types.MediaTypeModelFile,
	}
	if len(manifest.Blobs) != len(wantBlobs) {
		t.Fatalf("Blobs = %v, want %d entries", manifest.Blobs, len(wantBlobs))
	}
	for _, blob := range manifest.Blobs {
		if want, ok := wantBlobs[blob.Name]; !ok || blob.MediaType != want {
			t.Errorf("blob %s mediatype = %s, want %s", blob.Name, blob.MediaType, want)
		}
	}
	// blobs sorted by name
	for i := 1; i < len(manifest.Blobs); i++ {
		if manifest.Blobs[i-1].Name > manifest.Blobs[i].Name {
			t.Errorf("blobs not sorted: %s before %s", manifest.Blobs[i-1].Name, manifest.Blobs[i].Name)
		}
	}

	wantAnnotations := map[string]string{
		types.AnnotationModelUUID: "9f1c70b4f2a24c4c9d4bbbdc16df5a2f",
		types.AnnotationRunID:     "c9867203d9f643b6a5a4c9e2c4f7d9a1",
		types.AnnotationFramework: "sklearn",
	}
	if !reflect.DeepEqual(manifest.Annotations, wantAnnotations) {
		t.Errorf("Annotations = %v, want %v", manifest.Annotations, wantAnnotations)
	}

	if descriptor.ModelUUID != "9f1c70b4f2a24c4c9d4bbbdc16df5a2f" {
		t.Errorf("descriptor uuid = %s", descriptor.ModelUUID)
	}
}

func TestPackManifestNoDescriptor(t *testing.T) {
	if _, _, err := PackManifest(context.Background(), t.TempDir()); err == nil {
		t.Fatal("PackManifest() expected error without MLmodel")
	}
}

func TestNeededFiles(t *testing.T) {
	_, descriptor, err := PackManifest(context.Background(), "testdata/forecaster")
	if err != nil {
		t.Fatal(err)
	}

	needed := neededFiles(descriptor)
	for _, want := range []string{"model.pkl", "conda.yaml", "python_env.yaml", "requirements.txt"} {
		found := false
		for _, name := range needed {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("neededFiles() = %v, want %s included", needed, want)
		}
	}
	for _, name := range needed {
		if name == "input_example.json" || name == "artifacts" {
			t.Errorf("neededFiles() = %v, %s should stay remote", needed, name)
		}
	}
}
