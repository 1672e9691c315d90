package client

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"kubegems.io/modelpack/pkg/mlmodel"
	"kubegems.io/modelpack/pkg/types"
)

// PackManifest builds the manifest skeleton for a model directory. The
// MLmodel descriptor is parsed and validated before anything else, a
// directory without a valid descriptor is not packable. Digests and
// sizes are filled in at push time.
func PackManifest(ctx context.Context, dir string) (types.Manifest, *mlmodel.ModelDescriptor, error) {
	raw, err := os.ReadFile(filepath.Join(dir, mlmodel.DescriptorFileName))
	if err != nil {
		return types.Manifest{}, nil, err
	}
	descriptor, err := mlmodel.Parse(raw)
	if err != nil {
		return types.Manifest{}, nil, err
	}

	manifest := types.Manifest{
		SchemaVersion: 1,
		MediaType:     types.MediaTypeModelManifestJson,
		Annotations:   DescriptorAnnotations(descriptor),
	}

	ds, err := os.ReadDir(dir)
	if err != nil {
		return types.Manifest{}, nil, err
	}
	for _, entry := range ds {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.Name() == mlmodel.DescriptorFileName {
			manifest.Config = types.Descriptor{
				Name:      entry.Name(),
				MediaType: types.MediaTypeModelConfigYaml,
			}
			continue
		}
		if entry.IsDir() {
			manifest.Blobs = append(manifest.Blobs, types.Descriptor{
				Name:      entry.Name(),
				MediaType: types.MediaTypeModelDirectoryTarGz,
			})
			continue
		}
		manifest.Blobs = append(manifest.Blobs, types.Descriptor{
			Name:      entry.Name(),
			MediaType: types.MediaTypeModelFile,
		})
	}
	slices.SortFunc(manifest.Blobs, types.SortDescriptorName)
	return manifest, descriptor, nil
}

// DescriptorAnnotations derives manifest annotations from a model
// descriptor so registries can list models without fetching configs.
func DescriptorAnnotations(descriptor *mlmodel.ModelDescriptor) map[string]string {
	annotations := map[string]string{}
	if descriptor.ModelUUID != "" {
		annotations[types.AnnotationModelUUID] = descriptor.ModelUUID
	}
	if descriptor.RunID != "" {
		annotations[types.AnnotationRunID] = descriptor.RunID
	}
	if framework := descriptor.Framework(); framework != "" {
		annotations[types.AnnotationFramework] = framework
	}
	if len(annotations) == 0 {
		return nil
	}
	return annotations
}
