package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"kubegems.io/modelpack/pkg/mlmodel"
	"kubegems.io/modelpack/pkg/types"
)

// PullModelFiles pulls only the blobs the model descriptor actually
// references: the serialized model and its environment files. Extra
// artifacts like input examples or evaluation reports stay remote.
// Initializers use this to keep serving images small.
func (c *Client) PullModelFiles(ctx context.Context, repo string, version string, into string) error {
	if err := os.MkdirAll(into, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %v", into, err)
	}

	manifest, err := c.GetManifest(ctx, repo, version)
	if err != nil {
		return err
	}

	// the descriptor itself always comes first
	body, _, err := c.Remote.GetBlob(ctx, repo, manifest.Config.Digest)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return err
	}
	descriptor, err := mlmodel.Parse(raw)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(into, manifest.Config.Name), raw, 0o644); err != nil {
		return err
	}

	needed := neededFiles(descriptor)
	blobs := []types.Descriptor{}
	for _, blob := range manifest.Blobs {
		if slices.Contains(needed, blob.Name) {
			blobs = append(blobs, blob)
		}
	}
	return c.PullBlobs(ctx, repo, into, blobs)
}

// neededFiles lists the top level manifest entries the descriptor's
// flavors and environments refer to.
func neededFiles(descriptor *mlmodel.ModelDescriptor) []string {
	files := []string{}
	add := func(name string) {
		if name == "" {
			return
		}
		// a reference into a subdirectory needs its directory blob
		if i := strings.IndexByte(name, '/'); i > 0 {
			name = name[:i]
		}
		if !slices.Contains(files, name) {
			files = append(files, name)
		}
	}

	if sklearn, err := descriptor.Sklearn(); err == nil {
		add(sklearn.PickledModel)
		add(sklearn.Code)
	}
	if pyfunc, err := descriptor.PythonFunction(); err == nil {
		add(pyfunc.ModelPath)
		for _, env := range pyfunc.Env.Files() {
			add(env)
		}
	}
	for _, name := range []string{
		mlmodel.CondaEnvFileName,
		mlmodel.PythonEnvFileName,
		mlmodel.RequirementsFileName,
	} {
		add(name)
	}
	return files
}
