package client

import (
	"context"
	"io"

	"kubegems.io/modelpack/pkg/mlmodel"
	"kubegems.io/modelpack/pkg/types"
)

func GetManifest(ctx context.Context, reference Reference, auth string) (*types.Manifest, error) {
	return reference.Client(auth).GetManifest(ctx, reference.Repository, reference.Version)
}

func GetIndex(ctx context.Context, reference Reference, search string, auth string) (*types.Index, error) {
	c := reference.Client(auth)
	if reference.Repository == "" {
		return c.GetGlobalIndex(ctx, search)
	}
	return c.GetIndex(ctx, reference.Repository, search)
}

// GetConfig fetches and parses the model descriptor of a published
// version. The raw document is returned alongside so callers can show
// it verbatim.
func GetConfig(ctx context.Context, reference Reference, auth string) (*mlmodel.ModelDescriptor, []byte, error) {
	c := reference.Client(auth)
	manifest, err := c.GetManifest(ctx, reference.Repository, reference.Version)
	if err != nil {
		return nil, nil, err
	}
	body, _, err := c.Remote.GetBlob(ctx, reference.Repository, manifest.Config.Digest)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, err
	}
	descriptor, err := mlmodel.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return descriptor, raw, nil
}
