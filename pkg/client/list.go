package client

import (
	"context"
	"errors"

	"github.com/docker/go-units"
	"kubegems.io/modelpack/pkg/types"
)

type ShowList struct {
	Header []any
	Items  [][]any
}

func List(ctx context.Context, ref string, search string, auth string) (*ShowList, error) {
	reference, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	switch {
	case reference.Repository == "" && reference.Version == "":
		return ListRepositories(ctx, reference, search, auth)
	case reference.Repository != "" && reference.Version != "":
		return ListFiles(ctx, reference, auth)
	case reference.Repository != "" && reference.Version == "":
		return ListVersions(ctx, reference, search, auth)
	default:
		return nil, errors.New("invalid reference")
	}
}

func ListVersions(ctx context.Context, reference Reference, search string, auth string) (*ShowList, error) {
	index, err := reference.Client(auth).GetIndex(ctx, reference.Repository, search)
	if err != nil {
		return nil, err
	}

	show := &ShowList{
		Header: []any{"Version", "URL", "Framework", "Size"},
		Items:  make([][]any, len(index.Manifests)),
	}
	for i, manifest := range index.Manifests {
		ref := Reference{Registry: reference.Registry, Repository: reference.Repository, Version: manifest.Name}
		show.Items[i] = []any{
			manifest.Name,
			ref.String(),
			manifest.Annotations[types.AnnotationFramework],
			units.HumanSize(float64(manifest.Size)),
		}
	}
	return show, nil
}

func ListRepositories(ctx context.Context, reference Reference, search string, auth string) (*ShowList, error) {
	index, err := reference.Client(auth).GetGlobalIndex(ctx, search)
	if err != nil {
		return nil, err
	}

	show := &ShowList{
		Header: []any{"Repository", "URL", "Framework"},
		Items:  make([][]any, len(index.Manifests)),
	}
	for i, repo := range index.Manifests {
		ref := Reference{Registry: reference.Registry, Repository: repo.Name}
		show.Items[i] = []any{repo.Name, ref.String(), repo.Annotations[types.AnnotationFramework]}
	}
	return show, nil
}

func ListFiles(ctx context.Context, reference Reference, auth string) (*ShowList, error) {
	manifest, err := reference.Client(auth).GetManifest(ctx, reference.Repository, reference.Version)
	if err != nil {
		return nil, err
	}

	blobs := append([]types.Descriptor{manifest.Config}, manifest.Blobs...)
	show := &ShowList{
		Header: []any{"Name", "Type", "Digest", "Size"},
		Items:  make([][]any, len(blobs)),
	}
	for i, blob := range blobs {
		show.Items[i] = []any{blob.Name, blob.MediaType, blob.Digest.String(), units.HumanSize(float64(blob.Size))}
	}
	return show, nil
}
