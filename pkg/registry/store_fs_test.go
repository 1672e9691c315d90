package registry

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"kubegems.io/modelpack/pkg/errors"
	"kubegems.io/modelpack/pkg/types"
)

const testConfigDocument = `artifact_path: model
flavors:
  python_function:
    env: conda.yaml
    loader_module: mlflow.sklearn
    model_path: model.pkl
    python_version: 3.10.9
  sklearn:
    pickled_model: model.pkl
    serialization_format: cloudpickle
    sklearn_version: 1.1.3
mlflow_version: 2.3.2
model_uuid: 9f1c70b4f2a24c4c9d4bbbdc16df5a2f
run_id: c9867203d9f643b6a5a4c9e2c4f7d9a1
signature:
  inputs: '[{"name": "load", "type": "double"}]'
  outputs: '[{"name": "forecast", "type": "double"}]'
utc_time_created: '2023-05-23 10:14:48.550232'
`

func newTestStore(t *testing.T) *FSRegistryStore {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFSRegistryStore(context.Background(), &Options{
		S3:        NewDefaultS3Options(),
		Local:     &LocalFSOptions{Basepath: filepath.Join(dir, "registry")},
		CachePath: filepath.Join(dir, "cache"),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Cache.Close() })
	return store
}

func putTestBlob(t *testing.T, store *FSRegistryStore, repository string, mediaType string, content []byte) digest.Digest {
	t.Helper()
	dgst := digest.FromBytes(content)
	blob := BlobContent{
		Content:       io.NopCloser(bytes.NewReader(content)),
		ContentLength: int64(len(content)),
		ContentType:   mediaType,
	}
	if _, err := store.PutBlob(context.Background(), repository, dgst, blob); err != nil {
		t.Fatal(err)
	}
	return dgst
}

func TestPutBlobConfigValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// a valid descriptor is accepted and summarized
	dgst := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelConfigYaml, []byte(testConfigDocument))
	summary, err := store.Cache.Get(dgst)
	if err != nil {
		t.Fatal(err)
	}
	if summary == nil {
		t.Fatal("summary not cached after config put")
	}
	if summary.Framework != "sklearn" {
		t.Errorf("Framework = %s, want sklearn", summary.Framework)
	}
	if summary.ModelUUID != "9f1c70b4f2a24c4c9d4bbbdc16df5a2f" {
		t.Errorf("ModelUUID = %s", summary.ModelUUID)
	}

	// an invalid descriptor is rejected before storage
	invalid := []byte("flavors: {}\n")
	invalidDigest := digest.FromBytes(invalid)
	_, err = store.PutBlob(ctx, "demo/forecaster", invalidDigest, BlobContent{
		Content:       io.NopCloser(bytes.NewReader(invalid)),
		ContentLength: int64(len(invalid)),
		ContentType:   types.MediaTypeModelConfigYaml,
	})
	if !errors.IsErrCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("PutBlob() error = %v, want CONFIG_INVALID", err)
	}
	exists, err := store.ExistsBlob(ctx, "demo/forecaster", invalidDigest)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("invalid config should not be stored")
	}

	// a digest mismatch is rejected
	_, err = store.PutBlob(ctx, "demo/forecaster", digest.FromString("other"), BlobContent{
		Content:       io.NopCloser(bytes.NewReader([]byte(testConfigDocument))),
		ContentLength: int64(len(testConfigDocument)),
		ContentType:   types.MediaTypeModelConfigYaml,
	})
	if !errors.IsErrCode(err, errors.ErrCodeDigestInvalid) {
		t.Errorf("PutBlob() error = %v, want DIGEST_INVALID", err)
	}
}

func TestManifestLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	configDigest := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelConfigYaml, []byte(testConfigDocument))
	modelDigest := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelFile, []byte("pickled bytes"))

	manifest := types.Manifest{
		SchemaVersion: 1,
		MediaType:     types.MediaTypeModelManifestJson,
		Config: types.Descriptor{
			Name:      "MLmodel",
			MediaType: types.MediaTypeModelConfigYaml,
			Digest:    configDigest,
			Size:      int64(len(testConfigDocument)),
		},
		Blobs: []types.Descriptor{{
			Name:      "model.pkl",
			MediaType: types.MediaTypeModelFile,
			Digest:    modelDigest,
			Size:      13,
		}},
	}
	if err := store.PutManifest(ctx, "demo/forecaster", "v1", types.MediaTypeModelManifestJson, manifest); err != nil {
		t.Fatal(err)
	}

	exists, err := store.ExistsManifest(ctx, "demo/forecaster", "v1")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("manifest should exist after put")
	}

	got, err := store.GetManifest(ctx, "demo/forecaster", "v1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Config.Digest != configDigest {
		t.Errorf("Config.Digest = %s, want %s", got.Config.Digest, configDigest)
	}

	index, err := store.GetIndex(ctx, "demo/forecaster", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(index.Manifests) != 1 {
		t.Fatalf("index manifests = %v, want 1 entry", index.Manifests)
	}
	entry := index.Manifests[0]
	if entry.Name != "v1" {
		t.Errorf("entry name = %s, want v1", entry.Name)
	}
	// annotations come from the cached descriptor summary
	if entry.Annotations[types.AnnotationFramework] != "sklearn" {
		t.Errorf("framework annotation = %q, want sklearn", entry.Annotations[types.AnnotationFramework])
	}
	if entry.Annotations[types.AnnotationModelUUID] != "9f1c70b4f2a24c4c9d4bbbdc16df5a2f" {
		t.Errorf("uuid annotation = %q", entry.Annotations[types.AnnotationModelUUID])
	}

	global, err := store.GetGlobalIndex(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, repo := range global.Manifests {
		if repo.Name == "demo/forecaster" {
			found = true
		}
	}
	if !found {
		t.Errorf("global index = %v, want demo/forecaster listed", global.Manifests)
	}

	// search filter
	filtered, err := store.GetGlobalIndex(ctx, "nomatch")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered.Manifests) != 0 {
		t.Errorf("filtered global index = %v, want empty", filtered.Manifests)
	}

	_, err = store.GetManifest(ctx, "demo/forecaster", "v2")
	if !errors.IsErrCode(err, errors.ErrCodeManifestUnknown) {
		t.Errorf("GetManifest() error = %v, want MANIFEST_UNKNOWN", err)
	}
}

func TestGCBlobs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	configDigest := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelConfigYaml, []byte(testConfigDocument))
	usedDigest := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelFile, []byte("kept"))
	orphanDigest := putTestBlob(t, store, "demo/forecaster", types.MediaTypeModelFile, []byte("orphan"))

	manifest := types.Manifest{
		SchemaVersion: 1,
		Config:        types.Descriptor{Name: "MLmodel", Digest: configDigest},
		Blobs:         []types.Descriptor{{Name: "model.pkl", Digest: usedDigest}},
	}
	if err := store.PutManifest(ctx, "demo/forecaster", "v1", types.MediaTypeModelManifestJson, manifest); err != nil {
		t.Fatal(err)
	}

	removed, err := GCBlobs(ctx, store, "demo/forecaster")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := removed[orphanDigest]; !ok {
		t.Errorf("removed = %v, want %s swept", removed, orphanDigest)
	}
	if _, ok := removed[usedDigest]; ok {
		t.Errorf("referenced blob %s swept", usedDigest)
	}

	exists, err := store.ExistsBlob(ctx, "demo/forecaster", usedDigest)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("referenced blob should survive gc")
	}
	exists, err = store.ExistsBlob(ctx, "demo/forecaster", orphanDigest)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("orphan blob should be gone after gc")
	}
}
