package registry

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestLocalFSProviderPutGet(t *testing.T) {
	ctx := context.Background()
	fs, err := NewLocalFSProvider(&LocalFSOptions{Basepath: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	content := []byte("hello blob")
	put := BlobContent{
		Content:       io.NopCloser(bytes.NewReader(content)),
		ContentLength: int64(len(content)),
		ContentType:   "application/octet-stream",
	}
	if err := fs.Put(ctx, "demo/forecaster/blobs/sha256/abc", put); err != nil {
		t.Fatal(err)
	}

	exists, err := fs.Exists(ctx, "demo/forecaster/blobs/sha256/abc")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("blob should exist after put")
	}

	got, err := fs.Get(ctx, "demo/forecaster/blobs/sha256/abc")
	if err != nil {
		t.Fatal(err)
	}
	defer got.Close()
	if got.ContentType != "application/octet-stream" {
		t.Errorf("ContentType = %s", got.ContentType)
	}
	if got.ContentLength != int64(len(content)) {
		t.Errorf("ContentLength = %d, want %d", got.ContentLength, len(content))
	}
	data, err := io.ReadAll(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("content = %q, want %q", data, content)
	}
}

func TestLocalFSProviderList(t *testing.T) {
	ctx := context.Background()
	fs, err := NewLocalFSProvider(&LocalFSOptions{Basepath: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"demo/forecaster/manifests/v1", "demo/forecaster/manifests/v2", "demo/forecaster/blobs/sha256/x"} {
		content := BlobContent{
			Content:       io.NopCloser(bytes.NewReader([]byte("x"))),
			ContentLength: 1,
			ContentType:   "text/plain",
		}
		if err := fs.Put(ctx, path, content); err != nil {
			t.Fatal(err)
		}
	}

	// flat listing excludes .meta sidecars and directories
	metas, err := fs.List(ctx, "demo/forecaster/manifests", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 {
		t.Fatalf("List() = %v, want 2 entries", metas)
	}

	metas, err = fs.List(ctx, "demo/forecaster", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 3 {
		t.Fatalf("recursive List() = %v, want 3 entries", metas)
	}

	// listing a missing directory is not an error
	metas, err = fs.List(ctx, "demo/other", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 0 {
		t.Errorf("List() of missing dir = %v, want empty", metas)
	}
}

func TestLocalFSProviderRemove(t *testing.T) {
	ctx := context.Background()
	fs, err := NewLocalFSProvider(&LocalFSOptions{Basepath: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	content := BlobContent{
		Content:       io.NopCloser(bytes.NewReader([]byte("x"))),
		ContentLength: 1,
		ContentType:   "text/plain",
	}
	if err := fs.Put(ctx, "demo/forecaster/manifests/v1", content); err != nil {
		t.Fatal(err)
	}
	if err := fs.Remove(ctx, "demo/forecaster/manifests/v1", false); err != nil {
		t.Fatal(err)
	}
	exists, err := fs.Exists(ctx, "demo/forecaster/manifests/v1")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("manifest should be gone after remove")
	}
}
