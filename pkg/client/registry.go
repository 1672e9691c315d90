package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"github.com/opencontainers/go-digest"
	"kubegems.io/modelpack/pkg/errors"
	"kubegems.io/modelpack/pkg/types"
)

type RegistryClient struct {
	Client        *http.Client
	Addr          string
	Authorization string
}

// RequestBody carries an upload payload. ContentBody returns a fresh
// reader on every call so a request can be retried or redirected.
type RequestBody struct {
	ContentLength int64
	ContentBody   func() (io.ReadCloser, error)
}

func (t *RegistryClient) UploadBlob(ctx context.Context, repository string, desc types.Descriptor, body RequestBody) error {
	header := map[string]string{
		"Content-Type": desc.MediaType,
	}
	path := "/" + repository + "/blobs/" + desc.Digest.String()
	resp, err := t.request(ctx, "PUT", path, header, body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusFound {
		return t.uploadTo(ctx, resp.Header.Get("Location"), body)
	}
	return nil
}

// uploadTo uploads to a presigned location outside the registry. The
// registry's authorization header must not leak there.
func (t *RegistryClient) uploadTo(ctx context.Context, location string, body RequestBody) error {
	content, err := body.ContentBody()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "PUT", location, content)
	if err != nil {
		content.Close()
		return err
	}
	req.ContentLength = body.ContentLength
	resp, err := t.httpclient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return errors.NewInternalError(fmt.Errorf("upload to %s: %s", location, msg))
	}
	return nil
}

func (t *RegistryClient) GetBlob(ctx context.Context, repository string, digest digest.Digest) (io.ReadCloser, int64, error) {
	path := "/" + repository + "/blobs/" + digest.String()
	resp, err := t.request(ctx, "GET", path, nil, nil, nil)
	if err != nil {
		return nil, -1, err
	}
	if resp.StatusCode == http.StatusFound {
		location := resp.Header.Get("Location")
		resp.Body.Close()
		return t.downloadFrom(ctx, location)
	}
	return resp.Body, resp.ContentLength, nil
}

// downloadFrom fetches a presigned location outside the registry. The
// registry's authorization header must not leak there.
func (t *RegistryClient) downloadFrom(ctx context.Context, location string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", location, nil)
	if err != nil {
		return nil, -1, err
	}
	resp, err := t.httpclient().Do(req)
	if err != nil {
		return nil, -1, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, -1, errors.NewInternalError(fmt.Errorf("download from %s: %s", location, msg))
	}
	return resp.Body, resp.ContentLength, nil
}

func (t *RegistryClient) HeadBlob(ctx context.Context, repository string, digest digest.Digest) (bool, error) {
	path := "/" + repository + "/blobs/" + digest.String()
	resp, err := t.request(ctx, "HEAD", path, nil, nil, nil)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (t *RegistryClient) GetManifest(ctx context.Context, repository string, version string) (*types.Manifest, error) {
	if version == "" {
		version = "latest"
	}
	manifest := &types.Manifest{}
	path := "/" + repository + "/manifests/" + version
	if err := t.retried(ctx, "GET", path, nil, nil, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (t *RegistryClient) PutManifest(ctx context.Context, repository string, version string, manifest types.Manifest) error {
	if version == "" {
		version = "latest"
	}
	header := map[string]string{
		"Content-Type": types.MediaTypeModelManifestJson,
	}
	path := "/" + repository + "/manifests/" + version
	resp, err := t.request(ctx, "PUT", path, header, manifest, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (t *RegistryClient) DeleteManifest(ctx context.Context, repository string, version string) error {
	path := "/" + repository + "/manifests/" + version
	resp, err := t.request(ctx, "DELETE", path, nil, nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (t *RegistryClient) GetIndex(ctx context.Context, repository string, search string) (*types.Index, error) {
	index := &types.Index{}
	path := "/" + repository + "/index" + "?" + url.Values{"search": {search}}.Encode()
	if err := t.retried(ctx, "GET", path, nil, nil, index); err != nil {
		return nil, err
	}
	return index, nil
}

func (t *RegistryClient) GetGlobalIndex(ctx context.Context, search string) (*types.Index, error) {
	index := &types.Index{}
	path := "/" + "?" + url.Values{"search": {search}}.Encode()
	if err := t.retried(ctx, "GET", path, nil, nil, index); err != nil {
		return nil, err
	}
	return index, nil
}

// retried wraps request for idempotent calls. Remote errors with a
// 4xx status are not retried, those are not transient.
func (t *RegistryClient) retried(ctx context.Context, method, path string, header map[string]string, body any, into any) error {
	return retry.Do(func() error {
		resp, err := t.request(ctx, method, path, header, body, into)
		if resp != nil {
			resp.Body.Close()
		}
		return err
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			info := errors.ErrorInfo{}
			if stderrors.As(err, &info) {
				return info.HttpStatus >= 500
			}
			return true
		}),
	)
}

func (t *RegistryClient) request(ctx context.Context, method, path string, header map[string]string, body any, into any) (*http.Response, error) {
	addr := t.Addr + path

	var reqbody io.Reader
	contentlength := int64(0)
	switch val := body.(type) {
	case RequestBody:
		rc, err := val.ContentBody()
		if err != nil {
			return nil, err
		}
		reqbody, contentlength = rc, val.ContentLength
	case io.Reader:
		reqbody = val
	case nil:
		reqbody = nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		reqbody, contentlength = bytes.NewReader(b), int64(len(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, addr, reqbody)
	if err != nil {
		return nil, err
	}
	req.ContentLength = contentlength
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if t.Authorization != "" {
		req.Header.Set("Authorization", t.Authorization)
	}
	resp, err := t.httpclient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 && req.Method != "HEAD" {
		defer resp.Body.Close()
		var apierr errors.ErrorInfo
		if resp.Header.Get("Content-Type") == "application/json" {
			if err := json.NewDecoder(resp.Body).Decode(&apierr); err != nil {
				return nil, err
			}
		} else {
			bodystr, _ := io.ReadAll(resp.Body)
			apierr.Message = string(bodystr)
		}
		apierr.HttpStatus = resp.StatusCode
		return nil, apierr
	}
	if into != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (t *RegistryClient) httpclient() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
