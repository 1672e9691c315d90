package client

import (
	"context"
	"net/http"

	"kubegems.io/modelpack/pkg/types"
)

type Client struct {
	Remote *RegistryClient
}

func NewClient(registry string, auth string) *Client {
	return &Client{
		Remote: &RegistryClient{
			// redirects carry presigned locations, the transport must
			// surface them instead of following with a rewritten method
			Client: &http.Client{
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				},
			},
			Addr:          registry,
			Authorization: auth,
		},
	}
}

func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Remote.GetGlobalIndex(ctx, ""); err != nil {
		return err
	}
	return nil
}

func (c *Client) GetManifest(ctx context.Context, repo, version string) (*types.Manifest, error) {
	return c.Remote.GetManifest(ctx, repo, version)
}

func (c *Client) PutManifest(ctx context.Context, repo, version string, manifest types.Manifest) error {
	return c.Remote.PutManifest(ctx, repo, version, manifest)
}

func (c *Client) GetIndex(ctx context.Context, repo string, search string) (*types.Index, error) {
	return c.Remote.GetIndex(ctx, repo, search)
}

func (c *Client) GetGlobalIndex(ctx context.Context, search string) (*types.Index, error) {
	return c.Remote.GetGlobalIndex(ctx, search)
}
