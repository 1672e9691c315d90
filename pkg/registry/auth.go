package registry

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"kubegems.io/modelpack/pkg/errors"
)

// NewOIDCAuthFilter rejects requests without a bearer token that the
// issuer's keys verify. The health endpoint stays open for probes.
func NewOIDCAuthFilter(ctx context.Context, issuer string, next http.Handler) (http.Handler, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	verifier := provider.Verifier(&oidc.Config{SkipClientIDCheck: true})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			ResponseError(w, errors.NewUnauthorizedError("missing bearer token"))
			return
		}
		if _, err := verifier.Verify(r.Context(), token); err != nil {
			ResponseError(w, errors.NewUnauthorizedError(err.Error()))
			return
		}
		next.ServeHTTP(w, r)
	}), nil
}
