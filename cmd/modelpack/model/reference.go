package model

import (
	"fmt"
	"os"
	"strings"

	"kubegems.io/modelpack/cmd/modelpack/repo"
	"kubegems.io/modelpack/pkg/client"
)

// AuthorizationEnv overrides the stored token for a reference.
const AuthorizationEnv = "MODELPACK_AUTH"

// Reference is a cmd level reference: the parsed remote location plus
// the authorization resolved for it.
type Reference struct {
	client.Reference
	Authorization string
}

func (r Reference) Client() *client.Client {
	return r.Reference.Client(r.Authorization)
}

// ParseReference understands both full references like
// https://registry.example.com/repo/name@v1 and alias references like
// myrepo/name@v1 where myrepo is resolved via ~/.modelpack/repos.json.
// Bare model names get the library/ prefix.
func ParseReference(raw string) (Reference, error) {
	auth := os.Getenv(AuthorizationEnv)
	if auth != "" && !strings.HasPrefix(auth, "Bearer ") {
		auth = "Bearer " + auth
	}

	if !strings.Contains(raw, "://") {
		name, rest := raw, ""
		if idx := strings.Index(raw, repo.SplitorRepo); idx != -1 {
			name, rest = raw[:idx], raw[idx+1:]
		}
		details, err := repo.DefaultRepoManager.Get(name)
		if err != nil {
			return Reference{}, err
		}
		if auth == "" && details.Token != "" {
			auth = "Bearer " + details.Token
		}
		raw = strings.TrimSuffix(details.URL, "/") + "/" + rest
	}

	ref, err := client.ParseReference(raw)
	if err != nil {
		return Reference{}, err
	}
	if ref.Repository != "" && !strings.Contains(ref.Repository, "/") {
		ref.Repository = "library/" + ref.Repository
	}
	return Reference{Reference: ref, Authorization: auth}, nil
}

// ParseVersionedReference is ParseReference plus the requirement that
// the reference names a concrete repository.
func ParseVersionedReference(raw string) (Reference, error) {
	ref, err := ParseReference(raw)
	if err != nil {
		return Reference{}, err
	}
	if ref.Repository == "" {
		return Reference{}, fmt.Errorf("reference %s: missing repository", raw)
	}
	if ref.Version == "" {
		ref.Version = "latest"
	}
	return ref, nil
}
