package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/opencontainers/go-digest"
	"kubegems.io/modelpack/pkg/errors"
	"kubegems.io/modelpack/pkg/types"
)

type Registry struct {
	Store RegistryStore
}

func (s *Registry) GetGlobalIndex(w http.ResponseWriter, r *http.Request) {
	index, err := s.Store.GetGlobalIndex(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		if IsRegistryStoreNotFound(err) {
			ResponseOK(w, types.Index{})
			return
		}
		ResponseError(w, err)
		return
	}
	ResponseOK(w, index)
}

func (s *Registry) GetIndex(w http.ResponseWriter, r *http.Request) {
	name, _ := GetRepositoryReference(r)
	index, err := s.Store.GetIndex(r.Context(), name, r.URL.Query().Get("search"))
	if err != nil {
		if IsRegistryStoreNotFound(err) {
			err = errors.NewIndexUnknownError(name)
		}
		ResponseError(w, err)
		return
	}
	ResponseOK(w, index)
}

func (s *Registry) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	name, _ := GetRepositoryReference(r)
	if err := s.Store.RemoveIndex(r.Context(), name); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Registry) HeadManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	exist, err := s.Store.ExistsManifest(r.Context(), name, reference)
	if err != nil {
		ResponseError(w, err)
		return
	}
	if exist {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Registry) GetManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	manifest, err := s.Store.GetManifest(r.Context(), name, reference)
	if err != nil {
		ResponseError(w, err)
		return
	}
	ResponseOK(w, manifest)
}

func (s *Registry) PutManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	var manifest types.Manifest
	if err := json.NewDecoder(r.Body).Decode(&manifest); err != nil {
		ResponseError(w, errors.NewManifestInvalidError(err))
		return
	}
	contenttype := r.Header.Get("Content-Type")
	if err := s.Store.PutManifest(r.Context(), name, reference, contenttype, manifest); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Registry) DeleteManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	if err := s.Store.DeleteManifest(r.Context(), name, reference); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Registry) HeadBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		ok, err := s.Store.ExistsBlob(ctx, repository, digest)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if ok {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (s *Registry) GetBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		response, err := s.Store.GetBlob(ctx, repository, digest)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if response.RedirectLocation != "" {
			w.Header().Add("Location", response.RedirectLocation)
			w.WriteHeader(http.StatusFound)
			return
		}
		content := response.Content
		defer content.Close()
		w.Header().Set("Content-Length", strconv.FormatInt(content.ContentLength, 10))
		w.Header().Set("Content-Type", content.ContentType)
		w.WriteHeader(http.StatusOK)
		io.Copy(w, content)
	})
}

func (s *Registry) PutBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			ResponseError(w, errors.NewContentTypeInvalidError("empty"))
			return
		}
		content := BlobContent{
			Content:       r.Body,
			ContentLength: r.ContentLength,
			ContentType:   contentType,
		}
		response, err := s.Store.PutBlob(ctx, repository, digest, content)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if response.RedirectLocation != "" {
			w.Header().Add("Location", response.RedirectLocation)
			w.WriteHeader(http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}

func BlobDigestFun(w http.ResponseWriter, r *http.Request, fun func(ctx context.Context, repository string, digest digest.Digest)) {
	name, _ := GetRepositoryReference(r)
	digeststr := mux.Vars(r)["digest"]
	digest, err := digest.Parse(digeststr)
	if err != nil {
		ResponseError(w, errors.NewDigestInvalidError(digeststr))
		return
	}
	fun(r.Context(), name, digest)
}

func GetRepositoryReference(r *http.Request) (string, string) {
	vars := mux.Vars(r)
	return vars["name"], vars["reference"]
}
