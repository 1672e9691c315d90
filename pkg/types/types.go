package types

import (
	"io/fs"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

const (
	MediaTypeModelIndexJson      = "application/vnd.modelpack.model.index.v1.json"
	MediaTypeModelManifestJson   = "application/vnd.modelpack.model.manifest.v1.json"
	MediaTypeModelConfigYaml     = "application/vnd.modelpack.model.config.v1.yaml"
	MediaTypeModelFile           = "application/vnd.modelpack.model.file.v1"
	MediaTypeModelDirectoryTarGz = "application/vnd.modelpack.model.directory.v1.tar+gz"
)

const (
	AnnotationDescription = "modelpack.model.description"
	AnnotationFramework   = "modelpack.model.framework"
	AnnotationModelUUID   = "modelpack.model.uuid"
	AnnotationRunID       = "modelpack.model.runid"
)

const RegistryIndexFileName = "index.json"

type Descriptor struct {
	Name        string            `json:"name"`
	MediaType   string            `json:"mediaType,omitempty"`
	Digest      digest.Digest     `json:"digest,omitempty"`
	Size        int64             `json:"size,omitempty"`
	Mode        fs.FileMode       `json:"mode,omitempty"`
	URLs        []string          `json:"urls,omitempty"`
	Modified    time.Time         `json:"modified,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

func SortDescriptorName(a, b Descriptor) bool {
	return strings.Compare(a.Name, b.Name) < 0
}

type Index struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType,omitempty"`
	Manifests     []Descriptor      `json:"manifests"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}

// Manifest lists the content of one model package version. Config is
// the MLmodel descriptor blob, Blobs are the serialized model and its
// environment files.
type Manifest struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType,omitempty"`
	Config        Descriptor        `json:"config"`
	Blobs         []Descriptor      `json:"blobs"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}
