package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	"github.com/syndtr/goleveldb/leveldb"
	"kubegems.io/modelpack/pkg/mlmodel"
	"kubegems.io/modelpack/pkg/types"
)

// DescriptorSummary is the cached digest-addressed view of a validated
// model descriptor. Summaries are immutable once written, the config
// blob they describe is content addressed.
type DescriptorSummary struct {
	Framework     string   `json:"framework,omitempty"`
	ModelUUID     string   `json:"modelUUID,omitempty"`
	RunID         string   `json:"runID,omitempty"`
	MLflowVersion string   `json:"mlflowVersion,omitempty"`
	InputColumns  []string `json:"inputColumns,omitempty"`
	OutputColumns []string `json:"outputColumns,omitempty"`
	Created       string   `json:"created,omitempty"`
}

func SummarizeDescriptor(descriptor *mlmodel.ModelDescriptor) DescriptorSummary {
	summary := DescriptorSummary{
		Framework:     descriptor.Framework(),
		ModelUUID:     descriptor.ModelUUID,
		RunID:         descriptor.RunID,
		MLflowVersion: descriptor.MLflowVersion,
		Created:       descriptor.UTCTimeCreated,
	}
	if descriptor.Signature != nil {
		summary.InputColumns = descriptor.Signature.Inputs.Names()
		summary.OutputColumns = descriptor.Signature.Outputs.Names()
	}
	return summary
}

func (s DescriptorSummary) Annotations() map[string]string {
	annotations := map[string]string{}
	if s.Framework != "" {
		annotations[types.AnnotationFramework] = s.Framework
	}
	if s.ModelUUID != "" {
		annotations[types.AnnotationModelUUID] = s.ModelUUID
	}
	if s.RunID != "" {
		annotations[types.AnnotationRunID] = s.RunID
	}
	if len(annotations) == 0 {
		return nil
	}
	return annotations
}

type DescriptorCache struct {
	db *leveldb.DB
}

func NewDescriptorCache(path string) (*DescriptorCache, error) {
	if path == "" {
		return nil, fmt.Errorf("descriptor cache path not set")
	}
	if basepath := filepath.Dir(path); basepath != "" {
		os.MkdirAll(basepath, os.ModePerm)
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &DescriptorCache{db: db}, nil
}

// Get returns the cached summary for a config digest, or nil when the
// digest has not been seen.
func (c *DescriptorCache) Get(dgst digest.Digest) (*DescriptorSummary, error) {
	val, err := c.db.Get([]byte(dgst.String()), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	summary := &DescriptorSummary{}
	if err := json.Unmarshal(val, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *DescriptorCache) Set(dgst digest.Digest, summary DescriptorSummary) error {
	val, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.db.Put([]byte(dgst.String()), val, nil)
}

func (c *DescriptorCache) Close() error {
	return c.db.Close()
}
