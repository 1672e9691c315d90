package mlmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DescriptorFileName is the file name of the descriptor inside a model
// directory.
const DescriptorFileName = "MLmodel"

// ModelDescriptor is the static metadata of an exported model: how to
// load the serialized predictor, what environment it needs, and the
// schema of its inputs and outputs. It is written once at export time
// and only ever read afterwards.
type ModelDescriptor struct {
	ArtifactPath          string         `json:"artifact_path"`
	DatabricksRuntime     string         `json:"databricks_runtime,omitempty"`
	Flavors               Flavors        `json:"flavors"`
	MLflowVersion         string         `json:"mlflow_version,omitempty"`
	ModelUUID             string         `json:"model_uuid,omitempty"`
	RunID                 string         `json:"run_id,omitempty"`
	Signature             *Signature     `json:"signature,omitempty"`
	SavedInputExampleInfo map[string]any `json:"saved_input_example_info,omitempty"`
	UTCTimeCreated        string         `json:"utc_time_created,omitempty"`
}

// PythonFunction returns the typed python_function flavor config.
func (d *ModelDescriptor) PythonFunction() (*PythonFunctionFlavor, error) {
	flavor := &PythonFunctionFlavor{}
	if err := d.Flavors.Decode(FlavorPythonFunction, flavor); err != nil {
		return nil, err
	}
	return flavor, nil
}

// Sklearn returns the typed sklearn flavor config.
func (d *ModelDescriptor) Sklearn() (*SklearnFlavor, error) {
	flavor := &SklearnFlavor{}
	if err := d.Flavors.Decode(FlavorSklearn, flavor); err != nil {
		return nil, err
	}
	return flavor, nil
}

// Framework names the training framework of the descriptor. The
// python_function flavor is a generic wrapper, a more specific flavor
// wins over it.
func (d *ModelDescriptor) Framework() string {
	if d.Flavors.Has(FlavorSklearn) {
		return FlavorSklearn
	}
	for _, name := range d.Flavors.Names() {
		if name != FlavorPythonFunction {
			return name
		}
	}
	if d.Flavors.Has(FlavorPythonFunction) {
		return FlavorPythonFunction
	}
	return ""
}

var createdLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Created parses utc_time_created. The raw string is preserved on the
// descriptor so marshalling does not reformat it.
func (d *ModelDescriptor) Created() (time.Time, error) {
	raw := strings.TrimSpace(d.UTCTimeCreated)
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized utc_time_created %q", d.UTCTimeCreated)
}

// NewModelUUID returns a fresh model_uuid in the format model
// exporters use, hex without separators.
func NewModelUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
