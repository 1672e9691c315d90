package mlmodel

import (
	"reflect"
	"strings"
	"testing"
)

const validDocument = `
artifact_path: model
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
  inputs: '[{"name": "load", "type": "double"}, {"name": "is_weekend", "type": "boolean"}]'
  outputs: '[{"name": "forecast", "type": "double"}]'
utc_time_created: '2023-05-23 10:14:48.550232'
`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantErr  string
	}{
		{
			name:     "valid",
			document: validDocument,
		},
		{
			name: "missing artifact path",
			document: `
flavors:
  sklearn:
    pickled_model: model.pkl
signature:
  inputs: '[{"name": "load", "type": "double"}]'
`,
			wantErr: "artifact_path",
		},
		{
			name: "no flavors",
			document: `
artifact_path: model
signature:
  inputs: '[{"name": "load", "type": "double"}]'
`,
			wantErr: "flavors",
		},
		{
			name: "missing signature inputs",
			document: `
artifact_path: model
flavors:
  sklearn:
    pickled_model: model.pkl
`,
			wantErr: "signature.inputs",
		},
		{
			name: "empty signature inputs",
			document: `
artifact_path: model
flavors:
  sklearn:
    pickled_model: model.pkl
signature:
  inputs: '[]'
  outputs: '[{"type": "double"}]'
`,
			wantErr: "signature.inputs",
		},
		{
			name: "type outside enumeration",
			document: `
artifact_path: model
flavors:
  sklearn:
    pickled_model: model.pkl
signature:
  inputs: '[{"name": "load", "type": "float"}]'
`,
			wantErr: `unknown type "float"`,
		},
		{
			name: "duplicate input column",
			document: `
artifact_path: model
flavors:
  sklearn:
    pickled_model: model.pkl
signature:
  inputs: '[{"name": "load", "type": "double"}, {"name": "load", "type": "double"}]'
`,
			wantErr: "duplicate column",
		},
		{
			name: "sklearn without pickled model",
			document: `
artifact_path: model
flavors:
  sklearn:
    sklearn_version: 1.1.3
signature:
  inputs: '[{"name": "load", "type": "double"}]'
`,
			wantErr: "pickled_model",
		},
		{
			name: "unknown flavor accepted",
			document: `
artifact_path: model
flavors:
  sklearn:
    pickled_model: model.pkl
  onnx:
    onnx_version: 1.13.0
    data: model.onnx
signature:
  inputs: '[{"name": "load", "type": "double"}]'
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.document))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Parse() = %+v, want error containing %q", got, tt.wantErr)
				}
				if !IsInvalidDescriptor(err) {
					t.Errorf("Parse() error %T, want *InvalidDescriptorError", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
		})
	}
}

func TestParseFieldOrder(t *testing.T) {
	descriptor, err := Parse([]byte(validDocument))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"load", "is_weekend"}
	if got := descriptor.Signature.Inputs.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("input order = %v, want %v", got, want)
	}
}

func TestParseKnownFlavors(t *testing.T) {
	descriptor, err := Parse([]byte(validDocument))
	if err != nil {
		t.Fatal(err)
	}

	pyfunc, err := descriptor.PythonFunction()
	if err != nil {
		t.Fatal(err)
	}
	wantpyfunc := &PythonFunctionFlavor{
		LoaderModule:  "mlflow.sklearn",
		ModelPath:     "model.pkl",
		PythonVersion: "3.10.9",
		Env:           EnvRefs{Conda: "conda.yaml"},
	}
	if !reflect.DeepEqual(pyfunc, wantpyfunc) {
		t.Errorf("PythonFunction() = %+v, want %+v", pyfunc, wantpyfunc)
	}

	sklearn, err := descriptor.Sklearn()
	if err != nil {
		t.Fatal(err)
	}
	wantsklearn := &SklearnFlavor{
		PickledModel:        "model.pkl",
		SerializationFormat: "cloudpickle",
		SklearnVersion:      "1.1.3",
	}
	if !reflect.DeepEqual(sklearn, wantsklearn) {
		t.Errorf("Sklearn() = %+v, want %+v", sklearn, wantsklearn)
	}
}

func TestRoundTrip(t *testing.T) {
	descriptor, err := Parse([]byte(validDocument))
	if err != nil {
		t.Fatal(err)
	}
	content, err := descriptor.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v\n%s", err, content)
	}
	if !reflect.DeepEqual(descriptor, reparsed) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", reparsed, descriptor)
	}
}

func TestCreated(t *testing.T) {
	descriptor, err := Parse([]byte(validDocument))
	if err != nil {
		t.Fatal(err)
	}
	created, err := descriptor.Created()
	if err != nil {
		t.Fatal(err)
	}
	if got := created.Format("2006-01-02 15:04:05"); got != "2023-05-23 10:14:48" {
		t.Errorf("Created() = %s", got)
	}
}
