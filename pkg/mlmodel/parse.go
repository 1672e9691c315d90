package mlmodel

import (
	"errors"
	"fmt"

	"sigs.k8s.io/yaml"
)

// InvalidDescriptorError is the single error kind of this package:
// the document is either a valid descriptor or rejected wholesale.
type InvalidDescriptorError struct {
	Field  string
	Detail string
}

func (e *InvalidDescriptorError) Error() string {
	if e.Field == "" {
		return "invalid model descriptor: " + e.Detail
	}
	return fmt.Sprintf("invalid model descriptor: %s: %s", e.Field, e.Detail)
}

func newInvalidError(field string, format string, args ...any) *InvalidDescriptorError {
	return &InvalidDescriptorError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

func IsInvalidDescriptor(err error) bool {
	target := &InvalidDescriptorError{}
	return errors.As(err, &target)
}

// Parse decodes and validates an MLmodel document.
func Parse(content []byte) (*ModelDescriptor, error) {
	descriptor := &ModelDescriptor{}
	if err := yaml.Unmarshal(content, descriptor); err != nil {
		return nil, newInvalidError("", "%v", err)
	}
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	return descriptor, nil
}

// Marshal serializes the descriptor. Parse(Marshal(d)) yields a
// descriptor equal to d.
func (d *ModelDescriptor) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *ModelDescriptor) Validate() error {
	if d.ArtifactPath == "" {
		return newInvalidError("artifact_path", "required")
	}
	if len(d.Flavors) == 0 {
		return newInvalidError("flavors", "at least one flavor is required")
	}
	if d.Flavors.Has(FlavorPythonFunction) {
		flavor, err := d.PythonFunction()
		if err != nil {
			return newInvalidError("flavors."+FlavorPythonFunction, "%v", err)
		}
		if flavor.LoaderModule == "" {
			return newInvalidError("flavors."+FlavorPythonFunction+".loader_module", "required")
		}
	}
	if d.Flavors.Has(FlavorSklearn) {
		flavor, err := d.Sklearn()
		if err != nil {
			return newInvalidError("flavors."+FlavorSklearn, "%v", err)
		}
		if flavor.PickledModel == "" {
			return newInvalidError("flavors."+FlavorSklearn+".pickled_model", "required")
		}
	}
	if d.Signature == nil || len(d.Signature.Inputs.Columns) == 0 {
		return newInvalidError("signature.inputs", "required")
	}
	if err := d.Signature.Inputs.validate("signature.inputs", true); err != nil {
		return err
	}
	if err := d.Signature.Outputs.validate("signature.outputs", false); err != nil {
		return err
	}
	return nil
}
