package mlmodel

import "encoding/json"

const (
	FlavorPythonFunction = "python_function"
	FlavorSklearn        = "sklearn"
)

// Flavors maps a flavor name to its flavor-specific config. Known
// flavors get typed views via Decode; unknown flavors are carried
// through untouched so that descriptors written by newer exporters
// survive a round-trip.
type Flavors map[string]FlavorConfig

type FlavorConfig map[string]any

func (f Flavors) Has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f Flavors) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}

// Decode fills into with the config of the named flavor. The raw map
// stays the source of truth, the typed struct is a view.
func (f Flavors) Decode(name string, into any) error {
	config, ok := f[name]
	if !ok {
		return newInvalidError("flavors."+name, "flavor not present")
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}

type PythonFunctionFlavor struct {
	LoaderModule  string  `json:"loader_module"`
	ModelPath     string  `json:"model_path,omitempty"`
	PythonVersion string  `json:"python_version,omitempty"`
	Env           EnvRefs `json:"env,omitempty"`
}

type SklearnFlavor struct {
	PickledModel        string `json:"pickled_model"`
	SerializationFormat string `json:"serialization_format,omitempty"`
	SklearnVersion      string `json:"sklearn_version,omitempty"`
	Code                string `json:"code,omitempty"`
}

// EnvRefs names the environment descriptor files of a python_function
// flavor. Older exporters write a single conda file name, newer ones
// an object with one entry per environment manager.
type EnvRefs struct {
	Conda      string `json:"conda,omitempty"`
	Virtualenv string `json:"virtualenv,omitempty"`
}

func (e *EnvRefs) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		e.Conda = single
		return nil
	}
	type plain EnvRefs
	return json.Unmarshal(data, (*plain)(e))
}

func (e EnvRefs) Files() []string {
	files := []string{}
	if e.Conda != "" {
		files = append(files, e.Conda)
	}
	if e.Virtualenv != "" {
		files = append(files, e.Virtualenv)
	}
	return files
}
