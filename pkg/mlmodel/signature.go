package mlmodel

import (
	"encoding/json"
	"fmt"
)

// DataType is the column type enumeration of a model signature. The
// set is closed: anything else fails validation.
type DataType string

const (
	DataTypeDouble  DataType = "double"
	DataTypeBoolean DataType = "boolean"
	DataTypeInteger DataType = "integer"
	DataTypeLong    DataType = "long"
	DataTypeString  DataType = "string"
)

var dataTypes = map[DataType]struct{}{
	DataTypeDouble:  {},
	DataTypeBoolean: {},
	DataTypeInteger: {},
	DataTypeLong:    {},
	DataTypeString:  {},
}

func (t DataType) Valid() bool {
	_, ok := dataTypes[t]
	return ok
}

// ColSpec is one column of a schema. Output columns may be unnamed.
type ColSpec struct {
	Name string   `json:"name,omitempty"`
	Type DataType `json:"type"`
}

// Schema is an ordered column list. Order is significant: it is the
// positional feature order the serialized model was trained with.
//
// On the wire a schema is a JSON-encoded column list embedded as a
// string value in the MLmodel document, which is what mlflow writes.
// A plain list is accepted too.
type Schema struct {
	Columns []ColSpec
}

func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	return names
}

func (s Schema) MarshalJSON() ([]byte, error) {
	cols := s.Columns
	if cols == nil {
		cols = []ColSpec{}
	}
	encoded, err := json.Marshal(cols)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(encoded))
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var embedded string
	if err := json.Unmarshal(data, &embedded); err == nil {
		data = []byte(embedded)
	}
	if err := json.Unmarshal(data, &s.Columns); err != nil {
		return err
	}
	if len(s.Columns) == 0 {
		s.Columns = nil
	}
	return nil
}

func (s Schema) validate(field string, named bool) error {
	seen := map[string]int{}
	for i, col := range s.Columns {
		if !col.Type.Valid() {
			return newInvalidError(fmt.Sprintf("%s[%d].type", field, i), "unknown type %q", col.Type)
		}
		if named && col.Name == "" {
			return newInvalidError(fmt.Sprintf("%s[%d].name", field, i), "column name is required")
		}
		if col.Name == "" {
			continue
		}
		if prev, ok := seen[col.Name]; ok {
			return newInvalidError(fmt.Sprintf("%s[%d].name", field, i), "duplicate column %q, first declared at index %d", col.Name, prev)
		}
		seen[col.Name] = i
	}
	return nil
}

// Signature declares the input and output schema of the wrapped
// predictor's prediction function.
type Signature struct {
	Inputs  Schema `json:"inputs"`
	Outputs Schema `json:"outputs"`
}
