package client

import (
	"reflect"
	"testing"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Reference
		wantErr bool
	}{
		{
			name: "full reference",
			raw:  "https://registry.example.com/demo/forecaster@v1",
			want: Reference{
				Registry:   "https://registry.example.com",
				Repository: "demo/forecaster",
				Version:    "v1",
			},
		},
		{
			name: "with port",
			raw:  "https://registry.example.com:8443/demo/forecaster@v1",
			want: Reference{
				Registry:   "https://registry.example.com:8443",
				Repository: "demo/forecaster",
				Version:    "v1",
			},
		},
		{
			name: "scheme defaults to https",
			raw:  "registry.example.com/demo/forecaster@v1",
			want: Reference{
				Registry:   "https://registry.example.com",
				Repository: "demo/forecaster",
				Version:    "v1",
			},
		},
		{
			name: "no version",
			raw:  "https://registry.example.com/demo/forecaster",
			want: Reference{
				Registry:   "https://registry.example.com",
				Repository: "demo/forecaster",
			},
		},
		{
			name: "registry only",
			raw:  "https://registry.example.com",
			want: Reference{
				Registry: "https://registry.example.com",
			},
		},
		{
			name:    "not an url",
			raw:     "http://%ff",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReference() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseReference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	ref := Reference{Registry: "https://registry.example.com", Repository: "demo/forecaster", Version: "v1"}
	if got := ref.String(); got != "https://registry.example.com/demo/forecaster@v1" {
		t.Errorf("String() = %s", got)
	}
	ref.Version = ""
	if got := ref.String(); got != "https://registry.example.com/demo/forecaster" {
		t.Errorf("String() = %s", got)
	}
}
