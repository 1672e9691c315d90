package registry

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"time"
)

type Options struct {
	Listen         string
	TLS            *TLSOptions
	S3             *S3Options
	Local          *LocalFSOptions
	EnableRedirect bool
	OIDC           *OIDCOptions
	CachePath      string
	GCInterval     time.Duration
}

type OIDCOptions struct {
	Issuer string
}

func DefaultOptions() *Options {
	return &Options{
		Listen:         ":8080",
		TLS:            &TLSOptions{},
		S3:             NewDefaultS3Options(),
		OIDC:           &OIDCOptions{},
		Local:          NewDefaultLocalFSOptions(),
		EnableRedirect: false, // default to false
		CachePath:      "data/cache",
		GCInterval:     0, // disabled unless set
	}
}

type TLSOptions struct {
	CertFile string
	KeyFile  string
	CAFile   string
}

func (t *TLSOptions) ToTLSConfig() (*tls.Config, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		return nil, err
	}
	config := &tls.Config{ClientCAs: pool}
	if t.CAFile != "" {
		capem, err := os.ReadFile(t.CAFile)
		if err != nil {
			return nil, err
		}
		config.ClientCAs.AppendCertsFromPEM(capem)
	}
	certificate, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return nil, err
	}
	config.Certificates = append(config.Certificates, certificate)
	return config, nil
}
