package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/pkg/registry"
	"kubegems.io/modelpack/pkg/version"
)

const ErrExitCode = 1

func main() {
	if err := NewModelpackdCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(ErrExitCode)
	}
}

func NewModelpackdCmd() *cobra.Command {
	options := registry.DefaultOptions()
	cmd := &cobra.Command{
		Use:     "modelpackd",
		Short:   "Model registry server",
		Version: version.Get().String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return registry.Run(ctx, options)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&options.Listen, "listen", options.Listen, "listen address")
	flags.StringVar(&options.TLS.CertFile, "tls-cert-file", options.TLS.CertFile, "tls certificate file")
	flags.StringVar(&options.TLS.KeyFile, "tls-key-file", options.TLS.KeyFile, "tls private key file")
	flags.StringVar(&options.TLS.CAFile, "tls-ca-file", options.TLS.CAFile, "tls ca file")
	flags.StringVar(&options.S3.URL, "s3-url", options.S3.URL, "s3 endpoint, empty to store on the local filesystem")
	flags.StringVar(&options.S3.Bucket, "s3-bucket", options.S3.Bucket, "s3 bucket")
	flags.StringVar(&options.S3.AccessKey, "s3-access-key", options.S3.AccessKey, "s3 access key")
	flags.StringVar(&options.S3.SecretKey, "s3-secret-key", options.S3.SecretKey, "s3 secret key")
	flags.StringVar(&options.S3.Region, "s3-region", options.S3.Region, "s3 region")
	flags.DurationVar(&options.S3.PresignExpire, "s3-presign-expire", options.S3.PresignExpire, "expiry of presigned blob urls")
	flags.StringVar(&options.Local.Basepath, "local-basepath", options.Local.Basepath, "local filesystem storage path")
	flags.BoolVar(&options.EnableRedirect, "enable-redirect", options.EnableRedirect, "redirect blob requests to presigned s3 urls")
	flags.StringVar(&options.OIDC.Issuer, "oidc-issuer", options.OIDC.Issuer, "oidc issuer url, empty to disable auth")
	flags.StringVar(&options.CachePath, "cache-path", options.CachePath, "descriptor summary cache path, empty to disable")
	flags.DurationVar(&options.GCInterval, "gc-interval", options.GCInterval, "blob garbage collect interval, 0 to disable")
	return cmd
}
