package registry

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/gorilla/handlers"
)

func Run(ctx context.Context, opts *Options) error {
	log := stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error})
	ctx = logr.NewContext(ctx, log)
	registry, err := NewRegistry(ctx, opts)
	if err != nil {
		return err
	}

	var handler http.Handler = registry.route()
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	if opts.OIDC.Issuer != "" {
		authfilter, err := NewOIDCAuthFilter(ctx, opts.OIDC.Issuer, handler)
		if err != nil {
			return err
		}
		handler = authfilter
	}

	if opts.GCInterval > 0 {
		go RunGC(ctx, registry.Store, opts.GCInterval)
	}

	server := http.Server{
		Addr:    opts.Listen,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()
	if opts.TLS.CertFile != "" && opts.TLS.KeyFile != "" {
		log.Info("registry listening", "https", opts.Listen)
		return server.ListenAndServeTLS(opts.TLS.CertFile, opts.TLS.KeyFile)
	} else {
		log.Info("registry listening", "http", opts.Listen)
		return server.ListenAndServe()
	}
}

func NewRegistry(ctx context.Context, opt *Options) (*Registry, error) {
	store, err := NewFSRegistryStore(ctx, opt)
	if err != nil {
		return nil, err
	}
	return &Registry{Store: store}, nil
}
