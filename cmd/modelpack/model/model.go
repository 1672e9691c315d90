package model

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"kubegems.io/modelpack/pkg/version"
)

const ErrExitCode = 1

func NewModelpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modelpack",
		Short:   "Pack, publish and fetch model directories",
		Version: version.Get().String(),
	}
	cmd.AddCommand(
		NewInitCmd(),
		NewValidateCmd(),
		NewInspectCmd(),
		NewInfoCmd(),
		NewListCmd(),
		NewPushCmd(),
		NewPullCmd(),
		NewLoginCmd(),
	)
	return cmd
}

func BaseContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if os.Getenv("DEBUG") != "" {
		stdr.SetVerbosity(5)
		ctx = logr.NewContext(ctx, stdr.New(log.New(os.Stderr, "", log.LstdFlags)))
	}
	return ctx, cancel
}
