package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/pkg/client"
	"kubegems.io/modelpack/pkg/version"
)

const ErrExitCode = 1

// modelpackdl is the init container entrypoint of a serving pod: it
// fetches only the files the model descriptor references into the
// model volume.
func main() {
	if err := NewModelpackdlCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(ErrExitCode)
	}
}

func NewModelpackdlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modelpackdl <model-url> <model-path>",
		Short:   "Download the serving files of a model version",
		Version: version.Get().String(),
		Example: `
	modelpackdl https://models.example.com/project/demo@v1 /models/demo
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires <model-url> and <model-path> arguments")
			}
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return Download(ctx, args[0], args[1])
		},
	}
	return cmd
}

func Download(ctx context.Context, rawref string, into string) error {
	reference, err := client.ParseReference(rawref)
	if err != nil {
		return err
	}
	if reference.Repository == "" || reference.Version == "" {
		return fmt.Errorf("reference %s: repository and version are required", rawref)
	}
	auth := os.Getenv("MODELPACK_AUTH")
	if auth != "" && !strings.HasPrefix(auth, "Bearer ") {
		auth = "Bearer " + auth
	}
	c := reference.Client(auth)
	return c.PullModelFiles(ctx, reference.Repository, reference.Version, into)
}
