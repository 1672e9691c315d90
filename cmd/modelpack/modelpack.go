package main

import (
	"crypto/tls"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"kubegems.io/modelpack/cmd/modelpack/model"
	"kubegems.io/modelpack/cmd/modelpack/repo"
)

func main() {
	ctx, cancel := model.BaseContext()
	defer cancel()

	cmd := model.NewModelpackCmd()
	cmd.AddCommand(repo.NewRepoCmd())

	insecure := false
	cmd.PersistentFlags().BoolVar(&insecure, "insecure", insecure, "skip tls certificate verification")
	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if insecure {
			http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(model.ErrExitCode)
	}
}
