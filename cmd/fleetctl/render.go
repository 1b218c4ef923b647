// File: cmd/fleetctl/render.go
// Brief: CLI command wiring and implementation for 'render'.

package main

import (
	"github.com/spf13/cobra"

	"github.com/patjlm/gcp-hcp-apps/internal/render"
)

func newRenderCommand(configRoot, logLevel *string) *cobra.Command {
	var templatesDir string
	var outDir string
	cmd := &cobra.Command{
		Use:           "render",
		Short:         "Render final manifests for every cluster type and target",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			r := render.New(eng.cfg, eng.resolver, eng.log, templatesDir, outDir)
			return r.RenderAll()
		},
	}
	cmd.Flags().StringVar(&templatesDir, "templates", "templates", "Directory holding Chart.yaml and the shared manifest templates")
	cmd.Flags().StringVar(&outDir, "out", "rendered", "Output directory (recreated from scratch)")
	return cmd
}
