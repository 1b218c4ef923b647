// File: cmd/fleetctl/coalesce.go
// Brief: CLI command wiring and implementation for 'coalesce'.

package main

import (
	"github.com/spf13/cobra"

	"github.com/patjlm/gcp-hcp-apps/internal/patch"
)

func newCoalesceCommand(configRoot, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "coalesce CLUSTER_TYPE COMPONENT PATCH_NAME",
		Short:         "Collapse fully covered branches into coarser patches",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			coalescer := patch.NewCoalescer(eng.store, eng.log)
			return coalescer.Coalesce(args[0], args[1], args[2])
		},
	}
	return cmd
}
