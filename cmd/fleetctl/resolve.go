// File: cmd/fleetctl/resolve.go
// Brief: CLI command wiring and implementation for 'resolve'.

package main

import (
	"github.com/spf13/cobra"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

func newResolveCommand(configRoot, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resolve CLUSTER_TYPE COMPONENT TARGET",
		Short:         "Print the effective configuration of a component at one target",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			resolved, err := eng.resolver.Resolve(args[0], args[1], fleet.ParsePath(args[2]))
			if err != nil {
				return err
			}
			out, err := document.Marshal(resolved)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	return cmd
}
