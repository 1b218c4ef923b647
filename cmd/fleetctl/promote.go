// File: cmd/fleetctl/promote.go
// Brief: CLI command wiring and implementation for 'promote'.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/patjlm/gcp-hcp-apps/internal/patch"
)

func newPromoteCommand(configRoot, logLevel *string) *cobra.Command {
	var noCoalesce bool
	cmd := &cobra.Command{
		Use:           "promote CLUSTER_TYPE COMPONENT PATCH_NAME",
		Short:         "Promote a patch to the next location, then coalesce covered branches",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			next, err := eng.store.Promote(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if next == nil {
				fmt.Fprintln(out, "No promotion target found")
			} else {
				color.New(color.FgGreen).Fprintf(out, "Promoted %s to %s\n", args[2], next)
			}
			if noCoalesce {
				return nil
			}
			coalescer := patch.NewCoalescer(eng.store, eng.log)
			return coalescer.Coalesce(args[0], args[1], args[2])
		},
	}
	cmd.Flags().BoolVar(&noCoalesce, "no-coalesce", false, "Skip the coalescing pass after promotion")
	return cmd
}
