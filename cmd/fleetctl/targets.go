// File: cmd/fleetctl/targets.go
// Brief: CLI command wiring and implementation for 'targets'.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTargetsCommand(configRoot, logLevel *string) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:           "targets",
		Short:         "Print the canonical traversal of the fleet hierarchy",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			paths := eng.cfg.Tree.Walk()
			if full {
				paths = eng.cfg.Tree.Targets()
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Only print complete (full-depth) targets")
	return cmd
}
