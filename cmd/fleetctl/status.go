// File: cmd/fleetctl/status.go
// Brief: CLI command wiring and implementation for 'status'.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCommand(configRoot, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status CLUSTER_TYPE COMPONENT PATCH_NAME",
		Short:         "Show where a patch currently sits and its rollout frontier",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*configRoot, *logLevel)
			if err != nil {
				return err
			}
			patches, err := eng.store.Find(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(patches) == 0 {
				fmt.Fprintf(out, "No patches named %q for %s/%s\n", args[2], args[0], args[1])
				return nil
			}
			frontier := patches[len(patches)-1]
			for _, p := range patches {
				marker := " "
				if p == frontier {
					marker = color.New(color.FgGreen).Sprint("*")
				}
				fmt.Fprintf(out, "%s %s\n", marker, p.Path)
			}
			fmt.Fprintf(out, "Frontier: %s\n", frontier.Path)
			return nil
		},
	}
	return cmd
}
