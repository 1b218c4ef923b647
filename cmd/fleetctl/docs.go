// File: cmd/fleetctl/docs.go
// Brief: CLI command wiring and implementation for 'docs'.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patjlm/gcp-hcp-apps/docs"
)

var docTopics = map[string]string{
	"architecture":  docs.ArchitectureMD,
	"promotion":     docs.PromotionMD,
	"configuration": docs.ConfigurationMD,
}

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docs [TOPIC]",
		Short:         "Print the built-in documentation",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names := make([]string, 0, len(docTopics))
				for name := range docTopics {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Fprintln(out, "Available topics:")
				for _, name := range names {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}
			topic, ok := docTopics[args[0]]
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			fmt.Fprintln(out, strings.TrimSpace(topic))
			return nil
		},
	}
	return cmd
}
