// main.go bootstraps fleetctl: it builds the root Cobra command, wires env
// configuration, and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/patjlm/gcp-hcp-apps/internal/patch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	configRoot := "config"
	logLevel := "info"
	cmd := &cobra.Command{
		Use:   "fleetctl",
		Short: "Layered fleet configuration and staged patch promotion",
		Long: "fleetctl resolves layered configuration for a multi-dimensional deployment\n" +
			"fleet and manages the controlled promotion of patches across it. Every run\n" +
			"re-derives its state from the configuration tree; interrupting a run leaves\n" +
			"a valid, merely non-optimal, state behind.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configRoot, "config-root", configRoot, "Directory holding config.yaml and the per-cluster-type component trees")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level for fleetctl output (debug, info, warn, error)")

	targetsCmd := newTargetsCommand(&configRoot, &logLevel)
	resolveCmd := newResolveCommand(&configRoot, &logLevel)
	statusCmd := newStatusCommand(&configRoot, &logLevel)
	promoteCmd := newPromoteCommand(&configRoot, &logLevel)
	coalesceCmd := newCoalesceCommand(&configRoot, &logLevel)
	renderCmd := newRenderCommand(&configRoot, &logLevel)
	cmd.AddCommand(
		targetsCmd,
		resolveCmd,
		statusCmd,
		promoteCmd,
		coalesceCmd,
		renderCmd,
		newDocsCommand(),
		newVersionCommand(),
	)
	cmd.Example = `  # Show the canonical rollout order
  fleetctl targets --full

  # Inspect the effective configuration of one target
  fleetctl resolve management-cluster hypershift production/prod-sector-1/us-east1

  # Promote a patch one step and coalesce covered branches
  fleetctl promote management-cluster hypershift fix-tls`
	bindViper(cmd, targetsCmd, resolveCmd, statusCmd, promoteCmd, coalesceCmd, renderCmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("FLEETCTL")
	v.AutomaticEnv()
	configFile := os.Getenv("FLEETCTL_CONFIG")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if configFile != "" {
			if err := v.ReadInConfig(); err != nil {
				cobra.CheckErr(err)
			}
		}
		for _, cmd := range commands {
			for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var gap *patch.GapError
	var exists *patch.TargetExistsError
	switch {
	case errors.As(err, &gap):
		message = fmt.Sprintf("%s\nHint: backfill the missing location (copy the patch there) before promoting further.", err)
	case errors.As(err, &exists):
		message = fmt.Sprintf("%s\nHint: the artifact was probably left behind by an interrupted run; inspect and remove it to continue.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
