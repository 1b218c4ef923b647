// File: cmd/fleetctl/engine.go
// Brief: Shared construction of the resolution engine for commands.

package main

import (
	"github.com/go-logr/logr"

	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
	"github.com/patjlm/gcp-hcp-apps/internal/logging"
	"github.com/patjlm/gcp-hcp-apps/internal/patch"
	"github.com/patjlm/gcp-hcp-apps/internal/resolve"
)

// engine bundles the components every subcommand needs, built cold from
// the configuration root on each invocation.
type engine struct {
	cfg      *fleet.Config
	log      logr.Logger
	store    *patch.Store
	resolver *resolve.Resolver
}

func newEngine(configRoot, logLevel string) (*engine, error) {
	log, err := logging.New(logLevel)
	if err != nil {
		return nil, err
	}
	cfg, err := fleet.Load(configRoot)
	if err != nil {
		return nil, err
	}
	store := patch.NewStore(cfg, log)
	return &engine{
		cfg:      cfg,
		log:      log,
		store:    store,
		resolver: resolve.New(cfg, store, log),
	}, nil
}
