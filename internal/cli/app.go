// SPDX-License-Identifier: Apache-2.0

// Package cli implements the secrets command tree. Commands parse flags,
// call the store, and render structured results; all consistency logic
// lives in the store package.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/config"
	"github.com/akihiro/secrets-cli/internal/store"
)

// App carries the resolved configuration and the open store. One backend
// is active per process.
type App struct {
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger

	// backendOverride, when non-nil, is used instead of opening a real
	// adapter. Tests inject the memory backend here.
	backendOverride backend.Backend
}

// NewApp returns an App that opens a real platform backend on initialize.
func NewApp() *App {
	return &App{
		logger: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false}),
	}
}

// initialize resolves config and opens the backend and store. Called from
// the root command's PersistentPreRunE after flags are parsed.
func (a *App) initialize(cfgFile, namespace, baseDir, backendName string, verbose bool) error {
	if verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if backendName != "" {
		cfg.Backend = backendName
	}
	a.cfg = cfg

	be := a.backendOverride
	if be == nil {
		be, err = openBackend(cfg.Backend)
		if err != nil {
			return err
		}
	}
	a.logger.Debug("backend ready", "backend", be.Name(), "namespace", cfg.Namespace)

	st, err := store.New(cfg.Namespace, cfg.BaseDir, be)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = st
	return nil
}
