package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/adapters/secondary/sqlite"
	"model-deploy-service/internal/adapters/secondary/workspace"
	"model-deploy-service/internal/config"
	"model-deploy-service/internal/core/ports/output"
)

// commandContext lazily builds the shared collaborators so commands that
// never touch the workspace (export, env) work without workspace config.
type commandContext struct {
	cfg   *config.Config
	store *sqlite.Store
	ws    ports.WorkspaceClient
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) deploymentStore() (*sqlite.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store, err := sqlite.Open(cfg.State.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open deployment journal: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) workspaceClient() (ports.WorkspaceClient, error) {
	if c.ws != nil {
		return c.ws, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ws, err := workspace.NewClient(&cfg.Workspace)
	if err != nil {
		return nil, err
	}
	c.ws = ws
	return ws, nil
}

func (c *commandContext) close() {
	if c.store != nil {
		_ = c.store.Close()
	}
}
