package main

import (
	"fmt"

	"notedesk/internal/config"
	"notedesk/internal/db"
	"notedesk/internal/logging"
	"notedesk/internal/whiteboard"
)

// app bundles the opened stores a command operates on.
type app struct {
	cfg   *config.Config
	db    *db.DB
	repo  *db.Repository
	pages *whiteboard.Store
}

func openApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(cfg.Log)

	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	repo := db.NewRepository(database.DB)
	if _, err := repo.EnsureInstallID(); err != nil {
		repo.Close()
		database.Close()
		return nil, err
	}

	logging.L().Debug("store opened", "path", database.Path())

	return &app{
		cfg:   cfg,
		db:    database,
		repo:  repo,
		pages: whiteboard.NewStore(cfg.DataDir, cfg.Canvas.Width, cfg.Canvas.Height),
	}, nil
}

func (a *app) close() {
	a.repo.Close()
	a.db.Close()
}
