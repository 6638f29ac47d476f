package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"scoreline/internal/repositories"
	"scoreline/internal/services"
	"scoreline/internal/session"
	"scoreline/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var db *sql.DB
	var store session.CredentialStore
	var snapshots *repositories.MatchRepository

	if _, err := os.Stat(config.Database.Path); err == nil {
		if opened, err := shared.NewDatabase(config.Database.Path); err == nil {
			db = opened
			defer db.Close()
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			store = repositories.NewCredentialRepository(db, logger)
			snapshots = repositories.NewMatchRepository(db)
		} else {
			logger.Warn("failed to open database, credentials will not persist", "error", err)
		}
	}

	sess := session.New(store, logger)

	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}
	client := services.NewClient(config.API.BaseURL, httpClient, sess)

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Client:    client,
		Session:   sess,
		Snapshots: snapshots,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "scoreline",
		Usage:    "Track matches, scores and match-day chatter from the terminal",
		Version:  "0.5.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
