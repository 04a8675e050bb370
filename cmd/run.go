package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/app"
	"github.com/janakan-45/banana-brain-blitz/internal/config"
	"github.com/janakan-45/banana-brain-blitz/internal/logging"
	"github.com/janakan-45/banana-brain-blitz/internal/store"
)

// runApp loads config, opens the store, builds the API client, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "File logging unavailable:", err)
		log = logging.Nop()
	} else {
		defer closer.Close()
	}

	st, err := openStore(cmd, cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	creds, err := st.Credentials(context.Background())
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, log)
	if creds.HasTokens() {
		client.SetToken(creds.AccessToken)
	}

	return app.Run(app.Options{
		API:         client,
		Store:       st,
		Log:         log,
		Credentials: creds,
	})
}

// loadConfig reads env configuration, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIBaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore resolves the database path using the --db flag (highest
// priority), then BANANA_DB, then the default XDG path.
func openStore(cmd *cobra.Command, dataDir string) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		p, err := store.DefaultPath(dataDir)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
