package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/app"
	"github.com/arjunv/praktis/internal/config"
	"github.com/arjunv/praktis/internal/hints"
	"github.com/arjunv/praktis/internal/logging"
	"github.com/arjunv/praktis/internal/store"
)

// runApp loads config, wires dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout, log)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	opts := app.Options{
		Service:      client,
		BaseURL:      cfg.BaseURL,
		Log:          log,
		PollInterval: cfg.PollInterval,
	}

	// Local history is optional. The practice loop works without it.
	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		st, err := store.Open(dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Local history unavailable:", err)
		} else {
			defer st.Close()
			opts.Events = st.EventRepo()
		}
	}

	if cfg.HintsEnabled() {
		provider, err := hints.NewOpenAIProvider(cfg.OpenAIKey, cfg.HintModel)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Hints unavailable:", err)
		} else {
			opts.Hinter = hints.WithRetry(provider, hints.DefaultRetryConfig())
		}
	}

	return app.Run(opts)
}

// loadConfig parses the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.BaseURL = server
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
