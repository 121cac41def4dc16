package main

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/kisan/internal/assistant/backend"
	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/at-ishikawa/kisan/internal/config"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *backend.Client {
	return backend.NewClient(cfg.API.BaseURL, cfg.API.MaxRetryAttempts)
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (*cli.Renderer, error) {
	value := cfg.Output.Format
	if outputFormat != "" {
		value = outputFormat
	}
	format, err := cli.ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return cli.NewRenderer(format, cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
}

// languageOrDefault returns the --language value, falling back to the configured one.
func languageOrDefault(flag LanguageFlag, cfg *config.Config) string {
	if flag != "" {
		return string(flag)
	}
	return cfg.App.Language
}

// notify shows the panel's notification after a failed submission.
func notify(renderer *cli.Renderer, notifier interface {
	Notification() (panel.Notification, bool)
}) error {
	n, ok := notifier.Notification()
	if !ok {
		return nil
	}
	if err := renderer.Notification(n); err != nil {
		return fmt.Errorf("renderer.Notification > %w", err)
	}
	return nil
}

func closeClient(c io.Closer) {
	_ = c.Close()
}
