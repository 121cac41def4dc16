package main

import (
	"fmt"
	"io"
	"os"

	"github.com/at-ishikawa/kisan/internal/shell"
	"github.com/at-ishikawa/kisan/internal/tui"
	"github.com/spf13/cobra"
)

func newAppCommand(debugMode *bool) *cobra.Command {
	var (
		lang     LanguageFlag
		darkMode bool
	)
	command := &cobra.Command{
		Use:   "app",
		Short: "Open the full-screen assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logWriter := io.Discard
			if cfg.TUI.LogFile != "" {
				logFile, err := os.OpenFile(cfg.TUI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("os.OpenFile(%s) > %w", cfg.TUI.LogFile, err)
				}
				defer func() {
					_ = logFile.Close()
				}()
				logWriter = logFile
			}
			setupLogger(logWriter, *debugMode)

			client := newClient(cfg)
			defer closeClient(client)

			s := shell.New(client, shell.Settings{
				Language:    languageOrDefault(lang, cfg),
				DarkMode:    cfg.App.DarkMode || darkMode,
				IconBaseURL: cfg.Weather.IconBaseURL,
			})
			return tui.Run(cmd.Context(), s)
		},
	}
	addLanguageFlag(command, &lang)
	command.Flags().BoolVar(&darkMode, "dark", false, "Start in dark mode")
	return command
}
