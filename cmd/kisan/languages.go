package main

import (
	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/spf13/cobra"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}
			return renderer.Languages(cli.NewLanguageResults())
		},
	}
}
