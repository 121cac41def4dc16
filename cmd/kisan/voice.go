package main

import (
	"fmt"

	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/spf13/cobra"
)

func newVoiceCommand() *cobra.Command {
	var lang LanguageFlag
	command := &cobra.Command{
		Use:   "voice",
		Short: "Start the voice assistant on the backend",
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
			client := newClient(cfg)
			defer closeClient(client)

			voice := panel.NewVoice(client, languageOrDefault(lang, cfg))
			if err := voice.Toggle(cmd.Context()); err != nil {
				if notifyErr := notify(renderer, voice); notifyErr != nil {
					return notifyErr
				}
				return fmt.Errorf("voice.Toggle > %w", err)
			}
			n, _ := voice.Notification()
			return renderer.Voice(cli.VoiceResult{
				Language:     voice.Language(),
				Status:       voice.Status(),
				Notification: n,
			})
		},
	}
	addLanguageFlag(command, &lang)
	return command
}
