package main

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/kisan/internal/cli"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var lang LanguageFlag
	command := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a farming question. Without a question, starts an interactive session",
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

			text := panel.NewText(client, languageOrDefault(lang, cfg))
			if len(args) == 0 {
				interactive := cli.NewInteractiveCLI(cmd.InOrStdin(), cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), "Interactive question session started!")
				fmt.Fprintln(cmd.OutOrStdout(), "Type ':lang <code>' to switch language and 'quit' to exit.")
				fmt.Fprintln(cmd.OutOrStdout())
				return interactive.Run(cmd.Context(), cli.NewAskSession(interactive, text, renderer))
			}

			question := strings.Join(args, " ")
			text.SetQuestion(question)
			if err := text.Submit(cmd.Context()); err != nil {
				if notifyErr := notify(renderer, text); notifyErr != nil {
					return notifyErr
				}
				return fmt.Errorf("text.Submit > %w", err)
			}
			return renderer.Answer(cli.AnswerResult{
				Question: question,
				Language: text.Language(),
				Answer:   text.Answer(),
			})
		},
	}
	addLanguageFlag(command, &lang)
	return command
}
