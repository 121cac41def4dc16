package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/at-ishikawa/kisan/internal/panel"
)

const languageCommandPrefix = ":lang"

// AskSession asks one question per line typed by the user.
type AskSession struct {
	*InteractiveCLI

	text     *panel.Text
	renderer *Renderer
}

func NewAskSession(interactive *InteractiveCLI, text *panel.Text, renderer *Renderer) *AskSession {
	return &AskSession{
		InteractiveCLI: interactive,
		text:           text,
		renderer:       renderer,
	}
}

func (s *AskSession) Session(ctx context.Context) error {
	fmt.Fprintf(s.stdoutWriter, "[%s] Question: ", s.text.Language())
	input, err := s.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading question input: %w", err)
	}
	question := strings.TrimRight(input, "\r\n")

	switch strings.TrimSpace(question) {
	case "quit", "exit":
		fmt.Fprintln(s.stdoutWriter, "Session ended.")
		return errEnd
	}

	if rest, ok := strings.CutPrefix(strings.TrimSpace(question), languageCommandPrefix); ok {
		s.switchLanguage(strings.TrimSpace(rest))
		return nil
	}

	s.text.SetQuestion(question)
	if err := s.text.Submit(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if n, ok := s.text.Notification(); ok {
			if err := s.renderer.Notification(n); err != nil {
				return fmt.Errorf("renderer.Notification > %w", err)
			}
		}
		return nil
	}

	if err := s.renderer.Answer(AnswerResult{
		Question: question,
		Language: s.text.Language(),
		Answer:   s.text.Answer(),
	}); err != nil {
		return fmt.Errorf("renderer.Answer > %w", err)
	}
	fmt.Fprintln(s.stdoutWriter)
	return nil
}

func (s *AskSession) switchLanguage(input string) {
	code, ok := language.Resolve(input)
	if !ok {
		message := fmt.Sprintf("Unknown language %q.", input)
		if suggestion, found := language.Suggest(input); found {
			message += fmt.Sprintf(" Did you mean %q?", suggestion)
		}
		fmt.Fprintln(s.stdoutWriter, message)
		return
	}
	// Resolve only returns registered codes
	_ = s.text.SetLanguage(code)
	fmt.Fprintf(s.stdoutWriter, "Language set to %s.\n", language.Name(code))
}
