package panel

import (
	"context"

	"github.com/at-ishikawa/kisan/internal/assistant"
)

// Text is the text question panel.
type Text struct {
	base
	languageSetting

	client   assistant.Client
	question string
	answer   string
}

func NewText(client assistant.Client, defaultLanguage string) *Text {
	return &Text{
		client:          client,
		languageSetting: newLanguageSetting(defaultLanguage),
	}
}

func (p *Text) Question() string {
	return p.question
}

func (p *Text) SetQuestion(question string) {
	p.question = question
	p.DismissNotification()
}

// Answer is the latest answer, shown under the "Answer" heading.
func (p *Text) Answer() string {
	return p.answer
}

func (p *Text) State() State {
	return p.state(p.answer != "")
}

// CanSubmit mirrors the submit button: disabled while pending or without a question.
func (p *Text) CanSubmit() bool {
	return !p.Pending() && isValid(questionForm{Question: p.question, Language: p.Language()})
}

// Begin validates the question and moves the panel to pending.
func (p *Text) Begin() (Request[assistant.AskQuestionResponse], error) {
	if !isValid(questionForm{Question: p.question, Language: p.Language()}) {
		return Request[assistant.AskQuestionResponse]{}, p.reject(destructive("Empty Question", "Please enter a question"))
	}

	params := assistant.AskQuestionRequest{Question: p.question, Language: p.Language()}
	p.answer = ""
	token := p.begin()
	return Request[assistant.AskQuestionResponse]{
		Token: token,
		call: func(ctx context.Context) (assistant.AskQuestionResponse, error) {
			return p.client.AskQuestion(ctx, params)
		},
	}, nil
}

// Complete applies an outcome. It returns false for a stale outcome.
func (p *Text) Complete(outcome Outcome[assistant.AskQuestionResponse]) bool {
	if !p.requests.accept(outcome.Token) {
		return false
	}
	if outcome.Err != nil {
		p.notify(errorNotification(outcome.Err, "Failed to get answer. Please try again."))
		return true
	}
	p.answer = outcome.Value.Response
	return true
}

// Submit asks the question and waits for the answer.
func (p *Text) Submit(ctx context.Context) error {
	req, err := p.Begin()
	if err != nil {
		return err
	}
	return submit(ctx, req, p.Complete)
}
