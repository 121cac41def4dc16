package panel

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/at-ishikawa/kisan/internal/language"
)

// Voice starts and stops the backend voice assistant.
type Voice struct {
	base
	languageSetting

	client    assistant.Client
	listening bool
	status    string
	// starting is the language of the latest start request.
	starting string
}

func NewVoice(client assistant.Client, defaultLanguage string) *Voice {
	return &Voice{
		client:          client,
		languageSetting: newLanguageSetting(defaultLanguage),
	}
}

func (p *Voice) Listening() bool {
	return p.listening
}

// SessionLanguage is the language the running session was started in.
func (p *Voice) SessionLanguage() string {
	return p.starting
}

// Status is the backend's acknowledgment of the running session.
func (p *Voice) Status() string {
	return p.status
}

func (p *Voice) State() State {
	return p.state(p.listening)
}

func (p *Voice) CanSubmit() bool {
	return !p.Pending()
}

// Stop ends listening locally. The backend session ends when the user says "stop".
func (p *Voice) Stop() {
	p.listening = false
	p.status = ""
	p.DismissNotification()
}

// Begin starts a voice session in the panel's language.
func (p *Voice) Begin() Request[assistant.VoiceSession] {
	code := p.Language()
	token := p.begin()
	p.starting = code
	return Request[assistant.VoiceSession]{
		Token: token,
		call: func(ctx context.Context) (assistant.VoiceSession, error) {
			return p.client.StartVoiceSession(ctx, code)
		},
	}
}

func (p *Voice) Complete(outcome Outcome[assistant.VoiceSession]) bool {
	if !p.requests.accept(outcome.Token) {
		return false
	}
	if outcome.Err != nil {
		p.notify(errorNotification(outcome.Err, "Failed to start voice assistant. Please try again."))
		return true
	}
	p.listening = true
	p.status = outcome.Value.Status
	p.notify(Notification{
		Title:       "Voice Assistant Started",
		Description: fmt.Sprintf("Now listening in %s. Say \"stop\" to end the session.", language.Name(p.starting)),
		Variant:     VariantDefault,
		Duration:    infoDuration,
	})
	return true
}

// Toggle stops a running session or starts a new one and waits for the backend.
func (p *Voice) Toggle(ctx context.Context) error {
	if p.listening {
		p.Stop()
		return nil
	}
	return submit(ctx, p.Begin(), p.Complete)
}
