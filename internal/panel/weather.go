package panel

import (
	"context"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/at-ishikawa/kisan/internal/icon"
)

// Weather is the weather lookup panel.
type Weather struct {
	base
	languageSetting

	client      assistant.Client
	iconBaseURL string
	city        string
	snapshot    *assistant.Weather
}

func NewWeather(client assistant.Client, defaultLanguage, iconBaseURL string) *Weather {
	if iconBaseURL == "" {
		iconBaseURL = icon.DefaultBaseURL
	}
	return &Weather{
		client:          client,
		iconBaseURL:     iconBaseURL,
		languageSetting: newLanguageSetting(defaultLanguage),
	}
}

func (p *Weather) City() string {
	return p.city
}

func (p *Weather) SetCity(city string) {
	p.city = city
	p.DismissNotification()
}

// Snapshot returns the displayed weather, if any.
func (p *Weather) Snapshot() (assistant.Weather, bool) {
	if p.snapshot == nil {
		return assistant.Weather{}, false
	}
	return *p.snapshot, true
}

// IconURL is the image for the displayed condition, empty without one.
func (p *Weather) IconURL() string {
	if p.snapshot == nil {
		return ""
	}
	return icon.URL(p.iconBaseURL, p.snapshot.Icon())
}

func (p *Weather) State() State {
	return p.state(p.snapshot != nil)
}

func (p *Weather) CanSubmit() bool {
	return !p.Pending() && isValid(cityForm{City: p.city, Language: p.Language()})
}

func (p *Weather) Begin() (Request[assistant.Weather], error) {
	if !isValid(cityForm{City: p.city, Language: p.Language()}) {
		return Request[assistant.Weather]{}, p.reject(destructive("Empty City Name", "Please enter a city name"))
	}

	params := assistant.WeatherRequest{City: p.city, Language: p.Language()}
	p.snapshot = nil
	token := p.begin()
	return Request[assistant.Weather]{
		Token: token,
		call: func(ctx context.Context) (assistant.Weather, error) {
			return p.client.GetWeather(ctx, params)
		},
	}, nil
}

func (p *Weather) Complete(outcome Outcome[assistant.Weather]) bool {
	if !p.requests.accept(outcome.Token) {
		return false
	}
	if outcome.Err != nil {
		p.notify(errorNotification(outcome.Err, "Failed to get weather data. Please check the city name and try again."))
		return true
	}
	snapshot := outcome.Value
	p.snapshot = &snapshot
	return true
}

func (p *Weather) Submit(ctx context.Context) error {
	req, err := p.Begin()
	if err != nil {
		return err
	}
	return submit(ctx, req, p.Complete)
}
