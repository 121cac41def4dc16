package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var AllFormats = []Format{FormatText, FormatJSON, FormatYAML}

func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q, valid values are %v", s, AllFormats)
}

type AnswerResult struct {
	Question string `json:"question" yaml:"question"`
	Language string `json:"language" yaml:"language"`
	Answer   string `json:"answer" yaml:"answer"`
}

type WeatherResult struct {
	City        string `json:"city" yaml:"city"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Temperature string `json:"temperature" yaml:"temperature"`
	FeelsLike   string `json:"feels_like" yaml:"feels_like"`
	Humidity    string `json:"humidity" yaml:"humidity"`
	Pressure    string `json:"pressure" yaml:"pressure"`
	WindSpeed   string `json:"wind_speed" yaml:"wind_speed"`
	IconURL     string `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
	IconPath    string `json:"icon_path,omitempty" yaml:"icon_path,omitempty"`
}

func NewWeatherResult(city string, w assistant.Weather, iconURL string) WeatherResult {
	return WeatherResult{
		City:        city,
		Name:        w.Name,
		Description: w.Description(),
		Temperature: w.Temperature(),
		FeelsLike:   w.FeelsLike(),
		Humidity:    w.Humidity(),
		Pressure:    w.Pressure(),
		WindSpeed:   w.WindSpeed(),
		IconURL:     iconURL,
	}
}

type CropResult struct {
	Filename string `json:"filename" yaml:"filename"`
	Crop     string `json:"crop" yaml:"crop"`
}

type VoiceResult struct {
	Language     string             `json:"language" yaml:"language"`
	Status       string             `json:"status,omitempty" yaml:"status,omitempty"`
	Notification panel.Notification `json:"notification" yaml:"notification"`
}

type LanguageResult struct {
	Code         string `json:"code" yaml:"code"`
	Name         string `json:"name" yaml:"name"`
	NativeName   string `json:"native_name" yaml:"native_name"`
	SpeechLocale string `json:"speech_locale" yaml:"speech_locale"`
}

func NewLanguageResults() []LanguageResult {
	var results []LanguageResult
	for _, l := range language.All() {
		results = append(results, LanguageResult{
			Code:         l.Code,
			Name:         l.Name,
			NativeName:   language.NativeName(l.Code),
			SpeechLocale: language.SpeechLocale(l.Code),
		})
	}
	return results
}

// Renderer writes command results in the configured format.
type Renderer struct {
	format    Format
	stdout    io.Writer
	stderr    io.Writer
	bold      *color.Color
	italic    *color.Color
	errorText *color.Color
	infoText  *color.Color
}

func NewRenderer(format Format, stdout, stderr io.Writer) *Renderer {
	return &Renderer{
		format:    format,
		stdout:    stdout,
		stderr:    stderr,
		bold:      color.New(color.Bold),
		italic:    color.New(color.Italic),
		errorText: color.New(color.FgRed, color.Bold),
		infoText:  color.New(color.FgGreen, color.Bold),
	}
}

func (r *Renderer) Answer(result AnswerResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}
	if _, err := r.bold.Fprintln(r.stdout, "Answer"); err != nil {
		return fmt.Errorf("bold.Fprintln > %w", err)
	}
	_, err := fmt.Fprintln(r.stdout, result.Answer)
	return err
}

func (r *Renderer) Weather(results []WeatherResult) error {
	if r.format != FormatText {
		if len(results) == 1 {
			return r.encode(results[0])
		}
		return r.encode(results)
	}

	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(r.stdout); err != nil {
				return err
			}
		}
		if _, err := r.bold.Fprintln(r.stdout, result.Name); err != nil {
			return fmt.Errorf("bold.Fprintln > %w", err)
		}
		if result.Description != "" {
			if _, err := r.italic.Fprintln(r.stdout, result.Description); err != nil {
				return fmt.Errorf("italic.Fprintln > %w", err)
			}
		}

		w := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Temperature:\t%s\n", result.Temperature)
		fmt.Fprintf(w, "Feels like:\t%s\n", result.FeelsLike)
		fmt.Fprintf(w, "Humidity:\t%s\n", result.Humidity)
		fmt.Fprintf(w, "Pressure:\t%s\n", result.Pressure)
		fmt.Fprintf(w, "Wind speed:\t%s\n", result.WindSpeed)
		if result.IconURL != "" {
			fmt.Fprintf(w, "Icon:\t%s\n", result.IconURL)
		}
		if result.IconPath != "" {
			fmt.Fprintf(w, "Icon file:\t%s\n", result.IconPath)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("tabwriter.Flush > %w", err)
		}
	}
	return nil
}

func (r *Renderer) Crop(result CropResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}
	_, err := r.bold.Fprintf(r.stdout, "Detected crop: %s\n", result.Crop)
	return err
}

func (r *Renderer) Voice(result VoiceResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}
	return r.Notification(result.Notification)
}

func (r *Renderer) Languages(results []LanguageResult) error {
	if r.format != FormatText {
		return r.encode(results)
	}
	w := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tNATIVE\tSPEECH LOCALE")
	for _, result := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", result.Code, result.Name, result.NativeName, result.SpeechLocale)
	}
	return w.Flush()
}

// Notification shows a panel notification. Destructive ones go to stderr.
func (r *Renderer) Notification(n panel.Notification) error {
	if n.Variant == panel.VariantDestructive {
		if _, err := r.errorText.Fprintf(r.stderr, "%s: ", n.Title); err != nil {
			return err
		}
		_, err := fmt.Fprintln(r.stderr, n.Description)
		return err
	}
	if _, err := r.infoText.Fprintf(r.stdout, "%s: ", n.Title); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.stdout, n.Description)
	return err
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(r.stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("yaml.Close > %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", r.format)
	}
	return nil
}
