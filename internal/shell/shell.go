// Package shell owns navigation between the feature panels and the
// application-wide settings.
package shell

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/at-ishikawa/kisan/internal/panel"
)

const (
	AppName    = "Kisan AI"
	AppVersion = "1.0.0"
)

type Tab int

const (
	TabVoice Tab = iota
	TabText
	TabCrop
	TabWeather
	tabCount
)

var tabNames = [tabCount]string{
	TabVoice:   "voice",
	TabText:    "text",
	TabCrop:    "crop",
	TabWeather: "weather",
}

var tabTitles = [tabCount]string{
	TabVoice:   "Voice Assistant",
	TabText:    "Ask Question",
	TabCrop:    "Crop Detection",
	TabWeather: "Weather",
}

func Tabs() []Tab {
	return []Tab{TabVoice, TabText, TabCrop, TabWeather}
}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabNames[t]
}

// Title is the label shown in the tab bar.
func (t Tab) Title() string {
	if t < 0 || t >= tabCount {
		return t.String()
	}
	return tabTitles[t]
}

func ParseTab(s string) (Tab, error) {
	for _, tab := range Tabs() {
		if strings.EqualFold(s, tab.String()) {
			return tab, nil
		}
	}
	return TabVoice, fmt.Errorf("unknown tab %q", s)
}

// Settings configures a new Shell.
type Settings struct {
	Language    string
	DarkMode    bool
	IconBaseURL string
}

// Shell holds the four panels, which one is visible, and the settings.
type Shell struct {
	Voice   *panel.Voice
	Text    *panel.Text
	Crop    *panel.Crop
	Weather *panel.Weather

	active   Tab
	language string
	darkMode bool
}

func New(client assistant.Client, settings Settings) *Shell {
	code := settings.Language
	if !language.IsSupported(code) {
		code = language.English
	}
	return &Shell{
		Voice:    panel.NewVoice(client, code),
		Text:     panel.NewText(client, code),
		Crop:     panel.NewCrop(client),
		Weather:  panel.NewWeather(client, code, settings.IconBaseURL),
		active:   TabVoice,
		language: code,
		darkMode: settings.DarkMode,
	}
}

func (s *Shell) Active() Tab {
	return s.active
}

func (s *Shell) Select(tab Tab) error {
	if tab < 0 || tab >= tabCount {
		return fmt.Errorf("unknown tab %d", int(tab))
	}
	s.active = tab
	return nil
}

func (s *Shell) Next() {
	s.active = (s.active + 1) % tabCount
}

func (s *Shell) Prev() {
	s.active = (s.active - 1 + tabCount) % tabCount
}

func (s *Shell) Language() string {
	return s.language
}

// SetLanguage changes the application language and pushes it to every
// language-aware panel, overriding their local choices.
func (s *Shell) SetLanguage(code string) error {
	if !language.IsSupported(code) {
		return fmt.Errorf("unsupported language %q", code)
	}
	s.language = code
	s.Voice.SyncLanguage(code)
	s.Text.SyncLanguage(code)
	s.Weather.SyncLanguage(code)
	return nil
}

// CycleLanguage moves the application language to the next supported one.
func (s *Shell) CycleLanguage() {
	codes := language.Codes()
	next := codes[0]
	for i, code := range codes {
		if code == s.language {
			next = codes[(i+1)%len(codes)]
			break
		}
	}
	// codes come from the registry, so this cannot fail
	_ = s.SetLanguage(next)
}

func (s *Shell) DarkMode() bool {
	return s.darkMode
}

func (s *Shell) SetDarkMode(on bool) {
	s.darkMode = on
}

func (s *Shell) ToggleDarkMode() {
	s.darkMode = !s.darkMode
}

func AppInfo() string {
	return AppName + " v" + AppVersion
}
