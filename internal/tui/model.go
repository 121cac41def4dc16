// Package tui is the full-screen terminal interface over a shell.Shell.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/kisan/internal/assistant"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/at-ishikawa/kisan/internal/shell"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

type answerMsg struct {
	outcome panel.Outcome[assistant.AskQuestionResponse]
}

type weatherMsg struct {
	outcome panel.Outcome[assistant.Weather]
}

type cropMsg struct {
	outcome panel.Outcome[assistant.CropDetection]
}

type voiceMsg struct {
	outcome panel.Outcome[assistant.VoiceSession]
}

type toastExpiredMsg struct {
	id int
}

// toast is the notification of one panel, shown until it expires or the
// panel dismisses it.
type toast struct {
	id  int
	tab shell.Tab
}

const (
	settingsLanguage = iota
	settingsDarkMode
	settingsItemCount
)

type Model struct {
	ctx   context.Context
	shell *shell.Shell

	question   textinput.Model
	city       textinput.Model
	imagePath  textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	styles     styles
	renderer   *glamour.TermRenderer
	answerView string

	selectedImage  string
	toast          *toast
	nextToastID    int
	settingsOpen   bool
	settingsCursor int
	width          int
	height         int
}

func New(ctx context.Context, s *shell.Shell) Model {
	question := textinput.New()
	question.Placeholder = "Ask about crops, soil, pests..."
	question.CharLimit = 1024
	question.Width = defaultWidth - 4

	city := textinput.New()
	city.Placeholder = "Enter city name"
	city.CharLimit = 128
	city.Width = defaultWidth - 4

	imagePath := textinput.New()
	imagePath.Placeholder = "Path to a JPG or PNG image"
	imagePath.Width = defaultWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		shell:     s,
		question:  question,
		city:      city,
		imagePath: imagePath,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
		width:     defaultWidth,
	}
	m.applyTheme()
	m.focusActive()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) applyTheme() {
	m.styles = newStyles(m.shell.DarkMode())
	m.spinner.Style = m.styles.spinner
	m.newRenderer()
}

func (m *Model) newRenderer() {
	style := "light"
	if m.shell.DarkMode() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(m.width-8, 20)),
	)
	if err != nil {
		slog.Warn("failed to create markdown renderer", "error", err)
		renderer = nil
	}
	m.renderer = renderer
	m.renderAnswer()
}

func (m *Model) renderAnswer() {
	answer := m.shell.Text.Answer()
	if answer == "" || m.renderer == nil {
		m.answerView = answer
		return
	}
	rendered, err := m.renderer.Render(answer)
	if err != nil {
		slog.Warn("failed to render answer", "error", err)
		m.answerView = answer
		return
	}
	m.answerView = strings.TrimRight(rendered, "\n")
}

func (m *Model) focusActive() {
	m.question.Blur()
	m.city.Blur()
	m.imagePath.Blur()
	switch m.shell.Active() {
	case shell.TabText:
		m.question.Focus()
	case shell.TabCrop:
		m.imagePath.Focus()
	case shell.TabWeather:
		m.city.Focus()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := max(msg.Width-4, 10)
		m.question.Width = inputWidth
		m.city.Width = inputWidth
		m.imagePath.Width = inputWidth
		m.help.Width = msg.Width
		m.newRenderer()
		return m, nil

	case answerMsg:
		if !m.shell.Text.Complete(msg.outcome) {
			return m, nil
		}
		m.renderAnswer()
		return m, m.showNotification(shell.TabText)

	case weatherMsg:
		if !m.shell.Weather.Complete(msg.outcome) {
			return m, nil
		}
		return m, m.showNotification(shell.TabWeather)

	case cropMsg:
		if !m.shell.Crop.Complete(msg.outcome) {
			return m, nil
		}
		return m, m.showNotification(shell.TabCrop)

	case voiceMsg:
		if !m.shell.Voice.Complete(msg.outcome) {
			return m, nil
		}
		return m, m.showNotification(shell.TabVoice)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.dismiss(m.toast.tab)
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Settings):
		m.settingsOpen = !m.settingsOpen
		return m, nil
	}
	if m.settingsOpen {
		return m.updateSettings(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.shell.Next()
		m.focusActive()
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.shell.Prev()
		m.focusActive()
		return m, nil
	case key.Matches(msg, m.keys.Language):
		m.cycleLanguage()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m.updateInput(msg)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.settingsOpen = false
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = (m.settingsCursor - 1 + settingsItemCount) % settingsItemCount
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = (m.settingsCursor + 1) % settingsItemCount
	case key.Matches(msg, m.keys.Submit):
		switch m.settingsCursor {
		case settingsLanguage:
			m.shell.CycleLanguage()
		case settingsDarkMode:
			m.shell.ToggleDarkMode()
			m.applyTheme()
		}
	}
	return m, nil
}

// updateInput forwards msg to the focused input and pushes edits to the panel.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.shell.Active() {
	case shell.TabText:
		m.question, cmd = m.question.Update(msg)
		if m.question.Value() != m.shell.Text.Question() {
			m.shell.Text.SetQuestion(m.question.Value())
		}
	case shell.TabWeather:
		m.city, cmd = m.city.Update(msg)
		if m.city.Value() != m.shell.Weather.City() {
			m.shell.Weather.SetCity(m.city.Value())
		}
	case shell.TabCrop:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleLanguage() {
	switch m.shell.Active() {
	case shell.TabVoice:
		m.shell.Voice.CycleLanguage()
	case shell.TabText:
		m.shell.Text.CycleLanguage()
	case shell.TabWeather:
		m.shell.Weather.CycleLanguage()
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	ctx := m.ctx
	switch m.shell.Active() {
	case shell.TabVoice:
		if m.shell.Voice.Pending() {
			return m, nil
		}
		if m.shell.Voice.Listening() {
			m.shell.Voice.Stop()
			return m, nil
		}
		req := m.shell.Voice.Begin()
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return voiceMsg{outcome: req.Do(ctx)}
		})

	case shell.TabText:
		if m.shell.Text.Pending() {
			return m, nil
		}
		req, err := m.shell.Text.Begin()
		if err != nil {
			return m, m.showNotification(shell.TabText)
		}
		m.answerView = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return answerMsg{outcome: req.Do(ctx)}
		})

	case shell.TabWeather:
		if m.shell.Weather.Pending() {
			return m, nil
		}
		req, err := m.shell.Weather.Begin()
		if err != nil {
			return m, m.showNotification(shell.TabWeather)
		}
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return weatherMsg{outcome: req.Do(ctx)}
		})

	case shell.TabCrop:
		if m.shell.Crop.Pending() {
			return m, nil
		}
		path := strings.TrimSpace(m.imagePath.Value())
		if _, selected := m.shell.Crop.Image(); !selected || path != m.selectedImage {
			m.selectedImage = path
			if err := m.shell.Crop.SelectFile(path); err != nil {
				slog.Warn("failed to select image", "path", path, "error", err)
				return m, m.showNotification(shell.TabCrop)
			}
		}
		req, err := m.shell.Crop.Begin()
		if err != nil {
			return m, m.showNotification(shell.TabCrop)
		}
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return cropMsg{outcome: req.Do(ctx)}
		})
	}
	return m, nil
}

// showNotification starts a toast for the tab's notification, if it has one.
func (m *Model) showNotification(tab shell.Tab) tea.Cmd {
	n, ok := m.notification(tab)
	if !ok {
		return nil
	}
	m.nextToastID++
	id := m.nextToastID
	m.toast = &toast{id: id, tab: tab}
	return tea.Tick(n.Duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m Model) notification(tab shell.Tab) (panel.Notification, bool) {
	switch tab {
	case shell.TabVoice:
		return m.shell.Voice.Notification()
	case shell.TabText:
		return m.shell.Text.Notification()
	case shell.TabCrop:
		return m.shell.Crop.Notification()
	case shell.TabWeather:
		return m.shell.Weather.Notification()
	}
	return panel.Notification{}, false
}

func (m *Model) dismiss(tab shell.Tab) {
	switch tab {
	case shell.TabVoice:
		m.shell.Voice.DismissNotification()
	case shell.TabText:
		m.shell.Text.DismissNotification()
	case shell.TabCrop:
		m.shell.Crop.DismissNotification()
	case shell.TabWeather:
		m.shell.Weather.DismissNotification()
	}
}

func (m Model) anyPending() bool {
	return m.shell.Voice.Pending() || m.shell.Text.Pending() || m.shell.Crop.Pending() || m.shell.Weather.Pending()
}

// Run starts the interface and blocks until the user quits.
func Run(ctx context.Context, s *shell.Shell) error {
	program := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program.Run > %w", err)
	}
	return nil
}
