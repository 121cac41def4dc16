package tui

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/at-ishikawa/kisan/internal/panel"
	"github.com/at-ishikawa/kisan/internal/shell"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	sections := []string{m.renderHeader()}
	if m.settingsOpen {
		sections = append(sections, m.settingsView())
	} else {
		sections = append(sections, m.styles.title.Render(m.shell.Active().Title()), m.bodyView())
	}
	if toast := m.toastView(); toast != "" {
		sections = append(sections, toast)
	}
	if m.settingsOpen {
		sections = append(sections, m.help.View(settingsKeyMap{m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) renderHeader() string {
	name := m.styles.appName.Render(shell.AppName)

	var tabs []string
	for _, tab := range shell.Tabs() {
		if tab == m.shell.Active() {
			tabs = append(tabs, m.styles.activeTab.Render(tab.Title()))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(tab.Title()))
		}
	}
	tabBar := strings.Join(tabs, m.styles.tabSep.Render("│"))
	return m.styles.header.Width(m.width).Render(name + "  " + tabBar)
}

func (m Model) bodyView() string {
	switch m.shell.Active() {
	case shell.TabVoice:
		return m.voiceView()
	case shell.TabText:
		return m.textView()
	case shell.TabCrop:
		return m.cropView()
	case shell.TabWeather:
		return m.weatherView()
	}
	return ""
}

func (m Model) languageLine(code string) string {
	return m.styles.muted.Render(fmt.Sprintf("Language: %s (%s)", language.Name(code), language.NativeName(code)))
}

func (m Model) pendingLine(text string) string {
	return m.spinner.View() + " " + m.styles.muted.Render(text)
}

func (m Model) voiceView() string {
	p := m.shell.Voice
	lines := []string{m.languageLine(p.Language())}
	switch {
	case p.Pending():
		lines = append(lines, m.pendingLine("Starting voice assistant..."))
	case p.Listening():
		lines = append(lines,
			m.styles.label.Render(fmt.Sprintf("● Listening in %s. Say \"stop\" to end the session.", language.Name(p.SessionLanguage()))),
			m.styles.muted.Render("Press enter to stop listening."),
		)
	default:
		lines = append(lines, m.styles.muted.Render("Press enter to start listening."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) textView() string {
	p := m.shell.Text
	lines := []string{m.languageLine(p.Language()), m.question.View()}
	switch {
	case p.Pending():
		lines = append(lines, "", m.pendingLine("Getting answer..."))
	case p.Answer() != "":
		lines = append(lines, "", m.styles.label.Render("Answer"), m.answerView)
	}
	return strings.Join(lines, "\n")
}

func (m Model) cropView() string {
	p := m.shell.Crop
	lines := []string{m.imagePath.View()}
	if image, ok := p.Image(); ok {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("Selected: %s (%s)", image.Filename, image.ContentType)))
	}
	switch {
	case p.Pending():
		lines = append(lines, "", m.pendingLine("Detecting crop..."))
	case p.Detection() != "":
		lines = append(lines, "", m.styles.label.Render("Detected crop: ")+m.styles.value.Render(p.Detection()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) weatherView() string {
	p := m.shell.Weather
	lines := []string{m.languageLine(p.Language()), m.city.View()}
	if p.Pending() {
		lines = append(lines, "", m.pendingLine("Fetching weather..."))
		return strings.Join(lines, "\n")
	}
	w, ok := p.Snapshot()
	if !ok {
		return strings.Join(lines, "\n")
	}

	rows := [][2]string{
		{"Temperature", w.Temperature()},
		{"Feels like", w.FeelsLike()},
		{"Humidity", w.Humidity()},
		{"Pressure", w.Pressure()},
		{"Wind speed", w.WindSpeed()},
	}
	if url := p.IconURL(); url != "" {
		rows = append(rows, [2]string{"Icon", url})
	}
	lines = append(lines, "", m.styles.label.Render("Weather in "+w.Name))
	if w.Description() != "" {
		lines = append(lines, m.styles.muted.Render(w.Description()))
	}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.label.Width(14).Render(row[0]+":"),
			m.styles.value.Render(row[1]),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) settingsView() string {
	darkMode := "off"
	if m.shell.DarkMode() {
		darkMode = "on"
	}
	items := []string{
		fmt.Sprintf("Language:  %s", language.Name(m.shell.Language())),
		fmt.Sprintf("Dark mode: %s", darkMode),
	}
	var lines []string
	lines = append(lines, m.styles.title.Render("Settings"))
	for i, item := range items {
		prefix := "  "
		if i == m.settingsCursor {
			prefix = m.styles.cursor.Render("> ")
		}
		lines = append(lines, prefix+item)
	}
	lines = append(lines, "", m.styles.muted.Render(shell.AppInfo()))
	return m.styles.settings.Render(strings.Join(lines, "\n"))
}

func (m Model) toastView() string {
	if m.toast == nil {
		return ""
	}
	n, ok := m.notification(m.toast.tab)
	if !ok {
		return ""
	}
	style := m.styles.toast
	if n.Variant == panel.VariantDestructive {
		style = m.styles.errorToast
	}
	return style.Render(m.styles.label.Render(n.Title) + "\n" + n.Description)
}
