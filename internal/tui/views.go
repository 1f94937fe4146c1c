package tui

import (
	"strings"

	"github.com/Veraticus/salary-oracle/internal/cli"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("💰 Salary Predictor"),
		m.theme.ModeBadge.Render(strings.ToUpper(string(m.mode))) + " " +
			m.theme.Subtitle.Render("model"),
		"",
		m.renderFields(),
		"",
		m.renderStatus(),
		m.renderHelp(),
	}

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderFields() string {
	lines := make([]string, 0, len(m.visible()))
	for i, id := range m.visible() {
		f := m.fields[id]

		cursor := "  "
		label := m.theme.Label.Render(f.label)
		if i == m.focus {
			cursor = m.theme.Selected.Render("> ")
			label = m.theme.Label.Inherit(m.theme.Selected).Render(f.label)
		}

		var value string
		if f.isChoice() {
			value = m.theme.Choice.Render("‹ " + f.value() + " ›")
		} else {
			value = f.input.View()
		}
		lines = append(lines, cursor+label+value)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.running:
		return m.spinner.View() + m.theme.StatusPending.Render(" Predicting...")
	case m.err != nil:
		return m.theme.StatusError.Render(predict.FormatError(m.err))
	case m.result != nil && m.result.err != nil:
		return m.theme.StatusError.Render(predict.FormatError(m.result.err))
	case m.result != nil:
		chartWidth := max(m.width-40, 10)
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.StatusSuccess.Render(predict.FormatSalary(m.result.salary)),
			"",
			cli.RenderSalaryChart(m.result.raw.Position, m.result.salary, chartWidth),
		)
	default:
		return m.theme.StatusPending.Render("Fill in the form and press enter")
	}
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return "\n" + m.theme.Help.Render(strings.Join(parts, " • "))
}
