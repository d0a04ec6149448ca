package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	healthStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	enemyHPStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	emptyBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#40A9FF"))
	frozenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87E8DE"))
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// View implements tea.Model
func (m *Model) View() string {
	b := m.battle
	var sections []string

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCombatant(m.character.Name, fmt.Sprintf("Lv %d %s", m.character.Level, m.character.ClassDefinition().Name),
			b.PlayerHealth, m.character.MaxHealth, healthStyle),
		"    ",
		m.renderCombatant(b.Enemy.Name, m.renderPhase(), b.Enemy.Health, b.Enemy.MaxHealth, enemyHPStyle),
	))

	if m.done {
		sections = append(sections, titleStyle.Render(m.result))
	} else {
		if b.Challenge != nil {
			sections = append(sections, promptStyle.Render(b.Challenge.Prompt()))
			if b.Challenge.Strict {
				sections = append(sections, errorStyle.Render("exact form required"))
			}
		}
		sections = append(sections, m.renderTimer(), m.input.View())
	}

	if m.feedback != "" {
		sections = append(sections, m.feedback)
	}
	if m.errText != "" {
		sections = append(sections, errorStyle.Render(m.errText))
	}
	if len(m.log) > 0 {
		sections = append(sections, logStyle.Render(strings.Join(m.log, "\n")))
	}
	sections = append(sections, footerStyle.Render(m.renderHelp()))

	content := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderCombatant(name, subtitle string, health, maxHealth int, style lipgloss.Style) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(name),
		subtitle,
		renderBar(health, maxHealth, style)+fmt.Sprintf(" %d/%d", health, maxHealth),
	)
}

func (m *Model) renderPhase() string {
	b := m.battle
	if !b.Enemy.IsBoss {
		return ""
	}
	return fmt.Sprintf("Boss phase %d", b.Phase)
}

func (m *Model) renderTimer() string {
	b := m.battle
	line := fmt.Sprintf("%ds left  combo %d", b.TimeRemaining, b.Combo)
	if b.Frozen {
		return frozenStyle.Render(line + "  (frozen)")
	}
	return timerStyle.Render(line)
}

func (m *Model) renderHelp() string {
	if m.done {
		return "enter: continue"
	}
	return "enter: answer  ctrl+f: freeze  esc: flee"
}

// renderBar draws current/max as a fixed width bar
func renderBar(current, maxValue int, style lipgloss.Style) string {
	filled := 0
	if maxValue > 0 && current > 0 {
		filled = current * barWidth / maxValue
		if filled == 0 {
			filled = 1
		}
	}
	if filled > barWidth {
		filled = barWidth
	}
	return style.Render(strings.Repeat("█", filled)) + emptyBarStyle.Render(strings.Repeat("░", barWidth-filled))
}
