package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/heartline/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.days.View(),
		m.viewStatus(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	rec := m.store.Record()

	title := headerStyle.Render(fmt.Sprintf("%s ♥ %s", rec.UserName, rec.PartnerName))
	if !rec.IsOnboarded() {
		title = headerStyle.Render("Valentine Week")
	}
	meta := subtleStyle.Render(fmt.Sprintf("streak %d · mood %s · %s", rec.Streak, rec.Mood, m.store.Today()))
	bar := m.meter.ViewAs(rec.LoveMeter / constants.MaxLoveMeter)
	meterLine := fmt.Sprintf("%s %5.1f%%", bar, rec.LoveMeter)

	return lipgloss.JoinVertical(lipgloss.Left, title, meta, meterLine, "")
}

func (m Model) viewStatus() string {
	if m.warning != "" {
		return warningStyle.Render(m.warning)
	}
	return statusStyle.Render(m.status)
}
