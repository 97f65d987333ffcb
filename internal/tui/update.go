package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/tui/components/daylist"
)

const (
	headerHeight = 4
	footerHeight = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.help.Width = msg.Width - h
		m.meter.Width = max(msg.Width-h-2, 10)
		m.days.SetSize(msg.Width-h, max(msg.Height-v-headerHeight-footerHeight, 3))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Mood):
			m.cycleMood()
			return m, nil
		}

	case daylist.CompleteDayMsg:
		m.completeDay(msg)
		return m, nil

	case daylist.LockedDayMsg:
		m.warning = ""
		m.status = fmt.Sprintf("%s %s opens on February %d", msg.Day.Icon, msg.Day.Name, msg.Day.ID)
		return m, nil
	}

	m.days, cmd = m.days.Update(msg)
	return m, cmd
}

func (m *Model) completeDay(msg daylist.CompleteDayMsg) {
	m.warning = ""
	credited, err := m.store.CreditDay(msg.Day.ID, constants.DefaultCredit)
	if err != nil && !apperrors.IsWarning(err) {
		m.status = apperrors.Format(err)
		return
	}
	if err != nil {
		m.warning = apperrors.FormatWarning(err)
	}

	if credited {
		m.status = fmt.Sprintf("%s %s completed. Love meter %.1f%%", msg.Day.Icon, msg.Day.Name, m.store.Record().LoveMeter)
	} else {
		m.status = fmt.Sprintf("%s %s was already completed this session", msg.Day.Icon, msg.Day.Name)
	}
	m.refresh()
}

func (m *Model) cycleMood() {
	m.warning = ""
	current := m.store.Record().Mood
	next := constants.Moods[0]
	for i, mood := range constants.Moods {
		if mood == current {
			next = constants.Moods[(i+1)%len(constants.Moods)]
			break
		}
	}

	if err := m.store.SetMood(next); err != nil {
		if !apperrors.IsWarning(err) {
			m.status = apperrors.Format(err)
			return
		}
		m.warning = apperrors.FormatWarning(err)
	}
	m.status = fmt.Sprintf("Mood set to %s", next)
}
