package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	meter "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heartline/internal/calendar"
	"github.com/julianstephens/heartline/internal/progress"
	"github.com/julianstephens/heartline/internal/tui/components/daylist"
)

type Model struct {
	store  *progress.Store
	window calendar.Window

	keys  KeyMap
	help  help.Model
	days  daylist.Model
	meter meter.Model

	status   string
	warning  string
	width    int
	height   int
	quitting bool
}

func NewModel(store *progress.Store, window calendar.Window) Model {
	m := Model{
		store:  store,
		window: window,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		meter:  meter.New(meter.WithDefaultGradient(), meter.WithoutPercentage()),
	}
	m.days = daylist.New(window, m.dayStatus(), 0, 0)
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) dayStatus() daylist.Status {
	return daylist.Status{
		Credited: m.store.IsCredited,
		Memories: m.store.Record().Memories,
	}
}

func (m *Model) refresh() {
	m.days.Refresh(m.dayStatus())
}
