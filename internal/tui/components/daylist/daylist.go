package daylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heartline/internal/calendar"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

// CompleteDayMsg asks the parent model to credit a day
type CompleteDayMsg struct {
	Day models.Day
}

// LockedDayMsg is sent when the selected day has not opened yet
type LockedDayMsg struct {
	Day models.Day
}

type Item struct {
	Day      models.Day
	Locked   bool
	Current  bool
	Credited bool
	Memory   bool
}

func (i Item) Title() string {
	title := i.Day.Icon + " " + i.Day.Name
	if i.Locked {
		title = "🔒 " + i.Day.Name
	}
	if i.Current {
		title += " 👈"
	}
	return title
}

func (i Item) Description() string {
	switch {
	case i.Locked:
		return fmt.Sprintf("Opens on February %d", i.Day.ID)
	case i.Credited:
		desc := "Completed this session"
		if i.Memory {
			desc += " | memory saved"
		}
		return desc
	case i.Memory:
		return "Memory saved | enter to complete"
	default:
		return "Press enter to complete"
	}
}

func (i Item) FilterValue() string { return i.Day.Name }

// Status is what the list needs to know about a day beyond the calendar
type Status struct {
	Credited func(day int) bool
	Memories map[int]string
}

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "complete day"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	window calendar.Window
}

func New(window calendar.Window, status Status, width, height int) Model {
	l := list.New(items(window, status), list.NewDefaultDelegate(), width, height)
	l.Title = "Valentine Week"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}

	l.Select(window.CurrentDay - constants.FirstDay)
	return Model{list: l, keys: keys, window: window}
}

func items(window calendar.Window, status Status) []list.Item {
	out := make([]list.Item, len(models.Days))
	for i, d := range models.Days {
		item := Item{
			Day:     d,
			Locked:  !window.IsUnlocked(d.ID),
			Current: d.ID == window.CurrentDay,
		}
		if status.Credited != nil {
			item.Credited = status.Credited(d.ID)
		}
		item.Memory = status.Memories[d.ID] != ""
		out[i] = item
	}
	return out
}

// Refresh rebuilds the items while keeping the cursor in place
func (m *Model) Refresh(status Status) {
	idx := m.list.Index()
	m.list.SetItems(items(m.window, status))
	m.list.Select(idx)
}

// Selected returns the highlighted item
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Complete) {
		if i, ok := m.Selected(); ok {
			if i.Locked {
				return m, func() tea.Msg { return LockedDayMsg{Day: i.Day} }
			}
			return m, func() tea.Msg { return CompleteDayMsg{Day: i.Day} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
