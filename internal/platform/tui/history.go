package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-brush/internal/registry"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

// maxHistory is the number of selections listed per series.
const maxHistory = 50

// allSeries is the filter tab that lists every series.
const allSeries = ""

// HistoryModel is the Bubble Tea model for browsing saved selections.
type HistoryModel struct {
	filters    []string // series IDs to filter by; allSeries first
	titles     map[string]string
	cursor     int
	store      *storage.Store
	selections []storage.Selection
	err        error
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := []string{allSeries}
	titles := map[string]string{allSeries: "All"}
	for _, s := range registry.List() {
		filters = append(filters, s.ID)
		titles[s.ID] = s.Title
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		filters: filters,
		titles:  titles,
		store:   store,
		keys:    DefaultHistoryKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Series", Width: 8},
		{Title: "Session", Width: 12},
		{Title: "X", Width: 13},
		{Title: "Y", Width: 13},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the session column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[2].Width += min(spare, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the selections for the current filter.
func (m *HistoryModel) load() {
	m.selections = nil
	m.err = nil
	if m.store != nil {
		m.selections, m.err = m.store.RecentSelections(m.filters[m.cursor], maxHistory)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded selections.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.selections))
	for i, s := range m.selections {
		rows[i] = table.Row{
			shortID(s.SelectionID),
			s.Series,
			s.Session,
			fmt.Sprintf("%.0f..%.0f", s.Start.X, s.End.X),
			fmt.Sprintf("%.0f..%.0f", s.Start.Y, s.End.Y),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSeries):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevSeries):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.filters) - 1
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("SELECTIONS - " + m.titles[m.Filter()]))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the series filter tabs.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, id := range m.filters {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(m.titles[id])
		} else {
			tabs[i] = tabStyle.Render(" " + m.titles[id] + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table, an error, or the empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No selection database.")
	case m.err != nil:
		return emptyStyle.Render("Could not load selections:\n" + m.err.Error())
	case len(m.selections) == 0:
		return emptyStyle.Render("No selections recorded yet.\nDrag on the stage to make one!")
	}
	return m.table.View()
}

// Filter returns the series ID being listed, or "" for all series.
func (m HistoryModel) Filter() string {
	return m.filters[m.cursor]
}

// Selections returns the selections currently listed.
func (m HistoryModel) Selections() []storage.Selection {
	return m.selections
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
