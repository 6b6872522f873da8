package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

// maxReplays caps how many journals the browser loads per scene.
const maxReplays = 100

// ReplaySource lists stored journals.
type ReplaySource interface {
	Replays(sceneID string, limit int) ([]storage.ReplayInfo, error)
}

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Select    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored journals.
// The first tab lists every scene.
type ReplaysModel struct {
	tabs      []registry.GameInfo
	tab       int
	source    ReplaySource
	replays   []storage.ReplayInfo
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	width     int
	height    int
	selected  int64
	quitting  bool
	goingBack bool
}

// NewReplaysModel creates a browser over source.
func NewReplaysModel(source ReplaySource, width, height int) ReplaysModel {
	tabs := append([]registry.GameInfo{{ID: "", Title: "All"}}, registry.List()...)
	m := ReplaysModel{
		tabs:   tabs,
		source: source,
		keys:   DefaultReplaysKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Scene", Width: 12},
		{Title: "Seed", Width: 20},
		{Title: "Length", Width: 8},
		{Title: "Recorded", Width: 14},
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

// load fetches the journals of the current tab.
func (m *ReplaysModel) load() {
	m.replays, m.loadErr = nil, nil
	if m.source != nil {
		m.replays, m.loadErr = m.source.Replays(m.tabs[m.tab].ID, maxReplays)
	}
	m.table.SetRows(ReplayRows(m.replays))
	m.table.GotoTop()
}

// ReplayRows formats journals as table rows.
func ReplayRows(replays []storage.ReplayInfo) []table.Row {
	rows := make([]table.Row, len(replays))
	for i, r := range replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.SceneID,
			strconv.FormatInt(r.Seed, 10),
			r.Duration().Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.replays) {
				m.selected = m.replays[i].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(ReplayRows(m.replays))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var tabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

var activeTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Italic(true).
	Padding(2, 4)

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack || m.selected != 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + t.Title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = emptyStyle.Render(fmt.Sprintf("Could not load replays:\n%v", m.loadErr))
	case len(m.replays) == 0:
		body = emptyStyle.Render("No replays recorded yet.\nPlay with --record to keep one!")
	default:
		body = m.table.View()
	}
	b.WriteString(centerText(boxStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen replay id, or 0.
func (m ReplaysModel) Selected() int64 { return m.selected }

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ReplaysModel) IsGoingBack() bool { return m.goingBack }

// RunReplays runs the browser. It returns the chosen replay id (0 for none)
// and whether the user asked to go back rather than quit.
func RunReplays(source ReplaySource, width, height int) (id int64, goBack bool, err error) {
	p := tea.NewProgram(NewReplaysModel(source, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	m, ok := final.(ReplaysModel)
	if !ok {
		return 0, false, nil
	}
	return m.Selected(), m.IsGoingBack(), nil
}
