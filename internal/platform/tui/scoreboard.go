package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/stickrun/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 22  // Width of level list sidebar
	maxScores          = 100 // Max results to load
)

// Equipment filters of the board, "" shows every mode.
var boardFilters = []string{"", storage.EquipmentNone, storage.EquipmentTennis}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Equipment key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Equipment, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Equipment, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/right", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/left", "prev level"),
		),
		Equipment: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "equipment"),
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

// ScoreboardModel is the Bubble Tea model for the best-times board.
type ScoreboardModel struct {
	levels      []int           // Levels with recorded results
	bests       map[int]int64   // Fastest net time per level
	levelCursor int             // Currently selected level index
	filter      int             // Index into boardFilters
	store       *storage.Store  // Result storage
	entries     []storage.Entry // Board of the selected level and filter
	stats       *storage.LevelStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show level list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		bests:       make(map[int]int64),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		//nolint:errcheck // An unreadable store shows an empty board
		m.levels, _ = store.PlayedLevels()
		for _, lv := range m.levels {
			if stats, err := store.GetLevelStats(lv); err == nil {
				m.bests[lv] = stats.BestNetMs
			}
		}
	}

	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table sized to the screen.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Mode", Width: 7},
		{Title: "Time", Width: 10},
		{Title: "Gap", Width: 10},
		{Title: "Balls", Width: 6},
		{Title: "When", Width: 14},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if spare := tableWidth - 78; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, stats, help
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

// level returns the selected level, 0 when nothing was played.
func (m ScoreboardModel) level() int {
	if len(m.levels) == 0 {
		return 0
	}
	return m.levels[m.levelCursor]
}

// reload reads the board and stats of the selected level.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats = nil, nil
	if lv := m.level(); lv > 0 && m.store != nil {
		if entries, err := m.store.TopForLevel(lv, maxScores); err == nil {
			m.entries = filterEntries(entries, boardFilters[m.filter])
		}
		if stats, err := m.store.GetLevelStats(lv); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// filterEntries keeps the entries recorded with equipment, all for "".
func filterEntries(entries []storage.Entry, equipment string) []storage.Entry {
	if equipment == "" {
		return entries
	}
	kept := make([]storage.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Equipment == equipment {
			kept = append(kept, e)
		}
	}
	return kept
}

// updateTableRows fills the table from the current entries.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		mode := "-"
		if e.Equipment == storage.EquipmentTennis {
			mode = "tennis"
		}
		balls := "-"
		if e.BallsTotal > 0 {
			balls = fmt.Sprintf("%d/%d", e.BallsHit, e.BallsTotal)
		}
		gap := ""
		if i > 0 {
			gap = storage.FormatDelta(e.NetMs - m.entries[0].NetMs)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Player,
			mode,
			storage.FormatMs(e.NetMs),
			gap,
			balls,
			humanize.Time(e.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.levelCursor = (m.levelCursor + delta + len(m.levels)) % len(m.levels)
	m.reload()
}

func (m *ScoreboardModel) cycleFilter() {
	m.filter = (m.filter + 1) % len(boardFilters)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.NextLevel):
			m.moveLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.moveLevel(-1)
			return m, nil
		case key.Matches(msg, m.keys.Equipment):
			m.cycleFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// filterLabel names the equipment filter for the title.
func filterLabel(equipment string) string {
	switch equipment {
	case storage.EquipmentNone:
		return "no equipment"
	case storage.EquipmentTennis:
		return "tennis"
	}
	return "all modes"
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "BEST TIMES"
	if lv := m.level(); lv > 0 {
		title = fmt.Sprintf("BEST TIMES - Level %d - %s", lv, filterLabel(boardFilters[m.filter]))
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	board := m.boardPanel()
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", board))
	} else {
		if lv := m.level(); lv > 0 {
			b.WriteString(centerText(fmt.Sprintf("< Level %d of %d >", m.levelCursor+1, len(m.levels)), m.width))
			b.WriteString("\n")
		}
		b.WriteString(board)
	}
	b.WriteString("\n")

	if s := m.stats; s != nil && s.Runs > 0 {
		statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		line := fmt.Sprintf("%s runs by %s players, average %s, %s balls returned",
			humanize.Comma(int64(s.Runs)), humanize.Comma(int64(s.Players)),
			storage.FormatMs(int64(s.AvgNetMs)), humanize.Comma(s.BallsHit))
		b.WriteString(statsStyle.Render(line))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// sidebar lists the played levels with their fastest time.
func (m ScoreboardModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Level  Best\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, lv := range m.levels {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(line.Render(fmt.Sprintf("%sL%-4d %s", cursor, lv, storage.FormatMs(m.bests[lv]))))
		sb.WriteString("\n")
	}

	return style.Render(sb.String())
}

// boardPanel renders the table, or a hint when there is nothing to show.
func (m ScoreboardModel) boardPanel() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No runs recorded yet.\nFinish a level to set a time!"
		if len(m.levels) > 0 {
			msg = "No runs in this mode.\nPress e to switch equipment."
		}
		return style.Render(empty.Render(msg))
	}

	return style.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
