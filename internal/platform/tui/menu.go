package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/registry"
	"github.com/vovakirdan/stickrun/internal/storage"
)

// Equipment modes offered by the menu.
var menuEquipment = []string{storage.EquipmentNone, storage.EquipmentTennis}

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	Equipment string
	NextLevel int // First unfinished level of the player, 0 if unknown
}

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	maxLevel       int // 0 for endless
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a mode
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model with one item per mode and
// equipment. maxLevel bounds the resume level lookup.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, maxLevel int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)*len(menuEquipment))

	for _, g := range games {
		for _, eq := range menuEquipment {
			item := MenuItem{
				GameID:    g.ID,
				Title:     g.Title,
				Equipment: eq,
			}
			if store != nil {
				if next, err := store.NextLevelFor(cfg.PlayerName, eq, maxLevel); err == nil {
					item.NextLevel = next
				}
			}
			items = append(items, item)
		}
	}

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		maxLevel:  maxLevel,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("S T I C K   R U N", m.width)))
	b.WriteString("\n\n")

	levels := "endless levels"
	if m.maxLevel > 0 {
		levels = fmt.Sprintf("levels 1-%d", m.maxLevel)
	}
	b.WriteString(centerText(fmt.Sprintf("Runner: %s  |  %s", m.config.PlayerName, levels), m.width))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(centerText(menuRow("  ", "Mode", "Equipment", "Resume"), m.width)))
	b.WriteString("\n")
	for i, item := range m.items {
		resume := "-"
		if item.NextLevel > 0 {
			resume = fmt.Sprintf("level %d", item.NextLevel)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(centerText(menuRow("> ", item.Title, item.Equipment, resume), m.width)))
		} else {
			b.WriteString(centerText(menuRow("  ", item.Title, item.Equipment, resume), m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Run  |  Tab: Best times  |  Q: Quit", m.width))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText("In a run: Space jump  S duck  J swing  P pause  Esc menu", m.width)))
	b.WriteString("\n")

	return b.String()
}

// menuRow lays out one fixed-width row of the mode list.
func menuRow(cursor, mode, equipment, resume string) string {
	return fmt.Sprintf("%s%-26s %-10s %-9s", cursor, mode, equipment, resume)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Equipment       string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, maxLevel int) (MenuResult, error) {
	model := NewMenuModel(store, cfg, maxLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
		result.Equipment = m.Selected().Equipment
		if next := m.Selected().NextLevel; next > 0 {
			result.Config.StartLevel = next
		}
	} else {
		result.Quit = true
	}

	return result, nil
}
