package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/registry"
)

// fakeGame records what the model drives into it.
type fakeGame struct {
	resets  int
	resized [2]int
	closed  bool
	frames  []core.InputFrame
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState        { return core.GameState{} }
func (g *fakeGame) Resize(width, height int)     { g.resized = [2]int{width, height} }
func (g *fakeGame) Close()                       { g.closed = true }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a := range in.Actions {
		cp.Set(a)
	}
	g.frames = append(g.frames, cp)
	return core.StepResult{}
}

var (
	_ registry.Resizer = (*fakeGame)(nil)
	_ registry.Closer  = (*fakeGame)(nil)
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig())
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v, expected [100 30]", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelInputReachesStep(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	if len(g.frames) != 2 {
		t.Fatalf("Step called %d times, expected 2", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionJump) || !g.frames[0].Has(core.ActionJumpRelease) {
		t.Errorf("first frame = %v, expected jump and release", g.frames[0].Actions)
	}
	if len(g.frames[1].Actions) != 0 {
		t.Errorf("second frame = %v, expected empty", g.frames[1].Actions)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	t.Run("back", func(t *testing.T) {
		g := &fakeGame{}
		m := update(t, NewModel(g, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyEsc})
		if !m.BackToMenu() || !m.IsQuitting() {
			t.Error("esc should leave the game back to the menu")
		}
		if !g.closed {
			t.Error("leaving should close the game")
		}
	})

	t.Run("quit", func(t *testing.T) {
		g := &fakeGame{}
		m := update(t, NewModel(g, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		if m.BackToMenu() || !m.IsQuitting() {
			t.Error("q should quit without going back")
		}
		if m.View() != "" {
			t.Error("View() should be empty after quit")
		}
	})
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRunner)
	s.DrawTextColor(2, 1, "cd", core.ColorFail)

	out := RenderScreen(s)
	plain := stripANSI(out)
	if plain != "ab  \n  cd" {
		t.Errorf("RenderScreen() text = %q, expected %q", plain, "ab  \n  cd")
	}
}

// stripANSI removes CSI escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
