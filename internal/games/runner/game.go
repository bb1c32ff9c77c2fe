// Package runner implements the stick runner as a registry game: a timed
// obstacle course with seeded levels, retries and level advancement.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/level"
	"github.com/vovakirdan/stickrun/internal/registry"
)

// Mode IDs.
const (
	AutoRunID  = "runner"
	FreeRunID  = "runner_free"
	hudRows    = 1 // Rows above the scene
	groundRows = 2 // Rows of ground below the ground line
)

// Equipment modes.
const (
	EquipmentNone   = "none"
	EquipmentTennis = "tennis"
)

// SinkFactory builds the result sink of a player's session.
type SinkFactory func(player, equipment string) level.ResultSink

// configPath stores the custom config path set via CLI
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sinkFactory      SinkFactory
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config values.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetSinkFactory sets where won levels are recorded. Nil disables recording.
// The factory is called on every Reset with the player and equipment.
func SetSinkFactory(f SinkFactory) {
	sinkFactory = f
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game is a runner session bound to a terminal screen.
type Game struct {
	id      string
	autoRun bool
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	equip   string

	session *level.Session
	router  *core.InputRouter
	camera  Camera

	paused    bool
	lastEvent level.Event
	eventTick int // Tick of lastEvent
	tick      int
}

// New creates a runner. autoRun keeps the body running forward by itself.
func New(autoRun bool) *Game {
	id := FreeRunID
	if autoRun {
		id = AutoRunID
	}
	return &Game{id: id, autoRun: autoRun}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.autoRun {
		return "Stick Runner"
	}
	return "Stick Runner (free run)"
}

// Reset loads the configuration and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.Close()
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	cfg.Movement.AutoRun = g.autoRun
	g.equip = EquipmentNone
	if runtime.Equipment == EquipmentTennis {
		g.equip = EquipmentTennis
	}
	cfg.Tennis.Enabled = g.equip == EquipmentTennis
	g.cfg = cfg

	var sink level.ResultSink
	if sinkFactory != nil {
		sink = sinkFactory(runtime.PlayerName, g.equip)
	}

	g.camera = NewCamera(cfg.Render, runtime.ScreenW)
	g.router = core.NewInputRouter(cfg.Render.HoldTicks)
	g.session = level.NewSession(level.Options{
		Config:     cfg,
		StartLevel: runtime.StartLevel,
		GroundY:    g.groundY(runtime.ScreenH),
		Sink:       sink,
		Logger:     logger,
	})
	g.paused = false
	g.lastEvent = level.EventNone
	g.tick = 0
	g.eventTick = 0
}

// groundY returns the world ground line for a screen height.
func (g *Game) groundY(screenH int) float64 {
	row := max(screenH-groundRows, hudRows+1)
	return float64(row) * g.cfg.Render.UnitsPerRow
}

// Resize adapts the scene to a new screen size without restarting the level.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.camera = NewCamera(g.cfg.Render, width)
	if g.session != nil {
		g.session.Resize(g.groundY(height))
	}
}

// Close stops the current session so pending retries and advances never fire.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Close()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Finished() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.router.Reset()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if in.Has(core.ActionRestart) {
		g.session.Restart()
		g.router.Reset()
		g.note(level.EventNone)
		return core.StepResult{State: g.State()}
	}
	won := g.session.Attempt().State() == level.StateWon
	if (in.Has(core.ActionConfirm) || (won && in.Has(core.ActionJump))) && g.session.Continue() {
		g.router.Reset()
		g.note(level.EventAdvance)
		return core.StepResult{State: g.State()}
	}

	intent := g.router.Route(in)
	if ev := g.session.Tick(intent, g.runtime.TickMs()); ev != level.EventNone {
		g.note(ev)
		if ev == level.EventFailed || ev == level.EventWon {
			g.router.Reset()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) note(ev level.Event) {
	g.lastEvent = ev
	g.eventTick = g.tick
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.session.BestNetMs()),
		Level:    g.session.Level(),
		Status:   g.session.Attempt().State().String(),
		GameOver: g.session.Finished(),
		Paused:   g.paused,
	}
}

// Session exposes the running session to hosts and tests.
func (g *Game) Session() *level.Session {
	return g.session
}

// Register the modes with the registry
func init() {
	registry.Register(AutoRunID, func() registry.Game {
		return New(true)
	})
	registry.Register(FreeRunID, func() registry.Game {
		return New(false)
	})
}
