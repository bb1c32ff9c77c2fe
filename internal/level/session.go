package level

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
)

// Event is a session-level change reported by Tick.
type Event int

const (
	EventNone Event = iota
	EventStarted
	EventWon
	EventFailed
	EventRetry   // A failed level restarted
	EventAdvance // The next level began
	EventFinished
)

// Options configure a session.
type Options struct {
	Config     config.RunnerConfig
	StartLevel int
	GroundY    float64          // 0 uses Config.World.GroundY()
	Sink       ResultSink       // Optional, can be nil
	Logger     *log.Logger      // Optional, nil discards
	Now        func() time.Time // Wall clock for result timestamps
}

// Session plays consecutive levels on one clock. It retries failed levels,
// advances after wins and publishes every win to the result sink.
// A session is driven by a single goroutine.
type Session struct {
	cfg     config.RunnerConfig
	groundY float64
	sink    ResultSink
	logger  *log.Logger
	now     func() time.Time

	sched    *Scheduler
	attempt  *Attempt
	clockMs  float64
	results  []Result
	pending  TaskID // Retry or advance of the current attempt
	finished bool
	event    Event // Set by scheduled tasks during a tick
}

// NewSession creates a session at opts.StartLevel (1 if unset).
func NewSession(opts Options) *Session {
	cfg := opts.Config
	cfg.Validate()

	s := &Session{
		cfg:     cfg,
		groundY: opts.GroundY,
		sink:    opts.Sink,
		logger:  opts.Logger,
		now:     opts.Now,
		sched:   NewScheduler(),
	}
	if s.groundY <= 0 {
		s.groundY = cfg.World.GroundY()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}

	start := opts.StartLevel
	if start < 1 {
		start = 1
	}
	s.begin(start)
	return s
}

func (s *Session) begin(index int) {
	if s.attempt != nil {
		s.sched.Retire(s.attempt.id)
	}
	s.attempt = newAttempt(s.sched.Begin(), index, s.cfg, s.groundY)
	s.pending = 0
	s.logger.Debug("attempt ready", "level", s.attempt.index, "attempt", s.attempt.id, "obstacles", s.attempt.field.Len())
}

// Tick advances the session by dtMs, clamped to the configured maximum step.
// Order: due scheduled tasks, then the attempt pipeline.
func (s *Session) Tick(in core.Intent, dtMs float64) Event {
	dtMs = core.ClampF(dtMs, 0, s.cfg.World.MaxStepMs)
	s.clockMs += dtMs
	s.event = EventNone

	s.sched.Advance(s.clockMs)
	if s.finished {
		return s.event
	}

	a := s.attempt
	switch a.step(in, s.clockMs, dtMs) {
	case OutcomeStarted:
		s.logger.Info("level started", "level", a.index, "attempt", a.id)
		s.event = EventStarted
	case OutcomeWon:
		s.onWin(a)
		s.event = EventWon
	case OutcomeFailed:
		s.onFail(a)
		s.event = EventFailed
	}
	return s.event
}

func (s *Session) onWin(a *Attempt) {
	r, ok := a.finish(s.now().UnixMilli())
	if !ok {
		return
	}
	s.results = append(s.results, r)
	s.logger.Info("level won",
		"level", r.LevelIndex,
		"gross_ms", r.GrossMs,
		"bonus_ms", r.BonusMs,
		"net_ms", r.NetMs,
		"balls", r.BallsHit,
		"credits", a.life.bonus.Credits(),
	)
	if s.sink != nil {
		if err := s.sink.SaveResult(r); err != nil {
			s.logger.Error("failed to save result", "level", r.LevelIndex, "err", err)
		}
	}
	s.pending = s.sched.After(a.id, s.cfg.Lifecycle.WinAdvanceDelayMs, "advance", func() { s.advance(a) })
}

func (s *Session) onFail(a *Attempt) {
	s.logger.Info("level failed", "level", a.index, "elapsed_ms", int64(a.life.ElapsedMs()))
	s.pending = s.sched.After(a.id, s.cfg.Lifecycle.FailRetryDelayMs, "retry", func() { s.retry(a) })
}

func (s *Session) retry(a *Attempt) {
	if a != s.attempt || !a.life.Restart() {
		return
	}
	s.logger.Info("retrying level", "level", a.index)
	s.begin(a.index)
	s.event = EventRetry
}

func (s *Session) advance(a *Attempt) {
	if a != s.attempt || a.life.State() != StateWon || !a.life.Restart() {
		return
	}
	if last := s.cfg.Lifecycle.MaxLevel; last > 0 && a.index >= last {
		s.sched.Retire(a.id)
		s.finished = true
		s.logger.Info("all levels complete", "levels", last)
		s.event = EventFinished
		return
	}
	s.logger.Info("advancing", "from", a.index, "to", a.index+1)
	s.begin(a.index + 1)
	s.event = EventAdvance
}

// Continue advances a won attempt immediately instead of waiting for the
// delay. It reports whether it had any effect.
func (s *Session) Continue() bool {
	if s.finished || s.attempt.life.State() != StateWon {
		return false
	}
	s.sched.Cancel(s.pending)
	s.advance(s.attempt)
	return true
}

// Restart drops the current attempt and starts the same level over.
func (s *Session) Restart() {
	if s.finished {
		return
	}
	s.sched.Cancel(s.pending)
	s.begin(s.attempt.index)
}

// Resize re-anchors the current attempt to a new ground line without
// resetting it. Later attempts use the new line as well.
func (s *Session) Resize(groundY float64) {
	if groundY <= 0 || groundY == s.groundY {
		return
	}
	s.groundY = groundY
	s.attempt.resize(groundY)
}

// Close retires the current attempt so no scheduled task fires afterwards.
func (s *Session) Close() {
	s.sched.Retire(s.attempt.id)
	s.finished = true
}

// Attempt returns the current attempt.
func (s *Session) Attempt() *Attempt { return s.attempt }

// Level returns the current level index.
func (s *Session) Level() int { return s.attempt.index }

// ClockMs returns the session clock.
func (s *Session) ClockMs() float64 { return s.clockMs }

// Finished reports whether the session is over.
func (s *Session) Finished() bool { return s.finished }

// Config returns the effective configuration.
func (s *Session) Config() config.RunnerConfig { return s.cfg }

// Pending returns the names of scheduled tasks.
func (s *Session) Pending() []string { return s.sched.Pending() }

// Results returns the results of the session so far.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Best returns the best result of the session in leaderboard order.
func (s *Session) Best() (Result, bool) {
	if len(s.results) == 0 {
		return Result{}, false
	}
	best := s.results[0]
	for _, r := range s.results[1:] {
		if Better(r, best) {
			best = r
		}
	}
	return best, true
}

// BestNetMs returns the best net time of the session, or 0 if nothing was won.
func (s *Session) BestNetMs() int64 {
	best, _ := s.Best()
	return best.NetMs
}
