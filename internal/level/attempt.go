package level

import (
	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/obstacle"
	"github.com/vovakirdan/stickrun/internal/physics"
	"github.com/vovakirdan/stickrun/internal/tennis"
	"github.com/vovakirdan/stickrun/internal/track"
)

// Outcome is what a single attempt step changed.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeStarted
	OutcomeWon
	OutcomeFailed
)

// Attempt is one try at a level. It owns the body and everything the body
// collides with.
type Attempt struct {
	id     AttemptID
	index  int
	cfg    config.RunnerConfig
	track  track.Track
	field  *obstacle.Field
	court  *tennis.Court
	ground *physics.Ground
	body   *physics.Body
	ctrl   *physics.Controller
	assist *Assist
	goal   core.Box
	life   Lifecycle
	result *Result
}

func newAttempt(id AttemptID, index int, cfg config.RunnerConfig, groundY float64) *Attempt {
	tr := track.Generate(track.ParamsForIndex(index))
	ground := physics.NewGround(groundY)

	a := &Attempt{
		id:     id,
		index:  tr.Params.Index,
		cfg:    cfg,
		track:  tr,
		field:  obstacle.Build(groundY, tr.Params, tr.Positions, obstacle.OptionsFrom(cfg.Obstacles), nil),
		court:  tennis.New(cfg.Tennis, tr.Params.Index, tr.Params.Seed, groundY),
		ground: ground,
		body:   physics.NewBody(cfg.Body, groundY),
		ctrl:   physics.NewController(cfg.Movement, cfg.Body, ground),
	}
	if cfg.Movement.AutoJumpAssist {
		a.assist = NewAssist(cfg.Movement)
	}
	a.placeGoal(groundY)
	return a
}

func (a *Attempt) placeGoal(groundY float64) {
	lc := a.cfg.Lifecycle
	a.goal = core.BoxFromCenter(a.track.GoalX, groundY-lc.GoalLift, lc.GoalWidth, lc.GoalHeight)
}

// step runs the per-tick pipeline: lifecycle clock, start on first input,
// movement, side activity, then goal and obstacle collisions.
func (a *Attempt) step(in core.Intent, nowMs, dtMs float64) Outcome {
	outcome := OutcomeNone

	switch a.life.State() {
	case StateIdle:
		if !in.Any() {
			return OutcomeNone
		}
		a.life.Start(nowMs)
		outcome = OutcomeStarted
	case StateRunning:
		a.life.Advance(dtMs)
	default:
		// Knockback and freeze play out without input
		a.ctrl.Update(a.body, core.Intent{}, nowMs, dtMs)
		return OutcomeNone
	}

	if a.assist != nil {
		in = a.assist.Apply(in, a.body, a.ctrl, a.field, nowMs)
	}
	a.ctrl.Update(a.body, in, nowMs, dtMs)

	box := a.body.Box()
	if n := a.court.Update(box, in.HitHeld, dtMs); n > 0 {
		a.life.AddBonus(float64(n) * a.cfg.Tennis.BonusPerBallMs)
	}

	if box.Intersects(a.goal) {
		if a.life.Win() {
			a.ctrl.Freeze(a.body)
			a.field.Disable()
			return OutcomeWon
		}
	}
	if _, hit := a.field.QueryCollision(box); hit {
		if a.life.Fail() {
			lc := a.cfg.Lifecycle
			a.ctrl.Knockback(a.body, lc.KnockbackX, lc.KnockbackY, lc.KnockbackDragX)
			a.field.Disable()
			return OutcomeFailed
		}
	}
	return outcome
}

// finish records the result of a won attempt. Only the first call builds a
// result; later calls return the same record.
func (a *Attempt) finish(timestampMs int64) (Result, bool) {
	if a.life.State() != StateWon && a.result == nil {
		return Result{}, false
	}
	if a.result == nil {
		r := newResult(a.index, &a.life, a.court.Hit(), a.court.Total(), timestampMs)
		a.result = &r
	}
	return *a.result, true
}

func (a *Attempt) resize(groundY float64) {
	a.ctrl.Reanchor(a.body, groundY)
	a.field.Resize(groundY)
	a.court.Resize(groundY)
	a.placeGoal(groundY)
}

// ID returns the attempt identity.
func (a *Attempt) ID() AttemptID { return a.id }

// Index returns the level index.
func (a *Attempt) Index() int { return a.index }

// State returns the lifecycle state.
func (a *Attempt) State() State { return a.life.State() }

// Lifecycle returns a copy of the lifecycle.
func (a *Attempt) Lifecycle() Lifecycle { return a.life }

// Track returns the generated track.
func (a *Attempt) Track() track.Track { return a.track }

// Field returns the obstacle field.
func (a *Attempt) Field() *obstacle.Field { return a.field }

// Court returns the ball court. It is empty when the activity is off.
func (a *Attempt) Court() *tennis.Court { return a.court }

// Body returns a copy of the body.
func (a *Attempt) Body() physics.Body { return *a.body }

// Movement returns the movement state.
func (a *Attempt) Movement() physics.State { return a.ctrl.State() }

// Goal returns the goal marker box.
func (a *Attempt) Goal() core.Box { return a.goal }

// GroundY returns the ground line.
func (a *Attempt) GroundY() float64 { return a.ground.Y() }

// Result returns the result of a won attempt.
func (a *Attempt) Result() (Result, bool) {
	if a.result == nil {
		return Result{}, false
	}
	return *a.result, true
}
