package level

// Lifecycle is the timing state machine of one attempt:
// Idle -> Running -> Won | Failed -> Restarting.
// Every transition method reports whether it was applied; triggers that do
// not fit the current state are ignored.
type Lifecycle struct {
	state       State
	elapsedMs   float64
	startedAtMs float64
	bonus       BonusLedger
}

// State returns the current state.
func (l Lifecycle) State() State { return l.state }

// ElapsedMs returns the running time of the attempt.
func (l Lifecycle) ElapsedMs() float64 { return l.elapsedMs }

// StartedAtMs returns the clock value the attempt started at.
func (l Lifecycle) StartedAtMs() float64 { return l.startedAtMs }

// BonusMs returns the accumulated bonus.
func (l Lifecycle) BonusMs() float64 { return l.bonus.TotalMs() }

// NetMs returns elapsed minus bonus, never below zero.
func (l Lifecycle) NetMs() float64 {
	return max(0, l.elapsedMs-l.bonus.TotalMs())
}

// Start moves Idle to Running.
func (l *Lifecycle) Start(nowMs float64) bool {
	if l.state != StateIdle {
		return false
	}
	l.state = StateRunning
	l.startedAtMs = nowMs
	return true
}

// Advance adds dtMs to the elapsed time while running.
func (l *Lifecycle) Advance(dtMs float64) {
	if l.state == StateRunning && dtMs > 0 {
		l.elapsedMs += dtMs
	}
}

// AddBonus credits ms while running.
func (l *Lifecycle) AddBonus(ms float64) bool {
	if l.state != StateRunning {
		return false
	}
	return l.bonus.Credit(ms)
}

// Win moves Running to Won.
func (l *Lifecycle) Win() bool {
	if l.state != StateRunning {
		return false
	}
	l.state = StateWon
	return true
}

// Fail moves Running to Failed.
func (l *Lifecycle) Fail() bool {
	if l.state != StateRunning {
		return false
	}
	l.state = StateFailed
	return true
}

// Restart moves Won or Failed to Restarting.
func (l *Lifecycle) Restart() bool {
	if l.state != StateWon && l.state != StateFailed {
		return false
	}
	l.state = StateRestarting
	return true
}
