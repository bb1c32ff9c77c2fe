package level

import "testing"

func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name     string
		run      func(l *Lifecycle) bool
		from     State
		expected bool
	}{
		{"start from idle", func(l *Lifecycle) bool { return l.Start(0) }, StateIdle, true},
		{"start twice", func(l *Lifecycle) bool { return l.Start(0) }, StateRunning, false},
		{"win while running", (*Lifecycle).Win, StateRunning, true},
		{"win while idle", (*Lifecycle).Win, StateIdle, false},
		{"fail after win", (*Lifecycle).Fail, StateWon, false},
		{"win after fail", (*Lifecycle).Win, StateFailed, false},
		{"fail twice", (*Lifecycle).Fail, StateFailed, false},
		{"restart after win", (*Lifecycle).Restart, StateWon, true},
		{"restart after fail", (*Lifecycle).Restart, StateFailed, true},
		{"restart while running", (*Lifecycle).Restart, StateRunning, false},
		{"restart twice", (*Lifecycle).Restart, StateRestarting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lifecycle{state: tt.from}
			if got := tt.run(l); got != tt.expected {
				t.Errorf("transition from %v = %v, expected %v", tt.from, got, tt.expected)
			}
			if !tt.expected && l.State() != tt.from {
				t.Errorf("rejected transition changed state to %v", l.State())
			}
		})
	}
}

func TestLifecycleClock(t *testing.T) {
	var l Lifecycle

	l.Advance(100)
	if l.ElapsedMs() != 0 {
		t.Errorf("ElapsedMs() = %v in idle, expected 0", l.ElapsedMs())
	}
	if l.AddBonus(1000) {
		t.Error("AddBonus() accepted in idle")
	}

	l.Start(250)
	if l.StartedAtMs() != 250 {
		t.Errorf("StartedAtMs() = %v, expected 250", l.StartedAtMs())
	}
	l.Advance(16)
	l.Advance(16)
	l.Advance(-5)
	if l.ElapsedMs() != 32 {
		t.Errorf("ElapsedMs() = %v, expected 32", l.ElapsedMs())
	}

	l.Fail()
	l.Advance(16)
	if l.ElapsedMs() != 32 {
		t.Errorf("ElapsedMs() = %v after fail, expected frozen 32", l.ElapsedMs())
	}
	if l.AddBonus(1000) {
		t.Error("AddBonus() accepted after fail")
	}
}

func TestNetTimeNonNegative(t *testing.T) {
	var l Lifecycle
	l.Start(0)
	l.Advance(500)
	l.AddBonus(1000)
	l.AddBonus(1000)

	if l.NetMs() != 0 {
		t.Errorf("NetMs() = %v, expected 0", l.NetMs())
	}
	if l.BonusMs() != 2000 {
		t.Errorf("BonusMs() = %v, expected 2000", l.BonusMs())
	}

	l.Win()
	r := newResult(1, &l, 2, 2, 42)
	if r.NetMs != 0 || r.GrossMs != 500 || r.BonusMs != 2000 {
		t.Errorf("result = %+v, expected gross 500, bonus 2000, net 0", r)
	}
}

func TestBonusLedger(t *testing.T) {
	var b BonusLedger
	b.Credit(1000)
	b.Credit(0)
	b.Credit(-200)
	b.Credit(500)

	if b.TotalMs() != 1500 {
		t.Errorf("TotalMs() = %v, expected 1500", b.TotalMs())
	}
	if b.Credits() != 2 {
		t.Errorf("Credits() = %d, expected 2", b.Credits())
	}
}

func TestBetter(t *testing.T) {
	base := Result{NetMs: 10000, BallsHit: 1, TimestampMs: 100}
	tests := []struct {
		name     string
		other    Result
		expected bool
	}{
		{"faster", Result{NetMs: 9000, BallsHit: 0, TimestampMs: 200}, true},
		{"slower", Result{NetMs: 11000, BallsHit: 4, TimestampMs: 50}, false},
		{"same time more balls", Result{NetMs: 10000, BallsHit: 2, TimestampMs: 200}, true},
		{"same time same balls older", Result{NetMs: 10000, BallsHit: 1, TimestampMs: 50}, true},
		{"identical", base, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Better(tt.other, base); got != tt.expected {
				t.Errorf("Better() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	for s, name := range map[State]string{
		StateIdle:       "idle",
		StateRunning:    "running",
		StateWon:        "won",
		StateFailed:     "failed",
		StateRestarting: "restarting",
		State(9):        "unknown",
	} {
		if s.String() != name {
			t.Errorf("String() = %q, expected %q", s.String(), name)
		}
	}
	if StateRunning.Terminal() || !StateWon.Terminal() {
		t.Error("Terminal() is wrong")
	}
}
