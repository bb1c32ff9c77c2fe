package level

import (
	"sort"

	"github.com/google/uuid"
)

// AttemptID identifies one attempt. Tasks scheduled for an attempt only run
// while its identity is live.
type AttemptID = uuid.UUID

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id      TaskID
	attempt AttemptID
	dueMs   float64
	name    string
	fn      func()
}

// Scheduler runs delayed callbacks on the session clock.
// It is driven from the tick loop and is not safe for concurrent use.
type Scheduler struct {
	nowMs  float64
	nextID TaskID
	tasks  []task
	live   map[AttemptID]bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[AttemptID]bool)}
}

// Begin creates a new live attempt identity.
func (s *Scheduler) Begin() AttemptID {
	id := uuid.New()
	s.live[id] = true
	return id
}

// Live reports whether id has not been retired.
func (s *Scheduler) Live(id AttemptID) bool {
	return s.live[id]
}

// Retire ends an attempt identity and drops its pending tasks.
func (s *Scheduler) Retire(id AttemptID) {
	delete(s.live, id)
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.attempt != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// After schedules fn to run delayMs from now on behalf of attempt.
// Scheduling for a retired attempt is a no-op and returns 0.
func (s *Scheduler) After(attempt AttemptID, delayMs float64, name string, fn func()) TaskID {
	if !s.live[attempt] {
		return 0
	}
	s.nextID++
	s.tasks = append(s.tasks, task{
		id:      s.nextID,
		attempt: attempt,
		dueMs:   s.nowMs + max(delayMs, 0),
		name:    name,
		fn:      fn,
	})
	return s.nextID
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock to nowMs and runs every due task in due order.
// A task whose attempt was retired, possibly by an earlier task in the same
// call, is skipped. It returns the number of tasks run.
func (s *Scheduler) Advance(nowMs float64) int {
	if nowMs > s.nowMs {
		s.nowMs = nowMs
	}

	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.dueMs <= s.nowMs {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].dueMs < due[j].dueMs })

	ran := 0
	for _, t := range due {
		if !s.live[t.attempt] {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// NowMs returns the scheduler clock.
func (s *Scheduler) NowMs() float64 {
	return s.nowMs
}

// Pending returns the names of pending tasks in scheduling order.
func (s *Scheduler) Pending() []string {
	names := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		names = append(names, t.name)
	}
	return names
}
