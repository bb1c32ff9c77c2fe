package level

import "math"

// Result is the record of a won attempt. Times are whole milliseconds.
type Result struct {
	LevelIndex  int
	GrossMs     int64
	BonusMs     int64
	NetMs       int64
	BallsHit    int
	BallsTotal  int
	TimestampMs int64 // Wall clock, Unix milliseconds
}

// ResultSink receives results of won attempts.
// This allows the session to publish results without depending on storage.
type ResultSink interface {
	SaveResult(r Result) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(r Result) error

// SaveResult calls f(r).
func (f ResultSinkFunc) SaveResult(r Result) error {
	return f(r)
}

func newResult(index int, l *Lifecycle, ballsHit, ballsTotal int, timestampMs int64) Result {
	gross := int64(math.Round(l.ElapsedMs()))
	bonus := int64(math.Round(l.BonusMs()))
	return Result{
		LevelIndex:  index,
		GrossMs:     gross,
		BonusMs:     bonus,
		NetMs:       max(0, gross-bonus),
		BallsHit:    ballsHit,
		BallsTotal:  ballsTotal,
		TimestampMs: timestampMs,
	}
}

// Better reports whether a ranks ahead of b: lower net time first, then more
// balls hit, then the older result.
func Better(a, b Result) bool {
	if a.NetMs != b.NetMs {
		return a.NetMs < b.NetMs
	}
	if a.BallsHit != b.BallsHit {
		return a.BallsHit > b.BallsHit
	}
	return a.TimestampMs < b.TimestampMs
}
