package engine

import (
	"time"

	"github.com/p1x3r/sand/internal/board"
)

// Limits carries the constraints of a single go command. Zero values
// mean "no limit" for that dimension.
type Limits struct {
	Time      [2]time.Duration // remaining clock time per color
	Inc       [2]time.Duration // increment per move per color
	MovesToGo int              // moves to the next time control, 0 for sudden death
	MoveTime  time.Duration    // fixed time for this move
	Depth     int              // maximum depth
	Nodes     uint64           // maximum nodes
	Infinite  bool             // search until stopped
	Ponder    bool             // start in ponder mode
}

// TimeManager converts the clock state into two budgets: a soft limit
// the deepening loop stops at between iterations, and a hard limit the
// node polling enforces mid-search.
type TimeManager struct {
	soft    time.Duration
	hard    time.Duration
	limited bool
	start   time.Time
}

// Start computes the budgets for the side to move and begins the
// clock. Called again on ponderhit so time is counted from the moment
// the opponent actually moved.
func (tm *TimeManager) Start(limits Limits, us board.Color) {
	tm.start = time.Now()

	switch {
	case limits.MoveTime > 0:
		tm.limited = true
		tm.hard = limits.MoveTime
		tm.soft = limits.MoveTime * 8 / 10

	case limits.Time[us] > 0:
		tm.limited = true
		remaining := limits.Time[us]

		base := remaining/20 + limits.Inc[us]/2
		if limits.MovesToGo > 0 {
			base = remaining/time.Duration(limits.MovesToGo) + limits.Inc[us]/2
		}

		tm.hard = min(base*12/10, remaining)
		tm.soft = base * 8 / 10

	default:
		// Infinite, depth, or node limited: no clock.
		tm.limited = false
	}
}

// Elapsed returns the time since Start.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.start)
}

// HardExpired reports whether the search must abort immediately.
func (tm *TimeManager) HardExpired() bool {
	return tm.limited && tm.Elapsed() >= tm.hard
}

// SoftExpired reports whether another iteration should not be started.
func (tm *TimeManager) SoftExpired() bool {
	return tm.limited && tm.Elapsed() >= tm.soft
}
