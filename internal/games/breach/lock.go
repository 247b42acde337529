package breach

import "time"

// ColumnLocks holds one lockout countdown per lane.
type ColumnLocks struct {
	timers   []time.Duration
	duration time.Duration
}

// NewColumnLocks creates unlocked timers for lanes 1..lanes.
func NewColumnLocks(lanes int, duration time.Duration) *ColumnLocks {
	return &ColumnLocks{
		timers:   make([]time.Duration, lanes),
		duration: duration,
	}
}

// Lock starts the countdown for lane if it is not already running.
// A running lock is never extended. Reports whether the lane was locked now.
func (l *ColumnLocks) Lock(lane int) bool {
	i := lane - 1
	if i < 0 || i >= len(l.timers) || l.timers[i] > 0 {
		return false
	}
	l.timers[i] = l.duration
	return true
}

// Tick decreases every running timer by dt, stopping at zero.
func (l *ColumnLocks) Tick(dt time.Duration) {
	for i, t := range l.timers {
		if t > 0 {
			l.timers[i] = max(0, t-dt)
		}
	}
}

// Locked reports whether lane's key is currently disabled.
func (l *ColumnLocks) Locked(lane int) bool {
	return l.Remaining(lane) > 0
}

// Remaining returns the time left on lane's lock.
func (l *ColumnLocks) Remaining(lane int) time.Duration {
	i := lane - 1
	if i < 0 || i >= len(l.timers) {
		return 0
	}
	return l.timers[i]
}
