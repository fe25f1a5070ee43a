package sessions

import "time"

// Timer derives the countdown for a session purely from its creation
// deadline. It holds no ticking state, so a recomputation at any moment
// (page reload, process restart) lands on the same remaining time.
type Timer struct {
	Deadline time.Time
}

func NewTimer(createdAt time.Time, timeout time.Duration) Timer {
	return Timer{Deadline: createdAt.Add(timeout)}
}

// Remaining is the time left until the deadline, clamped at zero.
func (t Timer) Remaining(now time.Time) time.Duration {
	remaining := t.Deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingSeconds truncates toward zero for display.
func (t Timer) RemainingSeconds(now time.Time) int64 {
	return int64(t.Remaining(now) / time.Second)
}

// Expired reports whether the deadline has passed. At exactly the deadline
// the session is considered expired.
func (t Timer) Expired(now time.Time) bool {
	return !now.Before(t.Deadline)
}
