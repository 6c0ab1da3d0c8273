package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// oneShot fires once at At. An At that is already due when first seen fires on
// the next cron tick. cron calls Next again right after starting the job, before
// the job goroutine runs, so Next alone decides that the shot was spent.
type oneShot struct {
	At time.Time

	promised atomic.Bool // Next returned At while it was still ahead
	overdue  atomic.Bool // Next returned "now" for an At already behind
}

var (
	_ cron.Schedule = (*oneShot)(nil)
	_ cron.Schedule = (*every)(nil)
)

func (s *oneShot) Next(t time.Time) time.Time {
	if s.At.After(t) {
		s.promised.Store(true)
		return s.At
	}
	if s.promised.Load() {
		return time.Time{}
	}
	if s.overdue.CompareAndSwap(false, true) {
		return t
	}
	return time.Time{}
}

// every fires at First + k*Interval for the smallest k whose instant is after t.
// Occurrences missed while the process was down are skipped, not replayed.
type every struct {
	First    time.Time
	Interval time.Duration
}

func (s *every) Next(t time.Time) time.Time {
	if s.First.After(t) {
		return s.First
	}
	n := t.Sub(s.First)/s.Interval + 1
	return s.First.Add(n * s.Interval)
}
