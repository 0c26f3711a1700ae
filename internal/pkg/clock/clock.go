package clock

import "time"

// Clock is a small abstraction for obtaining the current time.
// Reconcile runs and stores take one so timestamps are testable.
type Clock interface {
	Now() time.Time
}

// RealClock returns the real current time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock is a controllable clock for tests. Every call to Now advances it
// by Step, which keeps created_at ordering deterministic.
type FakeClock struct {
	now  time.Time
	Step time.Duration
}

// NewFake creates a FakeClock set to the given time (expected in UTC).
func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now returns the fake current time.
func (f *FakeClock) Now() time.Time {
	t := f.now
	f.now = f.now.Add(f.Step)
	return t
}

// Set sets the fake clock to a specific time.
func (f *FakeClock) Set(t time.Time) {
	f.now = t
}

// Advance moves the fake clock forward by duration d.
func (f *FakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// Since returns the elapsed time between start and c.Now().
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
