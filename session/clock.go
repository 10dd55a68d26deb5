package session

import "time"

// Timer is the part of *time.Timer the session needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the decay and heartbeat timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock is backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// gatedClock routes every timer callback through the session gate,
// so a fire racing a teardown is dropped instead of mutating a closed session.
type gatedClock struct {
	base Clock
	exec func(func())
}

func (c gatedClock) Now() time.Time { return c.base.Now() }

func (c gatedClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.base.AfterFunc(d, func() { c.exec(f) })
}
