// Package clock provides the scheduled-delay primitive every engine runs on.
//
// Callbacks scheduled through a Scheduler never overlap: each implementation
// delivers them one at a time on a single serialized queue, so engine state can
// be mutated without locks.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler is the contract the engines depend on.
type Scheduler interface {
	Now() time.Time
	// Schedule runs fn once after delay on the serialized callback queue.
	Schedule(delay time.Duration, fn func()) Handle
	// Cancel prevents a pending callback from running. Safe to call more than once
	// and with handles that already fired.
	Cancel(h Handle)
}

// Dispatcher hands a callback to the serialized queue that will run it.
type Dispatcher func(fn func())

// Loop is a wall-clock Scheduler. Timers fire on runtime goroutines and are
// handed to a Dispatcher, which must run them sequentially.
type Loop struct {
	mu       sync.Mutex
	next     uint64
	timers   map[Handle]*time.Timer
	dispatch Dispatcher
}

// NewLoop creates a Loop delivering callbacks through dispatch.
func NewLoop(dispatch Dispatcher) *Loop {
	return &Loop{
		timers:   make(map[Handle]*time.Timer),
		dispatch: dispatch,
	}
}

// SetDispatcher replaces the dispatcher. Used when the queue owner (e.g. the
// Bubble Tea program) is constructed after the Loop.
func (l *Loop) SetDispatcher(dispatch Dispatcher) {
	l.mu.Lock()
	l.dispatch = dispatch
	l.mu.Unlock()
}

func (l *Loop) Now() time.Time { return time.Now() }

func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := Handle(l.next)
	l.timers[h] = time.AfterFunc(delay, func() {
		l.mu.Lock()
		dispatch := l.dispatch
		l.mu.Unlock()
		if dispatch == nil {
			l.take(h)
			return
		}
		dispatch(func() {
			// A Cancel issued after the timer fired but before the queue ran us wins.
			if l.take(h) {
				fn()
			}
		})
	})
	return h
}

func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// CancelAll stops every pending callback. Used on teardown.
func (l *Loop) CancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}

// Pending reports the number of callbacks that have not yet run or been cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) take(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[h]; !ok {
		return false
	}
	delete(l.timers, h)
	return true
}
