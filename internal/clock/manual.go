package clock

import (
	"sort"
	"time"
)

// Manual is a virtual-time Scheduler for deterministic tests. Nothing runs
// until Advance is called; callbacks then run synchronously in due order.
type Manual struct {
	now     time.Time
	next    uint64
	pending []manualTimer
}

type manualTimer struct {
	handle Handle
	when   time.Time
	fn     func()
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	m.next++
	h := Handle(m.next)
	m.pending = append(m.pending, manualTimer{handle: h, when: m.now.Add(delay), fn: fn})
	return h
}

func (m *Manual) Cancel(h Handle) {
	for i := range m.pending {
		if m.pending[i].handle == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Advance moves virtual time forward by d, running every callback that comes
// due, including ones scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		idx := m.nextDue(target)
		if idx < 0 {
			break
		}
		t := m.pending[idx]
		m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
		if t.when.After(m.now) {
			m.now = t.when
		}
		t.fn()
	}
	m.now = target
}

// Pending reports how many callbacks are waiting.
func (m *Manual) Pending() int { return len(m.pending) }

// nextDue returns the index of the earliest callback due at or before target,
// ties broken by scheduling order, or -1.
func (m *Manual) nextDue(target time.Time) int {
	if len(m.pending) == 0 {
		return -1
	}
	order := make([]int, len(m.pending))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := m.pending[order[a]], m.pending[order[b]]
		if ta.when.Equal(tb.when) {
			return ta.handle < tb.handle
		}
		return ta.when.Before(tb.when)
	})
	first := order[0]
	if m.pending[first].when.After(target) {
		return -1
	}
	return first
}
