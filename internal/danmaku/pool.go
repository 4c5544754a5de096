package danmaku

// Slot is a reusable render handle. A slot is either free (owned by the
// Pool) or active (owned by the Engine), never both.
type Slot struct {
	entity Entity
	pooled bool
	active bool
}

// Entity returns the comment currently bound to the slot.
func (s *Slot) Entity() Entity { return s.entity }

func (s *Slot) reset() {
	s.entity = Entity{}
}

// PoolStatus is a point-in-time view of a Pool.
type PoolStatus struct {
	Available int
	Total     int
	Overflow  int
}

// Pool recycles slots. It creates up to maxSize pooled slots; once those are
// all active, Acquire hands out overflow slots that are dropped on release.
type Pool struct {
	free     []*Slot
	size     int
	maxSize  int
	overflow int
}

// NewPool returns a Pool with initial slots pre-created, capped at maxSize.
func NewPool(initial, maxSize int) *Pool {
	if maxSize < 0 {
		maxSize = 0
	}
	initial = min(max(initial, 0), maxSize)
	p := &Pool{maxSize: maxSize, free: make([]*Slot, 0, maxSize)}
	for range initial {
		p.free = append(p.free, &Slot{pooled: true})
	}
	p.size = initial
	return p
}

// Acquire returns a slot marked active.
func (p *Pool) Acquire() *Slot {
	var s *Slot
	switch {
	case len(p.free) > 0:
		s = p.free[len(p.free)-1]
		p.free[len(p.free)-1] = nil
		p.free = p.free[:len(p.free)-1]
	case p.size < p.maxSize:
		s = &Slot{pooled: true}
		p.size++
	default:
		s = &Slot{}
		p.overflow++
	}
	s.active = true
	return s
}

// Release returns s to the free list. It reports false for overflow slots,
// which are discarded, and for slots that are not active.
func (p *Pool) Release(s *Slot) bool {
	if s == nil || !s.active {
		return false
	}
	s.active = false
	s.reset()
	if !s.pooled {
		p.overflow--
		return false
	}
	p.free = append(p.free, s)
	return true
}

// Status reports the free, pooled total and live overflow counts.
func (p *Pool) Status() PoolStatus {
	return PoolStatus{Available: len(p.free), Total: p.size, Overflow: p.overflow}
}
