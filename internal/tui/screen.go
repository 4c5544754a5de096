package tui

import (
	"slices"
	"time"

	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/surface"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

// comment is a comment in flight across the lanes.
type comment struct {
	entity danmaku.Entity
	start  time.Time
	done   func()
}

// progress returns how far the comment has travelled, in [0, 1].
func (c *comment) progress(now time.Time) float64 {
	if c.entity.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(c.start)) / float64(c.entity.Duration)
	return max(0, min(1, p))
}

type sparkle struct {
	id   string
	x, y int
}

// screen is the mutable state behind the view. It implements every surface
// the engines paint on and is shared by all copies of the Model. Only the
// update loop touches it.
type screen struct {
	now func() time.Time

	values      [4]int
	pulses      [4]bool
	painted     bool
	reachedText string
	urgent      bool
	celebrating bool
	subtitle    string

	comments []*comment
	toasts   []toast.Toast
	sparkles []sparkle
}

func newScreen(now func() time.Time) *screen {
	return &screen{now: now}
}

// attach registers s under every surface id.
func (s *screen) attach(reg *surface.Registry) {
	for _, id := range []string{surface.CountdownText, surface.Danmaku, surface.Toasts, surface.Subtitle, surface.Sparkles} {
		reg.Attach(id, s)
	}
}

// countdown.Display

func (s *screen) Paint(values [4]int, changed [4]bool) {
	s.values = values
	s.reachedText = ""
	for i, c := range changed {
		if c {
			s.pulses[i] = true
		}
	}
	s.painted = true
}

func (s *screen) ClearPulse(i int) {
	if i >= 0 && i < len(s.pulses) {
		s.pulses[i] = false
	}
}

func (s *screen) PaintReached(text string) { s.reachedText = text }

// app.Decor

func (s *screen) SetUrgent(on bool)      { s.urgent = on }
func (s *screen) SetCelebrating(on bool) { s.celebrating = on }

// app.SubtitleSurface

func (s *screen) SetSubtitle(text string) { s.subtitle = text }

// danmaku.Surface

func (s *screen) Animate(e danmaku.Entity, done func()) {
	s.comments = append(s.comments, &comment{entity: e, start: s.now(), done: done})
}

func (s *screen) Remove(id string) {
	s.comments = slices.DeleteFunc(s.comments, func(c *comment) bool { return c.entity.ID == id })
}

// advance finishes every comment whose traversal is over.
func (s *screen) advance() {
	now := s.now()
	var finished []*comment
	s.comments = slices.DeleteFunc(s.comments, func(c *comment) bool {
		if c.progress(now) >= 1 {
			finished = append(finished, c)
			return true
		}
		return false
	})
	for _, c := range finished {
		c.done()
	}
}

// toast.Surface

func (s *screen) ShowToast(t toast.Toast) { s.toasts = append(s.toasts, t) }

func (s *screen) DismissToast(id string) {
	s.toasts = slices.DeleteFunc(s.toasts, func(t toast.Toast) bool { return t.ID == id })
}

// app.SparkleSurface

func (s *screen) AddSparkle(id string, x, y int) {
	s.sparkles = append(s.sparkles, sparkle{id: id, x: x, y: y})
}

func (s *screen) RemoveSparkle(id string) {
	s.sparkles = slices.DeleteFunc(s.sparkles, func(sp sparkle) bool { return sp.id == id })
}
