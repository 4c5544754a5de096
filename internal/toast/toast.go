package toast

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

const (
	// MaxToasts is the number of toasts shown at once.
	MaxToasts = 5
	// DefaultDuration is used by callers that have no specific duration.
	DefaultDuration = 3 * time.Second
)

// Severity selects a toast's icon and color.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Icon returns the glyph shown in front of the message.
func (s Severity) Icon() string {
	switch s {
	case Success:
		return "✔"
	case Warning:
		return "⚠"
	case Error:
		return "✖"
	default:
		return "ℹ"
	}
}

// ParseSeverity maps a severity name to its value.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "info", "":
		return Info, nil
	case "success":
		return Success, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown toast severity %q", name)
}

// Toast is one visible notification.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Created  time.Time
	// Duration is zero for toasts that are only dismissed manually.
	Duration time.Duration
}

// Surface is the toast container a Queue paints into.
type Surface interface {
	ShowToast(t Toast)
	DismissToast(id string)
}

// Queue is a bounded FIFO of visible toasts. It must only be used from the
// scheduler's callback queue.
type Queue struct {
	sched    clock.Scheduler
	surfaces *surface.Registry
	log      *logrus.Entry

	toasts []Toast
	timers map[string]clock.Handle
}

// NewQueue creates a Queue painting into the surface registered under
// surface.Toasts.
func NewQueue(sched clock.Scheduler, surfaces *surface.Registry) *Queue {
	return &Queue{
		sched:    sched,
		surfaces: surfaces,
		log:      logrus.WithField("component", "toast"),
		timers:   make(map[string]clock.Handle),
	}
}

// Show displays message. When MaxToasts are already visible the oldest is
// dismissed first. A duration of zero keeps the toast until Dismiss is
// called. It reports false when the toast surface is absent.
func (q *Queue) Show(message string, severity Severity, duration time.Duration) (Toast, bool) {
	s, ok := surface.Lookup[Surface](q.surfaces, surface.Toasts)
	if !ok {
		q.log.Warnf("Toast surface not available, dropping: %s", message)
		return Toast{}, false
	}

	for len(q.toasts) >= MaxToasts {
		q.Dismiss(q.toasts[0].ID)
	}

	t := Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		Created:  q.sched.Now(),
		Duration: max(duration, 0),
	}
	q.toasts = append(q.toasts, t)
	s.ShowToast(t)

	if t.Duration > 0 {
		id := t.ID
		q.timers[id] = q.sched.Schedule(t.Duration, func() {
			delete(q.timers, id)
			q.Dismiss(id)
		})
	}
	return t, true
}

// Dismiss removes the toast with the given id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	i := slices.IndexFunc(q.toasts, func(t Toast) bool { return t.ID == id })
	if i < 0 {
		return
	}
	q.toasts = slices.Delete(q.toasts, i, i+1)
	if h, ok := q.timers[id]; ok {
		q.sched.Cancel(h)
		delete(q.timers, id)
	}
	if s, ok := surface.Lookup[Surface](q.surfaces, surface.Toasts); ok {
		s.DismissToast(id)
	}
}

// ClearAll dismisses every toast.
func (q *Queue) ClearAll() {
	for len(q.toasts) > 0 {
		q.Dismiss(q.toasts[0].ID)
	}
}

// Active returns the visible toasts, oldest first.
func (q *Queue) Active() []Toast {
	return slices.Clone(q.toasts)
}
