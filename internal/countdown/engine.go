package countdown

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

const (
	tickInterval  = time.Second
	pulseDuration = 500 * time.Millisecond
)

// DefaultReachedText is painted once the target is reached.
const DefaultReachedText = "🎊 The 2026 Spring Festival is here! 🎊"

// State is the engine's position in its life cycle.
type State int

const (
	Running State = iota
	Elapsed
)

func (s State) String() string {
	if s == Elapsed {
		return "elapsed"
	}
	return "running"
}

// Display is the surface the digits are painted on.
type Display interface {
	// Paint shows the four values. changed marks the positions whose value
	// differs from the previous paint; each gets a pulse until ClearPulse.
	Paint(values [4]int, changed [4]bool)
	ClearPulse(index int)
	PaintReached(text string)
}

// Engine is the 1 Hz countdown state machine. All methods must be called from
// the scheduler's callback queue.
type Engine struct {
	sched    clock.Scheduler
	surfaces *surface.Registry
	log      *logrus.Entry

	target      time.Time
	reachedText string
	state       State

	running bool
	timer   clock.Handle
	nextDue time.Time
	// gen invalidates timer callbacks that were already dispatched when Stop ran.
	gen uint64

	lastSeconds    int
	lastValues     [4]int
	painted        bool
	displayMissing bool

	oneDayFired   bool
	inFinalMinute bool
	reachedFired  bool

	onReached []func()
	onEnter   []func()
	onExit    []func()
	onOneDay  []func()
}

// NewEngine creates a stopped Engine counting down to target. It paints on
// the Display registered under surface.CountdownText.
func NewEngine(sched clock.Scheduler, surfaces *surface.Registry, target time.Time) *Engine {
	e := &Engine{
		sched:       sched,
		surfaces:    surfaces,
		log:         logrus.WithField("component", "countdown"),
		target:      target,
		reachedText: DefaultReachedText,
		lastSeconds: -1,
	}
	if !target.After(sched.Now()) {
		e.state = Elapsed
	}
	return e
}

// SetReachedText changes the text painted when the target is reached.
func (e *Engine) SetReachedText(text string) { e.reachedText = text }

// OnReached registers a callback run once when the target is reached.
func (e *Engine) OnReached(fn func()) { e.onReached = append(e.onReached, fn) }

// OnEnterFinalMinute registers a callback run when less than a minute remains.
func (e *Engine) OnEnterFinalMinute(fn func()) { e.onEnter = append(e.onEnter, fn) }

// OnExitFinalMinute registers a callback run when the countdown leaves the
// final minute, which only happens when the target moves.
func (e *Engine) OnExitFinalMinute(fn func()) { e.onExit = append(e.onExit, fn) }

// OnOneDayThreshold registers a callback run once when exactly one day remains.
func (e *Engine) OnOneDayThreshold(fn func()) { e.onOneDay = append(e.onOneDay, fn) }

// Start ticks immediately and then once per second. It is a no-op while
// already running and after the target was reached.
func (e *Engine) Start() {
	if e.running || (e.state == Elapsed && e.reachedFired) {
		return
	}
	e.running = true
	e.gen++
	e.nextDue = e.sched.Now()
	e.safeTick()
	if e.running {
		e.scheduleNext()
	}
}

func (e *Engine) scheduleNext() {
	e.nextDue = e.nextDue.Add(tickInterval)
	delay := e.nextDue.Sub(e.sched.Now())
	if delay < 0 {
		// Fell behind (e.g. the process was suspended); realign to now.
		e.nextDue = e.sched.Now()
		delay = 0
	}
	gen := e.gen
	e.timer = e.sched.Schedule(delay, func() {
		if gen != e.gen || !e.running {
			return
		}
		e.safeTick()
		if e.running && gen == e.gen {
			e.scheduleNext()
		}
	})
}

// Stop cancels the recurring timer. Safe to call when stopped.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.sched.Cancel(e.timer)
	e.running = false
	e.gen++
}

// Reset forgets the last painted seconds so the next tick repaints.
func (e *Engine) Reset() { e.lastSeconds = -1 }

// Snapshot returns the current remaining time. It does not change any state.
func (e *Engine) Snapshot() Snapshot {
	return Decompose(e.target.Sub(e.sched.Now()))
}

// SetTargetAndRestart moves the target, clears both threshold flags and
// restarts the engine in the Running state.
func (e *Engine) SetTargetAndRestart(target time.Time) {
	e.Stop()
	e.target = target
	e.oneDayFired = false
	e.reachedFired = false
	e.lastSeconds = -1
	e.state = Running
	if e.inFinalMinute {
		e.inFinalMinute = false
		e.fire(e.onExit)
	}
	e.log.Infof("Countdown target set to %s", target.Format(time.RFC3339))
	e.Start()
}

// Simulate sets the target to now plus the given offset. Used to exercise
// thresholds without waiting for them.
func (e *Engine) Simulate(days, hours, minutes, seconds int) {
	offset := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	e.SetTargetAndRestart(e.sched.Now().Add(offset))
}

func (e *Engine) Target() time.Time   { return e.target }
func (e *Engine) State() State        { return e.state }
func (e *Engine) Running() bool       { return e.running }
func (e *Engine) InFinalMinute() bool { return e.inFinalMinute }
func (e *Engine) OneDayFired() bool   { return e.oneDayFired }

// safeTick runs one tick, recovering a panic so the timer keeps going.
func (e *Engine) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("Recovered from panic in countdown tick: %v", r)
		}
	}()
	e.tick()
}

func (e *Engine) tick() {
	remaining := e.target.Sub(e.sched.Now())
	if remaining.Milliseconds() <= 0 {
		e.reach()
		return
	}

	snap := Decompose(remaining)

	if snap.Days == 1 && snap.Hours == 0 && !e.oneDayFired {
		e.oneDayFired = true
		e.log.Info("One day left")
		e.fire(e.onOneDay)
	}

	final := snap.FinalMinute()
	switch {
	case final && !e.inFinalMinute:
		e.inFinalMinute = true
		e.log.Info("Entering the final minute")
		e.fire(e.onEnter)
	case !final && e.inFinalMinute:
		e.inFinalMinute = false
		e.fire(e.onExit)
	}

	if snap.Seconds != e.lastSeconds {
		e.paint(snap)
	}
}

func (e *Engine) reach() {
	e.state = Elapsed
	if d, ok := e.display(); ok {
		d.PaintReached(e.reachedText)
	}
	e.Stop()
	if !e.reachedFired {
		e.reachedFired = true
		e.log.Info("Countdown reached")
		e.fire(e.onReached)
	}
}

func (e *Engine) paint(snap Snapshot) {
	d, ok := e.display()
	if !ok {
		return
	}
	values := snap.Values()
	var changed [4]bool
	for i, v := range values {
		if !e.painted || v == e.lastValues[i] {
			continue
		}
		changed[i] = true
		idx := i
		e.sched.Schedule(pulseDuration, func() {
			if d, ok := e.display(); ok {
				d.ClearPulse(idx)
			}
		})
	}
	d.Paint(values, changed)
	e.lastSeconds = snap.Seconds
	e.lastValues = values
	e.painted = true
}

// display looks up the digit surface, logging once per absence.
func (e *Engine) display() (Display, bool) {
	d, ok := surface.Lookup[Display](e.surfaces, surface.CountdownText)
	if !ok {
		if !e.displayMissing {
			e.log.Warn("Countdown display not found; skipping paint")
			e.displayMissing = true
		}
		return nil, false
	}
	e.displayMissing = false
	return d, true
}

func (e *Engine) fire(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
