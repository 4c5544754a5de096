package danmaku

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

// Parameterization bounds.
const (
	minTop      = 15
	maxTop      = 75
	minFontSize = 16
	maxFontSize = 24
	maxRotation = 10
	// rotateAbove is the threshold a uniform draw must exceed to rotate.
	rotateAbove = 0.7

	warmupCount   = 5
	warmupStagger = 500 * time.Millisecond
)

// Entity is one comment crossing the screen.
type Entity struct {
	ID    string
	Text  string
	Style string
	Kind  Kind
	// Top is the vertical position as a percentage of the surface height.
	Top      int
	Duration time.Duration
	FontSize int
	Rotated  bool
	Rotation int
	Auto     bool
	Created  time.Time
}

// Rand is the random source used to parameterize comments. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Surface is the animation runtime comments are drawn on. Animate starts a
// single traversal and must call done once it finishes, on the scheduler's
// callback queue. done may arrive after the entity was already evicted.
type Surface interface {
	Animate(e Entity, done func())
	Remove(id string)
}

// CuePlayer plays a named sound cue.
type CuePlayer interface {
	Play(kind string) bool
}

// Config holds the engine tunables.
type Config struct {
	MaxOnScreen     int
	BaseSpeed       time.Duration
	Interval        time.Duration
	InitialPoolSize int
	MaxPoolSize     int
	Messages        []string
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		MaxOnScreen:     15,
		BaseSpeed:       15 * time.Second,
		Interval:        2 * time.Second,
		InitialPoolSize: 10,
		MaxPoolSize:     50,
		Messages:        slices.Clone(DefaultMessages),
	}
}

// Engine owns the on-screen comments and the slot pool. All methods must be
// called from the scheduler's callback queue.
type Engine struct {
	sched    clock.Scheduler
	surfaces *surface.Registry
	rnd      Rand
	cues     CuePlayer
	log      *logrus.Entry

	cfg    Config
	pool   *Pool
	active []*Slot

	feed        clock.Handle
	feedRunning bool
}

// NewEngine creates an Engine drawing on the surface registered under
// surface.Danmaku.
func NewEngine(sched clock.Scheduler, surfaces *surface.Registry, rnd Rand, cfg Config) *Engine {
	if cfg.MaxOnScreen < 1 {
		cfg.MaxOnScreen = 1
	}
	if len(cfg.Messages) == 0 {
		cfg.Messages = slices.Clone(DefaultMessages)
	}
	return &Engine{
		sched:    sched,
		surfaces: surfaces,
		rnd:      rnd,
		log:      logrus.WithField("component", "danmaku"),
		cfg:      cfg,
		pool:     NewPool(cfg.InitialPoolSize, cfg.MaxPoolSize),
	}
}

// SetCuePlayer sets the player used by bursts with a cue.
func (e *Engine) SetCuePlayer(p CuePlayer) { e.cues = p }

// SetMaxOnScreen changes the capacity. Excess comments are evicted oldest first.
func (e *Engine) SetMaxOnScreen(n int) {
	e.cfg.MaxOnScreen = max(n, 1)
	s, _ := surface.Lookup[Surface](e.surfaces, surface.Danmaku)
	for len(e.active) > e.cfg.MaxOnScreen {
		e.evictOldest(s)
	}
}

// SetBaseSpeed changes the mean traversal duration of new comments.
func (e *Engine) SetBaseSpeed(d time.Duration) {
	if d > 0 {
		e.cfg.BaseSpeed = d
	}
}

// SetInterval changes the auto-feed period. A running feed is rescheduled.
func (e *Engine) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	e.cfg.Interval = d
	if e.feedRunning {
		e.sched.Cancel(e.feed)
		e.scheduleFeed()
	}
}

// Messages returns the default message list used by the auto-feed.
func (e *Engine) Messages() []string { return slices.Clone(e.cfg.Messages) }

// Enqueue creates a comment showing text. A full screen first loses its oldest
// comment. Unknown kinds and an absent surface leave the engine untouched.
func (e *Engine) Enqueue(text string, kind Kind) (Entity, error) {
	return e.create(text, kind, false)
}

// EnqueueNamed is Enqueue with the kind given by name.
func (e *Engine) EnqueueNamed(text, kind string) (Entity, error) {
	k, err := ParseKind(kind)
	if err != nil {
		e.log.Warnf("Rejecting comment: %v", err)
		return Entity{}, err
	}
	return e.create(text, k, false)
}

// EnqueueSpecial creates a comment with a random special message and a
// random special kind.
func (e *Engine) EnqueueSpecial() (Entity, error) {
	msg := SpecialMessages[e.rnd.Intn(len(SpecialMessages))]
	kind := SpecialKinds[e.rnd.Intn(len(SpecialKinds))]
	return e.create(msg, kind, false)
}

func (e *Engine) create(text string, kind Kind, auto bool) (Entity, error) {
	if !kind.Valid() {
		e.log.Warnf("Rejecting comment with kind %v", kind)
		return Entity{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	s, ok := surface.Lookup[Surface](e.surfaces, surface.Danmaku)
	if !ok {
		e.log.Warn("Comment surface not found; skipping comment")
		return Entity{}, ErrNoSurface
	}

	for len(e.active) >= e.cfg.MaxOnScreen {
		e.evictOldest(s)
	}

	ent := e.parameterize(text, kind)
	ent.Auto = auto
	slot := e.pool.Acquire()
	slot.entity = ent
	e.active = append(e.active, slot)

	id := ent.ID
	s.Animate(ent, func() { e.complete(id) })
	return ent, nil
}

// parameterize draws the random presentation of a new comment.
func (e *Engine) parameterize(text string, kind Kind) Entity {
	ent := Entity{
		ID:      uuid.NewString(),
		Text:    text,
		Kind:    kind,
		Created: e.sched.Now(),
	}
	if kind == KindNone {
		ent.Style = Styles[e.rnd.Intn(len(Styles))]
	} else {
		ent.Style = kind.Style()
	}
	ent.Top = e.randInt(minTop, maxTop)
	ent.Duration = time.Duration(float64(e.cfg.BaseSpeed) * (0.6 + e.rnd.Float64()*0.8))
	ent.FontSize = e.randInt(minFontSize, maxFontSize)
	if e.rnd.Float64() > rotateAbove {
		ent.Rotated = true
		ent.Rotation = e.randInt(-maxRotation, maxRotation)
	}
	return ent
}

// randInt returns a uniform integer in [lo, hi].
func (e *Engine) randInt(lo, hi int) int {
	return lo + e.rnd.Intn(hi-lo+1)
}

func (e *Engine) evictOldest(s Surface) {
	if len(e.active) == 0 {
		return
	}
	oldest := e.active[0]
	e.active = e.active[1:]
	e.log.Debugf("Evicting comment %s", oldest.entity.ID)
	if s != nil {
		s.Remove(oldest.entity.ID)
	}
	e.pool.Release(oldest)
}

// complete handles the end of a traversal. Repeated or late calls are no-ops.
func (e *Engine) complete(id string) {
	i := slices.IndexFunc(e.active, func(s *Slot) bool { return s.entity.ID == id })
	if i < 0 {
		return
	}
	slot := e.active[i]
	e.active = slices.Delete(e.active, i, i+1)
	if s, ok := surface.Lookup[Surface](e.surfaces, surface.Danmaku); ok {
		s.Remove(id)
	}
	e.pool.Release(slot)
}

// StartAutoFeed emits a quick warm-up of comments then one comment every
// interval. Calling it again replaces the recurring timer.
func (e *Engine) StartAutoFeed() {
	for i := range warmupCount {
		e.sched.Schedule(time.Duration(i)*warmupStagger, e.feedOne)
	}
	if e.feedRunning {
		e.sched.Cancel(e.feed)
	}
	e.feedRunning = true
	e.scheduleFeed()
}

func (e *Engine) scheduleFeed() {
	e.feed = e.sched.Schedule(e.cfg.Interval, func() {
		e.feedOne()
		if e.feedRunning {
			e.scheduleFeed()
		}
	})
}

func (e *Engine) feedOne() {
	msg := e.cfg.Messages[e.rnd.Intn(len(e.cfg.Messages))]
	if _, err := e.create(msg, KindNone, true); err != nil {
		e.log.Debugf("Auto-feed skipped: %v", err)
	}
}

// StopAutoFeed cancels the recurring timer. Warm-up and burst comments
// already scheduled still run.
func (e *Engine) StopAutoFeed() {
	if !e.feedRunning {
		return
	}
	e.sched.Cancel(e.feed)
	e.feedRunning = false
}

// AutoFeedRunning reports whether the recurring timer is active.
func (e *Engine) AutoFeedRunning() bool { return e.feedRunning }

// ClearAll removes every live comment.
func (e *Engine) ClearAll() {
	s, _ := surface.Lookup[Surface](e.surfaces, surface.Danmaku)
	for len(e.active) > 0 {
		e.evictOldest(s)
	}
}

// Active returns the live comments, oldest first.
func (e *Engine) Active() []Entity {
	out := make([]Entity, len(e.active))
	for i, s := range e.active {
		out[i] = s.entity
	}
	return out
}

// Len returns the number of live comments.
func (e *Engine) Len() int { return len(e.active) }

// PoolStatus reports the slot pool counters.
func (e *Engine) PoolStatus() PoolStatus { return e.pool.Status() }
