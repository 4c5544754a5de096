package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/countdown"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/history"
	"github.com/ensigniasec/spring-countdown/internal/settings"
	"github.com/ensigniasec/spring-countdown/internal/storage"
	"github.com/ensigniasec/spring-countdown/internal/surface"
	"github.com/ensigniasec/spring-countdown/internal/theme"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

const audioNoticeFor = 5 * time.Second

// Options configures New.
type Options struct {
	Scheduler clock.Scheduler
	Surfaces  *surface.Registry
	Store     *storage.Store
	Rand      danmaku.Rand
	// Audio may be nil, in which case the app is silent.
	Audio       Audio
	Target      time.Time
	Danmaku     danmaku.Config
	ReachedText string
}

// App wires user input and engine callbacks together. Like the engines it
// owns, every method must run on the scheduler's callback queue.
type App struct {
	sched    clock.Scheduler
	surfaces *surface.Registry
	rnd      danmaku.Rand
	audio    Audio
	log      *logrus.Entry

	Countdown *countdown.Engine
	Danmaku   *danmaku.Engine
	Toasts    *toast.Queue
	Settings  *settings.Manager
	History   *history.Manager

	current settings.Settings

	started     bool
	blurred     bool
	closed      bool
	urgent      bool
	celebrating bool
	subtitle    string
	titleClicks int
	lastClick   time.Time

	// pending holds one-shot timers owned by the app itself, cancelled on Close.
	pending map[clock.Handle]struct{}
}

// New builds the engines, loads and applies the persisted settings and wires
// the countdown thresholds to their celebrations. Nothing runs until Start.
func New(opts Options) *App {
	if opts.Audio == nil {
		opts.Audio = silentAudio{}
	}
	if opts.Surfaces == nil {
		opts.Surfaces = surface.NewRegistry()
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}

	a := &App{
		sched:    opts.Scheduler,
		surfaces: opts.Surfaces,
		rnd:      opts.Rand,
		audio:    opts.Audio,
		log:      logrus.WithField("component", "app"),
		subtitle: DefaultSubtitle,
		pending:  make(map[clock.Handle]struct{}),
	}

	a.Countdown = countdown.NewEngine(opts.Scheduler, opts.Surfaces, opts.Target)
	if opts.ReachedText != "" {
		a.Countdown.SetReachedText(opts.ReachedText)
	}
	a.Danmaku = danmaku.NewEngine(opts.Scheduler, opts.Surfaces, opts.Rand, opts.Danmaku)
	a.Danmaku.SetCuePlayer(opts.Audio)
	a.Toasts = toast.NewQueue(opts.Scheduler, opts.Surfaces)
	a.Settings = settings.NewManager(opts.Store)
	a.History = history.NewManager(opts.Store, opts.Scheduler.Now)

	if n, ok := opts.Audio.(interface{ SetNotice(func(string)) }); ok {
		n.SetNotice(a.audioNotice)
	}

	a.Countdown.OnOneDayThreshold(a.oneDayEgg)
	a.Countdown.OnEnterFinalMinute(a.enterFinalMinute)
	a.Countdown.OnExitFinalMinute(a.exitFinalMinute)
	a.Countdown.OnReached(a.newYear)

	a.applySettings(a.Settings.Load())
	return a
}

// Start begins the countdown and the auto-feed.
func (a *App) Start() {
	if a.closed || a.started {
		return
	}
	a.started = true
	a.log.Debug("Starting countdown and auto-feed")
	a.paintSubtitle()
	a.Countdown.Start()
	a.Danmaku.StartAutoFeed()
}

// Close cancels every timer the app knows about, clears the screen and
// releases the audio output. It is safe to call more than once.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.Countdown.Stop()
	a.Danmaku.StopAutoFeed()
	for h := range a.pending {
		a.sched.Cancel(h)
	}
	clear(a.pending)
	a.Danmaku.ClearAll()
	a.Toasts.ClearAll()
	a.log.Debug("Torn down")
	return a.audio.Close()
}

// Closed reports whether Close has run.
func (a *App) Closed() bool { return a.closed }

// CurrentSettings returns the settings currently in effect.
func (a *App) CurrentSettings() settings.Settings { return a.current }

// Theme returns the active theme.
func (a *App) Theme() theme.Theme {
	if t, ok := theme.Lookup(a.current.Theme); ok {
		return t
	}
	return theme.MustLookup(theme.DefaultID)
}

// Urgent reports whether the final-minute styling is on.
func (a *App) Urgent() bool { return a.urgent }

// Celebrating reports whether the one-day styling is on.
func (a *App) Celebrating() bool { return a.celebrating }

// Subtitle returns the current subtitle text.
func (a *App) Subtitle() string { return a.subtitle }

// MouseFollow reports whether mouse sparkles are on.
func (a *App) MouseFollow() bool { return a.current.MouseFollowEnabled }

// ReloadSettings re-reads the settings record and applies it.
func (a *App) ReloadSettings() settings.Settings {
	a.applySettings(a.Settings.Load())
	return a.current
}

// UpdateSetting persists one setting by key and applies the result.
func (a *App) UpdateSetting(key, value string) error {
	if err := a.Settings.Update(key, value); err != nil {
		return err
	}
	a.ReloadSettings()
	return nil
}

func (a *App) applySettings(s settings.Settings) {
	a.current = s
	a.Danmaku.SetBaseSpeed(time.Duration(s.DanmakuSpeed) * time.Millisecond)
	a.Danmaku.SetInterval(time.Duration(s.DanmakuInterval) * time.Millisecond)
	a.Danmaku.SetMaxOnScreen(s.MaxDanmakuOnScreen)
	a.audio.SetEnabled(s.SoundEnabled)
	a.audio.SetVolume(s.SoundVolume)
}

// after runs fn once after d unless Close runs first.
func (a *App) after(d time.Duration, fn func()) {
	var h clock.Handle
	h = a.sched.Schedule(d, func() {
		delete(a.pending, h)
		fn()
	})
	a.pending[h] = struct{}{}
}

// audioNotice may run on the audio writer goroutine, so it only touches the
// scheduler and leaves the toast to the next turn of the queue.
func (a *App) audioNotice(msg string) {
	a.sched.Schedule(0, func() {
		if !a.closed {
			a.Toasts.Show(msg, toast.Warning, audioNoticeFor)
		}
	})
}

func (a *App) paintSubtitle() {
	if s, ok := surface.Lookup[SubtitleSurface](a.surfaces, surface.Subtitle); ok {
		s.SetSubtitle(a.subtitle)
	}
}

func (a *App) decor() (Decor, bool) {
	return surface.Lookup[Decor](a.surfaces, surface.CountdownText)
}
