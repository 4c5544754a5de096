package tui

import (
	"context"
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/app"
	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/storage"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

// Simulation moves the target to now plus the offset once the countdown has
// started.
type Simulation struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Options configures Run and RunPlain.
type Options struct {
	Store       *storage.Store
	Target      time.Time
	Danmaku     danmaku.Config
	ReachedText string
	// Audio may be nil for a silent session.
	Audio    app.Audio
	Simulate *Simulation
	// KeepLogs leaves logrus output untouched, for when it already goes to a
	// file. Otherwise logging is silenced while the full-screen UI runs.
	KeepLogs bool
	// Rand seeds comment placement; nil uses a time-seeded source.
	Rand danmaku.Rand
}

func newApp(opts Options, sched clock.Scheduler, reg *surface.Registry) *app.App {
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // Decoration only.
	}
	return app.New(app.Options{
		Scheduler:   sched,
		Surfaces:    reg,
		Store:       opts.Store,
		Rand:        rnd,
		Audio:       opts.Audio,
		Target:      opts.Target,
		Danmaku:     opts.Danmaku,
		ReachedText: opts.ReachedText,
	})
}

// Run starts the Bubble Tea TUI program. Timer callbacks are delivered to the
// update loop as messages, so the engines only ever run there.
func Run(ctx context.Context, opts Options) error {
	loop := clock.NewLoop(nil)
	reg := surface.NewRegistry()
	scr := newScreen(loop.Now)
	scr.attach(reg)
	a := newApp(opts, loop, reg)

	model := NewModel(a, loop, scr, opts.Simulate)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	loop.SetDispatcher(func(fn func()) { p.Send(runMsg{fn: fn}) })

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	if !opts.KeepLogs {
		prevOut := logrus.StandardLogger().Out
		logrus.SetOutput(io.Discard)
		defer logrus.SetOutput(prevOut)
	}

	go func() {
		<-ctx.Done()
		p.Send(quitMsg{Reason: ctx.Err()})
	}()

	_, err := p.Run()
	loop.CancelAll()
	if cerr := a.Close(); cerr != nil {
		logrus.Debugf("Closing audio: %v", cerr)
	}
	return err
}
