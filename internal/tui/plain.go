package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ensigniasec/spring-countdown/internal/app"
	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/countdown"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/surface"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

const plainHelp = "Type a wish and press enter. Commands: /fireworks /special /egg /sound /theme [id] /history /help /quit"

// lineScreen prints what the engines paint as plain lines.
type lineScreen struct {
	w     io.Writer
	sched clock.Scheduler
}

func (s *lineScreen) attach(reg *surface.Registry) {
	for _, id := range []string{surface.CountdownText, surface.Danmaku, surface.Toasts, surface.Subtitle} {
		reg.Attach(id, s)
	}
}

func (s *lineScreen) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, format+"\n", args...)
}

// Paint prints the first paint, every new minute, and every second of the
// final minute.
func (s *lineScreen) Paint(values [4]int, changed [4]bool) {
	snap := countdown.Snapshot{Days: values[0], Hours: values[1], Minutes: values[2], Seconds: values[3]}
	first := changed == [4]bool{}
	if first || changed[0] || changed[1] || changed[2] || snap.FinalMinute() {
		s.printf("⏳ %s", snap)
	}
}

func (s *lineScreen) ClearPulse(int)           {}
func (s *lineScreen) PaintReached(text string) { s.printf("🎆 %s", text) }
func (s *lineScreen) SetUrgent(bool)           {}
func (s *lineScreen) SetCelebrating(bool)      {}
func (s *lineScreen) SetSubtitle(text string)  { s.printf("~ %s ~", text) }
func (s *lineScreen) Remove(string)            {}
func (s *lineScreen) DismissToast(string)      {}
func (s *lineScreen) ShowToast(t toast.Toast)  { s.printf("%s %s", t.Severity.Icon(), t.Message) }

// Animate prints the comment and reports it finished after its traversal time.
func (s *lineScreen) Animate(e danmaku.Entity, done func()) {
	prefix := "💬"
	if e.Kind != danmaku.KindNone {
		prefix = "🎇"
	}
	s.printf("%s %s", prefix, e.Text)
	s.sched.Schedule(e.Duration, done)
}

// RunPlain runs the countdown without the full-screen UI. Comments and
// notices are printed as lines to out; each line read from in is sent as a
// comment or run as a command. It returns when ctx is done, on /quit, or when
// in is exhausted.
func RunPlain(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := clock.NewQueue()
	loop := clock.NewLoop(q.Dispatch)
	reg := surface.NewRegistry()
	(&lineScreen{w: out, sched: loop}).attach(reg)
	a := newApp(opts, loop, reg)

	q.Post(func() {
		_, _ = fmt.Fprintln(out, plainHelp)
		a.Start()
		if s := opts.Simulate; s != nil {
			a.Simulate(s.Days, s.Hours, s.Minutes, s.Seconds)
		}
	})

	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := sc.Text()
			q.Post(func() { runCommand(a, line, out, cancel) })
		}
		q.Post(cancel)
	}()

	err := q.Run(ctx)
	loop.CancelAll()
	if cerr := a.Close(); cerr != nil {
		return cerr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runCommand handles one input line on the queue.
func runCommand(a *app.App, line string, out io.Writer, quit func()) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
	case "/quit":
		quit()
	case "/help":
		_, _ = fmt.Fprintln(out, plainHelp)
	case "/fireworks":
		a.FireworkShow()
	case "/special":
		a.SendSpecial()
	case "/egg":
		a.TitleClick()
	case "/sound":
		a.ToggleSound()
	case "/history":
		a.History.ViewHistory(out)
	case "/theme":
		if arg = strings.TrimSpace(arg); arg == "" {
			a.CycleTheme()
			return
		}
		a.SetTheme(arg)
	default:
		a.Send(line)
	}
}
