package app

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ensigniasec/spring-countdown/internal/audio"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/history"
	"github.com/ensigniasec/spring-countdown/internal/settings"
	"github.com/ensigniasec/spring-countdown/internal/surface"
	"github.com/ensigniasec/spring-countdown/internal/theme"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

const (
	doubleClickWindow = 300 * time.Millisecond
	sparkleChance     = 0.95
	sparkleLife       = time.Second
	titleEggClicks    = 5
	themeToastFor     = 2 * time.Second
)

// Interact records a user interaction. The first one unlocks audio.
func (a *App) Interact() { a.audio.Unlock() }

// Send posts text typed by the user. Blank input is ignored. The text is
// logged to history and, unless it is one of the stock messages, saved as a
// preset.
func (a *App) Send(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	a.Interact()
	a.audio.Play(audio.KindSend)
	return a.post(text)
}

// SendQuick posts the n-th stock message (1-based), as the quick buttons do.
func (a *App) SendQuick(n int) bool {
	msgs := a.Danmaku.Messages()
	if n < 1 || n > len(msgs) {
		return false
	}
	a.Interact()
	a.audio.Play(audio.KindButton)
	return a.post(msgs[n-1])
}

func (a *App) post(text string) bool {
	_, err := a.Danmaku.Enqueue(text, danmaku.KindNone)
	if err != nil {
		a.log.Debugf("Comment not shown: %v", err)
	}
	a.History.Append(text, history.TypeUser)
	if !slices.Contains(a.Danmaku.Messages(), text) {
		a.History.AddPreset(text)
	}
	return err == nil
}

// SendSpecial posts a random special comment with a firework cue.
func (a *App) SendSpecial() bool {
	a.Interact()
	_, err := a.Danmaku.EnqueueSpecial()
	a.audio.Play(audio.KindFirework)
	return err == nil
}

// FireworkShow starts the firework comment rain.
func (a *App) FireworkShow() {
	a.Interact()
	if err := a.Danmaku.TriggerBurst(danmaku.FireworkShow()); err != nil {
		a.log.Warnf("Firework show failed: %v", err)
	}
}

// TitleClick counts activations of the title. Every fifth one sets off the
// hidden egg and the counter starts over.
func (a *App) TitleClick() bool {
	a.Interact()
	a.titleClicks++
	if a.titleClicks < titleEggClicks {
		return false
	}
	a.titleClicks = 0
	if err := a.Danmaku.TriggerBurst(danmaku.TitleEggBurst()); err != nil {
		a.log.Warnf("Title egg failed: %v", err)
	}
	a.audio.Play(audio.KindCelebration)
	return true
}

// ToggleSound flips and persists the sound setting and announces it.
func (a *App) ToggleSound() bool {
	a.Interact()
	on := !a.current.SoundEnabled
	a.current.SoundEnabled = on
	a.audio.SetEnabled(on)
	a.Settings.Save(settings.Partial{SoundEnabled: &on})
	a.announce(onOff("ovo Sound", on))
	return on
}

// ToggleMouseFollow flips and persists mouse sparkles and announces it.
func (a *App) ToggleMouseFollow() bool {
	on := !a.current.MouseFollowEnabled
	a.current.MouseFollowEnabled = on
	a.Settings.Save(settings.Partial{MouseFollowEnabled: &on})
	a.announce(onOff("ovo Mouse sparkles", on))
	return on
}

func (a *App) announce(text string) {
	if _, err := a.Danmaku.Enqueue(text, danmaku.KindSparkle); err != nil {
		a.log.Debugf("Announcement not shown: %v", err)
	}
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

// Click handles a click on the backdrop. Two clicks within 300ms toggle
// mouse sparkles.
func (a *App) Click() {
	a.Interact()
	now := a.sched.Now()
	if !a.lastClick.IsZero() && now.Sub(a.lastClick) < doubleClickWindow {
		a.ToggleMouseFollow()
		a.lastClick = time.Time{}
		return
	}
	a.lastClick = now
}

// MouseMove may leave a sparkle at (x, y) while mouse sparkles are on.
func (a *App) MouseMove(x, y int) bool {
	if !a.current.MouseFollowEnabled || a.closed {
		return false
	}
	if a.rnd.Float64() <= sparkleChance {
		return false
	}
	s, ok := surface.Lookup[SparkleSurface](a.surfaces, surface.Sparkles)
	if !ok {
		return false
	}
	id := uuid.NewString()
	s.AddSparkle(id, x, y)
	a.after(sparkleLife, func() {
		if s, ok := surface.Lookup[SparkleSurface](a.surfaces, surface.Sparkles); ok {
			s.RemoveSparkle(id)
		}
	})
	return true
}

// SelectTheme switches to the theme at 1-based position n.
func (a *App) SelectTheme(n int) bool {
	id, ok := theme.At(n)
	if !ok {
		return false
	}
	return a.SetTheme(id)
}

// CycleTheme switches to the next theme.
func (a *App) CycleTheme() bool {
	return a.SetTheme(theme.Next(a.current.Theme))
}

// SetTheme switches to the theme with the given id, persists it and shows a
// short toast. Unknown ids are rejected.
func (a *App) SetTheme(id string) bool {
	t, ok := theme.Lookup(id)
	if !ok {
		a.log.Warnf("Unknown theme: %s", id)
		return false
	}
	a.current.Theme = id
	if !a.Settings.Save(settings.Partial{Theme: &id}) {
		a.log.Warn("Theme not persisted")
	}
	a.Toasts.Show(fmt.Sprintf("Switched to the %s theme", t.Name), toast.Success, themeToastFor)
	return true
}

// Blur pauses the feed, the countdown and audio while the terminal is not
// focused. Focus changes before Start are ignored.
func (a *App) Blur() {
	if a.closed || !a.started || a.blurred {
		return
	}
	a.blurred = true
	a.Danmaku.StopAutoFeed()
	a.Countdown.Stop()
	a.audio.Suspend()
}

// Focus undoes Blur.
func (a *App) Focus() {
	if a.closed || !a.started || !a.blurred {
		return
	}
	a.blurred = false
	a.Danmaku.StartAutoFeed()
	a.Countdown.Start()
	a.audio.Resume()
}

// Blurred reports whether the app is paused by Blur.
func (a *App) Blurred() bool { return a.blurred }

// Simulate moves the target to now plus the offset and restarts the
// countdown, clearing every celebration already shown.
func (a *App) Simulate(days, hours, minutes, seconds int) {
	a.resetCelebrations()
	a.Countdown.Simulate(days, hours, minutes, seconds)
}

// SetTarget replaces the target instant and restarts the countdown.
func (a *App) SetTarget(t time.Time) {
	a.resetCelebrations()
	a.Countdown.SetTargetAndRestart(t)
}

func (a *App) resetCelebrations() {
	a.setCelebrating(false)
	if a.subtitle != DefaultSubtitle {
		a.subtitle = DefaultSubtitle
		a.paintSubtitle()
	}
}
