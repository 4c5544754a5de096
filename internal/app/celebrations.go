package app

import (
	"time"

	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

// Texts shown by the celebrations.
const (
	DefaultSubtitle     = "ovo Counting down to the Year of the Horse ovo"
	NewYearSubtitle     = "ovo Happy New Year! All the best! ovo"
	OneDayToast         = "🎊 One day until the Spring Festival! The Year of the Horse is coming! 🐴"
	FinalMinuteToast    = "⏰ Final minute! Get ready for the Spring Festival! 🎊"
	oneDayToastFor      = 5 * time.Second
	finalMinuteToastFor = 4 * time.Second
	fireworkShowDelay   = 3 * time.Second
)

func (a *App) oneDayEgg() {
	a.log.Info("One day left")
	a.Toasts.Show(OneDayToast, toast.Info, oneDayToastFor)
	if err := a.Danmaku.TriggerBurst(danmaku.OneDayBurst()); err != nil {
		a.log.Warnf("One-day burst failed: %v", err)
	}
	a.after(fireworkShowDelay, a.FireworkShow)
	a.setCelebrating(true)
}

func (a *App) enterFinalMinute() {
	a.log.Info("Final minute")
	a.Toasts.Show(FinalMinuteToast, toast.Success, finalMinuteToastFor)
	a.setUrgent(true)
}

func (a *App) exitFinalMinute() {
	a.setUrgent(false)
}

func (a *App) newYear() {
	a.log.Info("Target reached")
	a.setUrgent(false)
	if err := a.Danmaku.TriggerBurst(danmaku.NewYearBurst()); err != nil {
		a.log.Warnf("New year burst failed: %v", err)
	}
	a.subtitle = NewYearSubtitle
	a.paintSubtitle()
}

func (a *App) setUrgent(on bool) {
	a.urgent = on
	if d, ok := a.decor(); ok {
		d.SetUrgent(on)
	}
}

func (a *App) setCelebrating(on bool) {
	a.celebrating = on
	if d, ok := a.decor(); ok {
		d.SetCelebrating(on)
	}
}
