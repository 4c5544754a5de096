package danmaku

import "time"

// Burst is a fixed run of comments at a fixed stagger. Bursts run to
// completion independently of the auto-feed and of each other.
type Burst struct {
	Messages []string
	Kind     Kind
	Count    int
	Stagger  time.Duration
	// InOrder emits Messages[i%len] instead of a random pick.
	InOrder bool
	// Cue is played on every CueEvery-th comment, starting with the first.
	Cue      string
	CueEvery int
}

// FireworkShow is the firework comment rain.
func FireworkShow() Burst {
	return Burst{
		Messages: FireworkMessages,
		Kind:     KindFirework,
		Count:    20,
		Stagger:  150 * time.Millisecond,
		Cue:      "firework",
		CueEvery: 3,
	}
}

// OneDayBurst runs when one day remains.
func OneDayBurst() Burst {
	return Burst{
		Messages: OneDayMessages,
		Kind:     KindFirework,
		Count:    15,
		Stagger:  800 * time.Millisecond,
	}
}

func TitleEggBurst() Burst {
	return Burst{
		Messages: SurpriseMessages,
		Kind:     KindFirework,
		Count:    10,
		Stagger:  200 * time.Millisecond,
	}
}

// NewYearBurst greets the new year once the countdown is reached.
func NewYearBurst() Burst {
	return Burst{
		Messages: NewYearMessages,
		Count:    len(NewYearMessages),
		Stagger:  500 * time.Millisecond,
		InOrder:  true,
	}
}

// TriggerBurst schedules b. It reports ErrUnknownKind without scheduling
// anything when b.Kind is invalid.
func (e *Engine) TriggerBurst(b Burst) error {
	if !b.Kind.Valid() {
		e.log.Warnf("Rejecting burst with kind %v", b.Kind)
		return ErrUnknownKind
	}
	if len(b.Messages) == 0 {
		b.Messages = e.cfg.Messages
	}
	for i := range b.Count {
		e.sched.Schedule(time.Duration(i)*b.Stagger, func() {
			var msg string
			if b.InOrder {
				msg = b.Messages[i%len(b.Messages)]
			} else {
				msg = b.Messages[e.rnd.Intn(len(b.Messages))]
			}
			if _, err := e.create(msg, b.Kind, false); err != nil {
				e.log.Debugf("Burst comment skipped: %v", err)
			}
			if b.Cue != "" && b.CueEvery > 0 && i%b.CueEvery == 0 && e.cues != nil {
				e.cues.Play(b.Cue)
			}
		})
	}
	return nil
}
