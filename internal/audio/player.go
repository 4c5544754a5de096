package audio

import (
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus"
)

const queueSize = 32

// DisabledNotice is shown once when no audio output can be started.
const DisabledNotice = "Sound is unavailable on this system; sound effects are off."

type request struct {
	kind   string
	volume float64
}

// Player synthesizes cues on demand and writes them to a Sink on its own
// goroutine. Play never blocks: requests beyond the queue are dropped.
//
// The output is opened lazily on the first Play after Unlock. If opening or a
// later write fails the player stays disabled for the rest of the session and
// reports it once through the notice callback. A write failure reports from
// the writer goroutine.
type Player struct {
	log    *logrus.Entry
	open   Sink
	notice func(msg string)

	enabled   atomic.Bool
	unlocked  atomic.Bool
	suspended atomic.Bool
	failed    atomic.Bool
	volume    atomic.Uint64

	mu      sync.Mutex
	started bool
	closed  bool
	out     io.WriteCloser
	reqs    chan request
	done    chan struct{}

	noticeOnce sync.Once

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a Player writing to open. notice may be nil.
func NewPlayer(open Sink, enabled bool, volume float64, notice func(msg string)) *Player {
	p := &Player{
		log:    logrus.WithField("component", "audio"),
		open:   open,
		notice: notice,
	}
	p.enabled.Store(enabled)
	p.SetVolume(volume)
	return p
}

// SetNotice replaces the callback used for the one-time disabled notice.
func (p *Player) SetNotice(notice func(msg string)) {
	p.mu.Lock()
	p.notice = notice
	p.mu.Unlock()
}

// Unlock marks that the user has interacted. Until then Play returns false.
func (p *Player) Unlock() { p.unlocked.Store(true) }

// SetEnabled toggles sound effects.
func (p *Player) SetEnabled(v bool) { p.enabled.Store(v) }

// Enabled reports the sound effects setting.
func (p *Player) Enabled() bool { return p.enabled.Load() }

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.volume.Store(math.Float64bits(max(0, min(1, v))))
}

// Volume returns the current volume.
func (p *Player) Volume() float64 { return math.Float64frombits(p.volume.Load()) }

// Suspend pauses playback, e.g. while the terminal is unfocused.
func (p *Player) Suspend() { p.suspended.Store(true) }

// Resume undoes Suspend.
func (p *Player) Resume() { p.suspended.Store(false) }

// Available reports whether the output has not failed.
func (p *Player) Available() bool { return !p.failed.Load() }

// Play queues the cue kind and reports whether it was accepted.
func (p *Player) Play(kind string) bool {
	if _, ok := cueFor(kind); !ok {
		p.log.Warnf("Unknown sound kind: %s", kind)
		return false
	}
	if !p.enabled.Load() || !p.unlocked.Load() || p.suspended.Load() || p.failed.Load() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ensureStarted() {
		return false
	}

	select {
	case p.reqs <- request{kind: kind, volume: p.Volume()}:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// ensureStarted opens the sink on first use. Caller holds mu.
func (p *Player) ensureStarted() bool {
	if p.closed {
		return false
	}
	if p.started {
		return true
	}
	out, err := p.open()
	if err != nil {
		p.disable(err)
		return false
	}
	p.out = out
	p.reqs = make(chan request, queueSize)
	p.done = make(chan struct{})
	p.started = true
	go p.loop(p.out, p.reqs, p.done)
	p.log.Debug("Audio output started")
	return true
}

// disable marks the output failed and emits the notice once. Caller holds mu.
func (p *Player) disable(err error) {
	p.failed.Store(true)
	p.log.Warnf("Disabling audio: %v", err)
	p.noticeOnce.Do(func() {
		if p.notice != nil {
			p.notice(DisabledNotice)
		}
	})
}

func (p *Player) loop(out io.Writer, reqs <-chan request, done chan<- struct{}) {
	defer close(done)
	cache := make(map[string]*beep.Buffer)
	for req := range reqs {
		if p.failed.Load() {
			continue
		}
		buf, ok := cache[req.kind]
		if !ok {
			buf, _ = render(req.kind, SampleRate)
			cache[req.kind] = buf
		}
		if _, err := out.Write(encodePCM(playback(buf, req.volume))); err != nil {
			p.mu.Lock()
			p.disable(err)
			p.mu.Unlock()
			continue
		}
		p.played.Add(1)
	}
}

// Stats returns the number of cues written and dropped.
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Close stops the writer goroutine and closes the output.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	started := p.started
	p.mu.Unlock()

	if !started {
		return nil
	}
	close(p.reqs)
	<-p.done
	return p.out.Close()
}
