package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every backend is opened with.
const SampleRate = beep.SampleRate(44100)

const (
	toneDuration = 100 * time.Millisecond
	sendDuration = 200 * time.Millisecond
	gainFloor    = 0.001
)

// Cue kinds.
const (
	KindDanmaku     = "danmaku"
	KindButton      = "button"
	KindSend        = "send"
	KindFirework    = "firework"
	KindCelebration = "celebration"
)

// Kinds lists the known cue kinds.
func Kinds() []string {
	return []string{KindDanmaku, KindButton, KindSend, KindFirework, KindCelebration}
}

// point is one step of a parameter automation: the value is set at t, or
// ramped linearly to it from the previous point when ramp is true.
type point struct {
	t    float64
	v    float64
	ramp bool
}

type automation []point

func (a automation) at(t float64) float64 {
	if len(a) == 0 {
		return 0
	}
	v, prevT := a[0].v, a[0].t
	for _, p := range a[1:] {
		if t < p.t {
			if p.ramp && p.t > prevT {
				return v + (p.v-v)*(t-prevT)/(p.t-prevT)
			}
			return v
		}
		v, prevT = p.v, p.t
	}
	return v
}

// cue describes a synthesized sound.
type cue struct {
	freq     automation
	duration time.Duration
}

func cueFor(kind string) (cue, bool) {
	switch kind {
	case KindDanmaku:
		return cue{freq: automation{{0, 800, false}, {0.05, 1200, true}}, duration: toneDuration}, true
	case KindButton:
		return cue{freq: automation{{0, 600, false}, {0.05, 900, true}}, duration: toneDuration}, true
	case KindSend:
		return cue{freq: automation{{0, 1200, false}, {0.1, 1800, true}, {0.2, 600, true}}, duration: sendDuration}, true
	case KindFirework:
		return cue{freq: automation{{0, 400, false}, {0.1, 1600, true}}, duration: toneDuration}, true
	case KindCelebration:
		return cue{freq: automation{{0, 523, false}, {0.05, 659, false}, {0.1, 784, false}}, duration: toneDuration}, true
	}
	return cue{}, false
}

// sweep is a sine oscillator following a frequency automation with a gain
// that ramps from full to near silence over the first 100ms.
type sweep struct {
	freq     automation
	gain     automation
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newSweep(c cue, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		freq:  c.freq,
		gain:  automation{{0, 1, false}, {toneDuration.Seconds(), gainFloor, true}},
		rate:  rate,
		total: rate.N(c.duration),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.rate)
		val := math.Sin(2*math.Pi*s.phase) * s.gain.at(t)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq.at(t) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// newVolume scales s by vol in [0, 1]. Zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// synthesize renders kind at the given volume as mono samples.
func synthesize(kind string, volume float64, rate beep.SampleRate) ([]float64, bool) {
	buf, ok := render(kind, rate)
	if !ok {
		return nil, false
	}
	return playback(buf, volume), true
}

// render buffers kind at unity gain.
func render(kind string, rate beep.SampleRate) (*beep.Buffer, bool) {
	c, ok := cueFor(kind)
	if !ok {
		return nil, false
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(newSweep(c, rate))
	return buf, true
}

// playback streams a rendered cue through the volume stage.
func playback(buf *beep.Buffer, volume float64) []float64 {
	return drain(newVolume(buf.Streamer(0, buf.Len()), volume), buf.Len())
}

// drain reads s to the end and keeps the left channel.
func drain(s beep.Streamer, size int) []float64 {
	out := make([]float64, 0, size)
	frames := make([][2]float64, 512)
	for {
		n, more := s.Stream(frames)
		for _, frame := range frames[:n] {
			out = append(out, frame[0])
		}
		if !more || n == 0 {
			return out
		}
	}
}

// encodePCM converts mono samples to interleaved stereo signed 16-bit
// little-endian frames.
func encodePCM(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, v := range samples {
		v = max(-1, min(1, v))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
