package app

// Decor is the optional decoration side of the countdown surface, looked up
// under surface.CountdownText next to countdown.Display.
type Decor interface {
	SetUrgent(on bool)
	SetCelebrating(on bool)
}

// SubtitleSurface shows the line under the title.
type SubtitleSurface interface {
	SetSubtitle(text string)
}

// SparkleSurface draws short-lived mouse-follow sparkles.
type SparkleSurface interface {
	AddSparkle(id string, x, y int)
	RemoveSparkle(id string)
}

// Audio is the cue player the app drives. *audio.Player satisfies it.
type Audio interface {
	Play(kind string) bool
	Unlock()
	SetEnabled(v bool)
	SetVolume(v float64)
	Suspend()
	Resume()
	Close() error
}

type silentAudio struct{}

func (silentAudio) Play(string) bool  { return false }
func (silentAudio) Unlock()           {}
func (silentAudio) SetEnabled(bool)   {}
func (silentAudio) SetVolume(float64) {}
func (silentAudio) Suspend()          {}
func (silentAudio) Resume()           {}
func (silentAudio) Close() error      { return nil }
