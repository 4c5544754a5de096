package danmaku

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

// fakeSurface records animations and lets tests finish them on demand.
type fakeSurface struct {
	animated []Entity
	done     map[string]func()
	removed  []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{done: make(map[string]func())}
}

func (f *fakeSurface) Animate(e Entity, done func()) {
	f.animated = append(f.animated, e)
	f.done[e.ID] = done
}

func (f *fakeSurface) Remove(id string) { f.removed = append(f.removed, id) }

func (f *fakeSurface) finish(id string) { f.done[id]() }

// scriptedRand replays fixed draws.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type countingCues struct{ played []string }

func (c *countingCues) Play(kind string) bool {
	c.played = append(c.played, kind)
	return true
}

func newEngine(t *testing.T, rnd Rand, mutate func(*Config)) (*Engine, *clock.Manual, *fakeSurface) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))
	reg := surface.NewRegistry()
	fs := newFakeSurface()
	reg.Attach(surface.Danmaku, fs)
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return NewEngine(clk, reg, rnd, cfg), clk, fs
}

func TestEnqueue_Parameterization(t *testing.T) {
	rnd := &scriptedRand{ints: []int{2, 10, 4, 15}, floats: []float64{0.5, 0.9}}
	e, _, fs := newEngine(t, rnd, nil)

	ent, err := e.Enqueue("hello", KindNone)
	require.NoError(t, err)

	assert.Equal(t, "hello", ent.Text)
	assert.Equal(t, "style-3", ent.Style)
	assert.Equal(t, 25, ent.Top)
	assert.Equal(t, 15*time.Second, ent.Duration)
	assert.Equal(t, 20, ent.FontSize)
	assert.True(t, ent.Rotated)
	assert.Equal(t, 5, ent.Rotation)
	require.Len(t, fs.animated, 1)
	assert.Equal(t, ent.ID, fs.animated[0].ID)
}

func TestEnqueue_BoundsWithSeededRand(t *testing.T) {
	e, _, _ := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 1000 })
	for range 500 {
		ent, err := e.Enqueue("x", KindNone)
		require.NoError(t, err)
		assert.Contains(t, Styles, ent.Style)
		assert.GreaterOrEqual(t, ent.Top, 15)
		assert.LessOrEqual(t, ent.Top, 75)
		assert.GreaterOrEqual(t, ent.FontSize, 16)
		assert.LessOrEqual(t, ent.FontSize, 24)
		assert.GreaterOrEqual(t, ent.Duration, 9*time.Second)
		assert.Less(t, ent.Duration, 21*time.Second)
		if ent.Rotated {
			assert.GreaterOrEqual(t, ent.Rotation, -10)
			assert.LessOrEqual(t, ent.Rotation, 10)
		} else {
			assert.Zero(t, ent.Rotation)
		}
	}
}

func TestEnqueue_KindOverridesStyle(t *testing.T) {
	// No style draw happens for special kinds.
	rnd := &scriptedRand{ints: []int{0, 0}, floats: []float64{0, 0}}
	e, _, _ := newEngine(t, rnd, nil)

	ent, err := e.Enqueue("boom", KindFirework)
	require.NoError(t, err)
	assert.Equal(t, "firework-style", ent.Style)
	assert.Equal(t, 15, ent.Top)
	assert.Equal(t, 9*time.Second, ent.Duration)
	assert.False(t, ent.Rotated)
}

func TestEnqueue_EvictsOldestAtCapacity(t *testing.T) {
	e, _, fs := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 3 })

	var ids []string
	for range 3 {
		ent, err := e.Enqueue("x", KindNone)
		require.NoError(t, err)
		ids = append(ids, ent.ID)
	}
	// Finishing the middle one leaves the first as the oldest survivor.
	fs.finish(ids[1])

	_, err := e.Enqueue("y", KindNone)
	require.NoError(t, err)
	_, err = e.Enqueue("z", KindNone)
	require.NoError(t, err)

	require.Equal(t, 3, e.Len())
	active := e.Active()
	assert.NotEqual(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[0].ID)
	assert.Contains(t, fs.removed, ids[0])
}

func TestComplete_IdempotentAfterEviction(t *testing.T) {
	e, _, fs := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 1 })

	first, err := e.Enqueue("a", KindNone)
	require.NoError(t, err)
	second, err := e.Enqueue("b", KindNone)
	require.NoError(t, err)

	before := e.PoolStatus()
	fs.finish(first.ID)
	fs.finish(first.ID)
	assert.Equal(t, before, e.PoolStatus())
	require.Equal(t, 1, e.Len())
	assert.Equal(t, second.ID, e.Active()[0].ID)

	fs.finish(second.ID)
	assert.Zero(t, e.Len())
}

func TestEnqueue_AbsentSurface(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	e := NewEngine(clk, surface.NewRegistry(), rand.New(rand.NewSource(1)), DefaultConfig())

	_, err := e.Enqueue("x", KindNone)
	require.ErrorIs(t, err, ErrNoSurface)
	assert.Zero(t, e.Len())
	assert.Equal(t, 10, e.PoolStatus().Available)

	// Auto-feed over an absent surface accumulates nothing.
	e.StartAutoFeed()
	clk.Advance(10 * time.Second)
	assert.Zero(t, e.Len())
	assert.Equal(t, 1, clk.Pending())
}

func TestEnqueue_UnknownKind(t *testing.T) {
	e, _, fs := newEngine(t, nil, nil)

	_, err := e.EnqueueNamed("x", "laser")
	require.ErrorIs(t, err, ErrUnknownKind)
	_, err = e.Enqueue("x", Kind(42))
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Zero(t, e.Len())
	assert.Empty(t, fs.animated)

	ent, err := e.EnqueueNamed("x", "sparkle")
	require.NoError(t, err)
	assert.Equal(t, "sparkle-style", ent.Style)
}

func TestEnqueueSpecial(t *testing.T) {
	e, _, _ := newEngine(t, nil, nil)
	ent, err := e.EnqueueSpecial()
	require.NoError(t, err)
	assert.Contains(t, SpecialMessages, ent.Text)
	assert.Contains(t, SpecialKinds, ent.Kind)
}

func TestAutoFeed_WarmupThenInterval(t *testing.T) {
	e, clk, _ := newEngine(t, nil, nil)

	e.StartAutoFeed()
	assert.True(t, e.AutoFeedRunning())

	clk.Advance(0)
	assert.Equal(t, 1, e.Len(), "first warm-up comment is due immediately")

	clk.Advance(2 * time.Second)
	assert.Equal(t, 6, e.Len(), "five warm-up comments plus the first interval")
	for _, ent := range e.Active() {
		assert.True(t, ent.Auto)
		assert.Contains(t, DefaultMessages, ent.Text)
	}

	clk.Advance(4 * time.Second)
	assert.Equal(t, 8, e.Len())

	e.StopAutoFeed()
	e.StopAutoFeed()
	assert.False(t, e.AutoFeedRunning())
	clk.Advance(time.Minute)
	assert.Equal(t, 8, e.Len())
	assert.Zero(t, clk.Pending())
}

func TestAutoFeed_RestartReplacesInterval(t *testing.T) {
	e, clk, _ := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 100 })

	e.StartAutoFeed()
	e.StartAutoFeed()
	clk.Advance(2500 * time.Millisecond)
	// Two warm-ups of five plus a single recurring timer firing once.
	assert.Equal(t, 11, e.Len())
}

func TestSetInterval_ReschedulesRunningFeed(t *testing.T) {
	e, clk, _ := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 100 })

	e.StartAutoFeed()
	clk.Advance(2 * time.Second)
	base := e.Len()

	e.SetInterval(500 * time.Millisecond)
	clk.Advance(time.Second)
	assert.Equal(t, base+2, e.Len())
}

func TestStopAutoFeed_DoesNotCancelBursts(t *testing.T) {
	e, clk, _ := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 100 })

	e.StartAutoFeed()
	require.NoError(t, e.TriggerBurst(FireworkShow()))
	e.StopAutoFeed()

	clk.Advance(5 * time.Second)
	assert.Equal(t, 5+20, e.Len())
}

func TestTriggerBurst_CuesEveryThird(t *testing.T) {
	e, clk, _ := newEngine(t, nil, func(c *Config) { c.MaxOnScreen = 100 })
	cues := &countingCues{}
	e.SetCuePlayer(cues)

	require.NoError(t, e.TriggerBurst(FireworkShow()))
	clk.Advance(149 * time.Millisecond)
	assert.Equal(t, 1, e.Len())

	clk.Advance(3 * time.Second)
	assert.Equal(t, 20, e.Len())
	assert.Len(t, cues.played, 7)
	for _, ent := range e.Active() {
		assert.Equal(t, KindFirework, ent.Kind)
		assert.Contains(t, FireworkMessages, ent.Text)
	}
}

func TestTriggerBurst_InOrder(t *testing.T) {
	e, clk, _ := newEngine(t, nil, nil)

	require.NoError(t, e.TriggerBurst(NewYearBurst()))
	clk.Advance(2 * time.Second)

	active := e.Active()
	require.Len(t, active, len(NewYearMessages))
	for i, ent := range active {
		assert.Equal(t, NewYearMessages[i], ent.Text)
		assert.Equal(t, KindNone, ent.Kind)
	}
}

func TestTriggerBurst_UnknownKindSchedulesNothing(t *testing.T) {
	e, clk, _ := newEngine(t, nil, nil)
	err := e.TriggerBurst(Burst{Kind: Kind(9), Count: 3, Stagger: time.Second})
	require.True(t, errors.Is(err, ErrUnknownKind))
	assert.Zero(t, clk.Pending())
}

func TestClearAll(t *testing.T) {
	e, _, fs := newEngine(t, nil, nil)
	for range 4 {
		_, err := e.Enqueue("x", KindNone)
		require.NoError(t, err)
	}
	ids := make([]string, 0, 4)
	for _, ent := range e.Active() {
		ids = append(ids, ent.ID)
	}

	e.ClearAll()
	assert.Zero(t, e.Len())
	assert.ElementsMatch(t, ids, fs.removed)

	// Late completions from the animation runtime are ignored.
	fs.finish(ids[0])
	assert.Zero(t, e.Len())
	assert.Equal(t, 10, e.PoolStatus().Available)
}

func TestSetMaxOnScreen_EvictsExcess(t *testing.T) {
	e, _, _ := newEngine(t, nil, nil)
	for range 10 {
		_, err := e.Enqueue("x", KindNone)
		require.NoError(t, err)
	}
	newest := e.Active()[9].ID

	e.SetMaxOnScreen(2)
	require.Equal(t, 2, e.Len())
	assert.Equal(t, newest, e.Active()[1].ID)
}
