package danmaku

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

func TestPool_PrecreatesAndGrowsToMax(t *testing.T) {
	p := NewPool(2, 3)
	assert.Equal(t, PoolStatus{Available: 2, Total: 2}, p.Status())

	a, b, c := p.Acquire(), p.Acquire(), p.Acquire()
	assert.Equal(t, PoolStatus{Available: 0, Total: 3}, p.Status())

	over := p.Acquire()
	assert.Equal(t, 1, p.Status().Overflow)

	assert.False(t, p.Release(over), "overflow slots are never recycled")
	for _, s := range []*Slot{a, b, c} {
		assert.True(t, p.Release(s))
	}
	assert.Equal(t, PoolStatus{Available: 3, Total: 3}, p.Status())
}

func TestPool_DoubleReleaseIsRejected(t *testing.T) {
	p := NewPool(1, 1)
	s := p.Acquire()
	s.entity = Entity{ID: "x"}

	require.True(t, p.Release(s))
	assert.Empty(t, s.Entity().ID, "released slots are reset")
	assert.False(t, p.Release(s))
	assert.False(t, p.Release(nil))
	assert.Equal(t, 1, p.Status().Available)
}

func TestPool_InitialClampedToMax(t *testing.T) {
	p := NewPool(10, 4)
	assert.Equal(t, PoolStatus{Available: 4, Total: 4}, p.Status())
}

// Operations are encoded as ints: values below 70 enqueue, the rest finish the
// live comment at (value % len).
func TestProperty_CapacityAndPoolBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("live comments never exceed the cap and slots are free xor active", prop.ForAll(
		func(maxOnScreen, maxPool int, ops []int) bool {
			clk := clock.NewManual(time.Unix(0, 0))
			reg := surface.NewRegistry()
			fs := newFakeSurface()
			reg.Attach(surface.Danmaku, fs)
			cfg := DefaultConfig()
			cfg.MaxOnScreen = maxOnScreen
			cfg.MaxPoolSize = maxPool
			cfg.InitialPoolSize = maxPool / 2
			e := NewEngine(clk, reg, rand.New(rand.NewSource(int64(len(ops)))), cfg)

			for _, op := range ops {
				if op < 70 || e.Len() == 0 {
					before := e.Active()
					if _, err := e.Enqueue("x", KindNone); err != nil {
						return false
					}
					// At capacity the earliest surviving comment is the one evicted.
					if len(before) == maxOnScreen && e.Active()[0].ID != before[1%len(before)].ID && maxOnScreen > 1 {
						return false
					}
				} else {
					live := e.Active()
					fs.finish(live[op%len(live)].ID)
				}

				if e.Len() > maxOnScreen {
					return false
				}
				st := e.PoolStatus()
				pooledActive := e.Len() - st.Overflow
				if st.Total > maxPool || st.Available+pooledActive != st.Total || st.Overflow < 0 {
					return false
				}
				for _, free := range e.pool.free {
					if free.active {
						return false
					}
				}
				for _, s := range e.active {
					if !s.active {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 30),
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.TestingRun(t)
}
