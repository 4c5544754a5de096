package toast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/surface"
)

type fakeSurface struct {
	shown     []string
	dismissed []string
}

func (f *fakeSurface) ShowToast(t Toast)      { f.shown = append(f.shown, t.Message) }
func (f *fakeSurface) DismissToast(id string) { f.dismissed = append(f.dismissed, id) }

func newQueue(t *testing.T) (*Queue, *clock.Manual, *fakeSurface) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	reg := surface.NewRegistry()
	fs := &fakeSurface{}
	reg.Attach(surface.Toasts, fs)
	return NewQueue(clk, reg), clk, fs
}

func TestShow_AutoExpires(t *testing.T) {
	q, clk, fs := newQueue(t)

	tt, ok := q.Show("hello", Success, 3*time.Second)
	require.True(t, ok)
	assert.NotEmpty(t, tt.ID)
	assert.Equal(t, []string{"hello"}, fs.shown)

	clk.Advance(2999 * time.Millisecond)
	assert.Len(t, q.Active(), 1)

	clk.Advance(time.Millisecond)
	assert.Empty(t, q.Active())
	assert.Equal(t, []string{tt.ID}, fs.dismissed)
	assert.Zero(t, clk.Pending())
}

func TestShow_ZeroDurationIsManualOnly(t *testing.T) {
	q, clk, _ := newQueue(t)

	tt, ok := q.Show("sticky", Warning, 0)
	require.True(t, ok)
	clk.Advance(time.Hour)
	require.Len(t, q.Active(), 1)

	q.Dismiss(tt.ID)
	q.Dismiss(tt.ID)
	assert.Empty(t, q.Active())
}

func TestShow_CapsAtMaxAndDropsOldest(t *testing.T) {
	q, _, fs := newQueue(t)

	var first Toast
	for i := range MaxToasts + 2 {
		tt, ok := q.Show(fmt.Sprintf("t%d", i), Info, 0)
		require.True(t, ok)
		if i == 0 {
			first = tt
		}
	}

	active := q.Active()
	require.Len(t, active, MaxToasts)
	assert.Equal(t, "t2", active[0].Message)
	assert.Equal(t, first.ID, fs.dismissed[0])
}

func TestDismiss_CancelsExpiryTimer(t *testing.T) {
	q, clk, _ := newQueue(t)

	tt, _ := q.Show("bye", Info, time.Second)
	q.Dismiss(tt.ID)
	assert.Zero(t, clk.Pending())
}

func TestShow_AbsentSurface(t *testing.T) {
	q := NewQueue(clock.NewManual(time.Unix(0, 0)), surface.NewRegistry())
	_, ok := q.Show("nobody home", Error, time.Second)
	assert.False(t, ok)
	assert.Empty(t, q.Active())
}

func TestClearAll(t *testing.T) {
	q, clk, _ := newQueue(t)
	q.Show("a", Info, time.Second)
	q.Show("b", Info, 0)
	q.ClearAll()
	assert.Empty(t, q.Active())
	assert.Zero(t, clk.Pending())
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("warning")
	require.NoError(t, err)
	assert.Equal(t, Warning, s)
	assert.Equal(t, "⚠", s.Icon())

	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
}
