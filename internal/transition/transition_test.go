package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEaseEndpoints(t *testing.T) {
	for name, ease := range map[string]Ease{"linear": Linear, "cubic": CubicInOut, "elastic": Elastic} {
		assert.InDelta(t, 0, ease(0), 1e-9, name)
		assert.InDelta(t, 1, ease(1), 1e-9, name)
	}
	assert.InDelta(t, 0.5, CubicInOut(0.5), 1e-9)
}

func TestElasticOvershoots(t *testing.T) {
	peak := 0.0
	for i := 0; i <= 100; i++ {
		if v := Elastic(float64(i) / 100); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 1.0)
}

func TestTween(t *testing.T) {
	start := time.Unix(0, 0)
	tw := Tween{From: 0, To: 10, Start: start, Delay: 100 * time.Millisecond, Duration: time.Second, Ease: Linear}

	assert.Equal(t, 0.0, tw.At(start.Add(50*time.Millisecond)))
	assert.InDelta(t, 5, tw.At(start.Add(600*time.Millisecond)), 1e-9)
	assert.Equal(t, 10.0, tw.At(start.Add(2*time.Second)))
	assert.False(t, tw.Done(start.Add(time.Second)))
	assert.True(t, tw.Done(start.Add(1100*time.Millisecond)))
}

func TestRetargetContinuesFromCurrent(t *testing.T) {
	start := time.Unix(0, 0)
	tw := Tween{From: 0, To: 10, Start: start, Duration: time.Second, Ease: Linear}
	mid := start.Add(500 * time.Millisecond)
	next := tw.Retarget(0, mid, time.Second, Linear)
	assert.InDelta(t, 5, next.At(mid), 1e-9)
	assert.InDelta(t, 0, next.At(mid.Add(time.Second)), 1e-9)

	h := Hold(3)
	assert.Equal(t, 3.0, h.At(start))
}
