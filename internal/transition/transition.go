// Package transition interpolates attributes over time for the declarative
// sketches.
package transition

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Ease maps normalized time in [0, 1] to progress. Progress may overshoot.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

const elasticSamples = 120

// elasticTable is the trajectory of an under-damped spring released from 0
// toward 1, sampled over one second.
var elasticTable = func() [elasticSamples + 1]float64 {
	var tbl [elasticSamples + 1]float64
	s := harmonica.NewSpring(harmonica.FPS(elasticSamples), 14, 0.3)
	pos, vel := 0.0, 0.0
	for i := 1; i <= elasticSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		tbl[i] = pos
	}
	return tbl
}()

// Elastic overshoots and settles like a plucked spring.
func Elastic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	f := t * elasticSamples
	i := int(f)
	frac := f - float64(i)
	v := elasticTable[i] + (elasticTable[i+1]-elasticTable[i])*frac
	// pin the tail so the tween lands exactly on its target
	tail := math.Max(0, (t-0.9)/0.1)
	return v + (1-v)*tail
}

// Tween interpolates a single value.
type Tween struct {
	From, To float64
	Start    time.Time
	Delay    time.Duration
	Duration time.Duration
	Ease     Ease
}

// Progress returns eased progress at now; 0 before the delay has elapsed.
func (tw Tween) Progress(now time.Time) float64 {
	elapsed := now.Sub(tw.Start) - tw.Delay
	if elapsed <= 0 {
		return 0
	}
	if tw.Duration <= 0 || elapsed >= tw.Duration {
		return 1
	}
	ease := tw.Ease
	if ease == nil {
		ease = CubicInOut
	}
	return ease(float64(elapsed) / float64(tw.Duration))
}

func (tw Tween) At(now time.Time) float64 {
	p := tw.Progress(now)
	if p == 1 {
		return tw.To
	}
	return tw.From + (tw.To-tw.From)*p
}

func (tw Tween) Done(now time.Time) bool {
	return now.Sub(tw.Start) >= tw.Delay+tw.Duration
}

// Hold is a tween that is already at v.
func Hold(v float64) Tween { return Tween{From: v, To: v} }

// Retarget starts a new tween from the value tw has at now.
func (tw Tween) Retarget(to float64, now time.Time, d time.Duration, ease Ease) Tween {
	return Tween{From: tw.At(now), To: to, Start: now, Duration: d, Ease: ease}
}
