package sketch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sketchbook/internal/render"
)

// Charter sketches can also describe themselves to the chart engine.
type Charter interface {
	Chart() render.ScatterChart
}

// Load fetches a Loader sketch's data synchronously and applies it. The
// error is returned after the fallback has been applied.
func Load(ctx context.Context, s Sketch, now time.Time) error {
	l, ok := s.(Loader)
	if !ok {
		return nil
	}
	apply, err := l.Fetch(ctx)
	if apply != nil {
		apply(now)
	}
	return err
}

// Step drives s without a terminal: it loads data, then ticks frames times
// at fps starting from start and returns the clock after the last tick.
func Step(ctx context.Context, s Sketch, frames, fps int, start time.Time, log *zap.Logger) time.Time {
	if log == nil {
		log = zap.NewNop()
	}
	if err := Load(ctx, s, start); err != nil {
		log.Warn("using fallback data", zap.String("sketch", s.Name()), zap.Error(err))
	}
	if fps <= 0 {
		fps = 30
	}
	dt := time.Second / time.Duration(fps)
	now := start
	for i := 0; i < frames; i++ {
		if ctx.Err() != nil {
			break
		}
		now = now.Add(dt)
		s.Tick(now)
	}
	return now
}
