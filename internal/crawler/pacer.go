package crawler

import (
	"context"
	"math/rand"
	"time"

	"cveharvest/internal/config"
)

// Pacer waits between consecutive page fetches of one unit. It governs
// load on the upstream service, not correctness, so tests substitute a
// zero-delay implementation.
type Pacer interface {
	Pause(ctx context.Context)
}

// NewPacer creates the configured delay strategy: a fixed interval or
// a uniformly random interval within [min, max].
func NewPacer(cfg config.PacingConfig) Pacer {
	if cfg.Mode == config.PacingRandom {
		return &randomPacer{min: cfg.MinDelay(), max: cfg.MaxDelay()}
	}

	return &fixedPacer{delay: cfg.MinDelay()}
}

type fixedPacer struct {
	delay time.Duration
}

func (p *fixedPacer) Pause(ctx context.Context) {
	sleepCtx(ctx, p.delay)
}

type randomPacer struct {
	min time.Duration
	max time.Duration
}

func (p *randomPacer) Pause(ctx context.Context) {
	delay := p.min
	if span := p.max - p.min; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span + 1)))
	}

	sleepCtx(ctx, delay)
}

// NopPacer pauses for no time at all.
type NopPacer struct{}

// Pause returns immediately.
func (NopPacer) Pause(context.Context) {}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
