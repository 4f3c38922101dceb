// Package pacing spaces out page loads so a batch never hammers the remote site.
package pacing

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// Range is an inclusive delay interval.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Pick maps r01, a value in [0,1), onto the range. An inverted range yields Min.
func (r Range) Pick(r01 float64) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(float64(r.Max-r.Min)*r01)
}

// DefaultPolite is the delay between two successful pages.
var DefaultPolite = Range{Min: 2 * time.Second, Max: 4 * time.Second}

// DefaultBackoff is the delay after a failed page.
var DefaultBackoff = Range{Min: 3 * time.Second, Max: 6 * time.Second}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Pacer spaces out page loads. Admit keeps loads at least polite.Min apart; Wait adds the
// random part of the polite delay on top, so consecutive loads are Min to Max apart.
type Pacer struct {
	polite  Range
	backoff Range
	limiter *rate.Limiter
	rand    func() float64
	sleep   SleepFunc
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithRand replaces the random source. It must return values in [0,1).
func WithRand(f func() float64) Option {
	return func(p *Pacer) { p.rand = f }
}

// WithSleep replaces the blocking sleep.
func WithSleep(f SleepFunc) Option {
	return func(p *Pacer) { p.sleep = f }
}

// WithLimiter replaces the page limiter. A nil limiter disables it.
func WithLimiter(l *rate.Limiter) Option {
	return func(p *Pacer) { p.limiter = l }
}

// New creates a Pacer whose limiter admits one page load per polite.Min.
func New(polite, backoff Range, opts ...Option) *Pacer {
	p := &Pacer{
		polite:  polite,
		backoff: backoff,
		rand:    rand.Float64,
		sleep:   Sleep,
	}
	if polite.Min > 0 {
		p.limiter = rate.NewLimiter(rate.Every(polite.Min), 1)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Admit blocks until the next page load may start.
func (p *Pacer) Admit(ctx context.Context) error {
	if p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Wait sleeps the jitter above polite.Min after a page and returns it. The rest of the
// polite delay is enforced by Admit before the next load.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	d := p.polite.Pick(p.rand()) - p.polite.Min
	if p.limiter == nil {
		d += p.polite.Min
	}
	return d, p.sleep(ctx, d)
}

// Backoff blocks for the longer delay used after a failed page.
func (p *Pacer) Backoff(ctx context.Context) (time.Duration, error) {
	d := p.backoff.Pick(p.rand())
	return d, p.sleep(ctx, d)
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
