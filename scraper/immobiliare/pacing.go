package immobiliare

import (
	"math/rand"
	"time"
)

// PacingPolicy produces human-like delays between browser actions: a uniform
// base delay plus jitter, with an occasional longer pause. The random source
// and sleep function are injectable so tests stay deterministic.
type PacingPolicy struct {
	minDelay float64 // seconds
	maxDelay float64
	rng      *rand.Rand
	sleep    func(time.Duration)
}

// NewPacingPolicy builds a policy over the [min, max] second range. Passing a
// nil rng or sleep selects the real clock and a time-seeded source.
func NewPacingPolicy(minDelay, maxDelay float64, rng *rand.Rand, sleep func(time.Duration)) *PacingPolicy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &PacingPolicy{minDelay: minDelay, maxDelay: maxDelay, rng: rng, sleep: sleep}
}

// Duration computes the next delay: uniform base in [min, max] seconds,
// jitter in [-0.2, 0.3], and a 5% chance of an extra [1, 3] second pause.
// Never negative.
func (p *PacingPolicy) Duration() time.Duration {
	base := p.minDelay + p.rng.Float64()*(p.maxDelay-p.minDelay)
	jitter := -0.2 + p.rng.Float64()*0.5
	extra := 0.0
	if p.rng.Float64() < 0.05 {
		extra = 1.0 + p.rng.Float64()*2.0
	}

	delay := base + jitter + extra
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay * float64(time.Second))
}

// Wait blocks for the next computed delay.
func (p *PacingPolicy) Wait() {
	p.sleep(p.Duration())
}

// IntBetween returns a uniform integer in [lo, hi], used for random scroll
// offsets.
func (p *PacingPolicy) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Intn(hi-lo+1)
}
