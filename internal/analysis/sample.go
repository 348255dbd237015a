package analysis

import (
	"math/rand"
	"time"

	"feedback-backend/internal/feedback"
)

// Sampler draws a uniform random subset of normalized feedback when the
// corpus exceeds a cap. Identity when the corpus already fits.
type Sampler struct {
	Cap  int
	rand *rand.Rand
}

// NewSampler builds a sampler with a time-seeded source.
func NewSampler(cap int) *Sampler {
	return NewSamplerWithSource(cap, rand.NewSource(time.Now().UnixNano()))
}

// NewSamplerWithSource builds a sampler with an explicit source, used by
// tests that need deterministic draws.
func NewSamplerWithSource(cap int, src rand.Source) *Sampler {
	return &Sampler{Cap: cap, rand: rand.New(src)}
}

// Sample returns up to Cap items drawn without replacement. The input
// slice is never mutated.
func (s *Sampler) Sample(items []feedback.NormalizedItem) []feedback.NormalizedItem {
	if s.Cap <= 0 || len(items) <= s.Cap {
		return items
	}
	picked := append([]feedback.NormalizedItem(nil), items...)
	// Partial Fisher-Yates: only the first Cap positions need shuffling.
	for i := 0; i < s.Cap; i++ {
		j := i + s.rand.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:s.Cap]
}
