package analysis

import (
	"fmt"
	"math/rand"
	"testing"

	"feedback-backend/internal/feedback"
)

func makeItems(n int) []feedback.NormalizedItem {
	items := make([]feedback.NormalizedItem, n)
	for i := range items {
		items[i] = feedback.NormalizedItem{
			ID:   fmt.Sprintf("fb-%d", i),
			Text: fmt.Sprintf("comment %d", i),
		}
	}
	return items
}

func TestSampleIdentityUnderCap(t *testing.T) {
	items := makeItems(10)
	s := NewSamplerWithSource(50, rand.NewSource(1))
	got := s.Sample(items)
	if len(got) != 10 {
		t.Fatalf("expected all 10 items, got %d", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Fatalf("expected identity sample, got %v at %d", got[i].ID, i)
		}
	}
}

func TestSampleRespectsCapWithoutDuplicates(t *testing.T) {
	items := makeItems(200)
	s := NewSamplerWithSource(50, rand.NewSource(42))
	got := s.Sample(items)
	if len(got) != 50 {
		t.Fatalf("expected 50 items, got %d", len(got))
	}

	valid := make(map[string]bool, len(items))
	for _, it := range items {
		valid[it.ID] = true
	}
	seen := make(map[string]bool, len(got))
	for _, it := range got {
		if !valid[it.ID] {
			t.Fatalf("sampled item %q not in input", it.ID)
		}
		if seen[it.ID] {
			t.Fatalf("duplicate item %q in sample", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	items := makeItems(100)
	before := append([]feedback.NormalizedItem(nil), items...)
	s := NewSamplerWithSource(10, rand.NewSource(7))
	_ = s.Sample(items)
	for i := range items {
		if items[i].ID != before[i].ID {
			t.Fatalf("input mutated at %d: %q != %q", i, items[i].ID, before[i].ID)
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	items := makeItems(100)
	a := NewSamplerWithSource(20, rand.NewSource(99)).Sample(items)
	b := NewSamplerWithSource(20, rand.NewSource(99)).Sample(items)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("expected identical draws, diverged at %d", i)
		}
	}
}
