package sample

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/cognicore/korpus/pkg/korpus/internalerr"
)

func TestNegativeSamplerBasic(t *testing.T) {
	c := newTestCorpus(t, [][]string{
		{"a", "b", "a", "c"},
		{"b", "b", "d"},
	})
	s, err := NewNegativeSampler(c, NegativeOptions{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("NewNegativeSampler failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		got := s.Sample()
		if len(got) != DefaultNumNegative {
			t.Fatalf("Expected %d negatives, got %d", DefaultNumNegative, len(got))
		}
		if !sort.IntsAreSorted(got) {
			t.Fatalf("Negatives not in ascending order: %v", got)
		}
		for _, idx := range got {
			if idx < 0 || idx >= c.VocabSize() {
				t.Fatalf("Index %d outside vocabulary of size %d", idx, c.VocabSize())
			}
		}
	}
}

func TestNegativeSamplerCount(t *testing.T) {
	c := newTestCorpus(t, [][]string{{"a", "b", "c"}})
	s, err := NewNegativeSampler(c, NegativeOptions{NumNegative: 3, Rand: rand.New(rand.NewSource(2))})
	if err != nil {
		t.Fatalf("NewNegativeSampler failed: %v", err)
	}

	if got := s.Sample(); len(got) != 3 {
		t.Errorf("Expected 3 negatives, got %d", len(got))
	}
}

func TestNegativeSamplerSingleSlotVocabulary(t *testing.T) {
	// An empty document leaves only the unknown-word slot, which then
	// soaks up the whole distribution.
	c := newTestCorpus(t, [][]string{{}})
	if c.VocabSize() != 1 {
		t.Fatalf("Expected vocabulary of 1, got %d", c.VocabSize())
	}

	s, err := NewNegativeSampler(c, NegativeOptions{Rand: rand.New(rand.NewSource(3))})
	if err != nil {
		t.Fatalf("NewNegativeSampler failed: %v", err)
	}

	for _, idx := range s.Sample() {
		if idx != 0 {
			t.Fatalf("Expected every draw to hit index 0, got %d", idx)
		}
	}
}

func TestNegativeSamplerFollowsFrequencies(t *testing.T) {
	frequent := make([]string, 1000)
	for i := range frequent {
		frequent[i] = "common"
	}
	c := newTestCorpus(t, [][]string{frequent, {"scarce"}})
	s, err := NewNegativeSampler(c, NegativeOptions{Rand: rand.New(rand.NewSource(4))})
	if err != nil {
		t.Fatalf("NewNegativeSampler failed: %v", err)
	}

	commonIdx, _ := c.Index("common")
	scarceIdx, _ := c.Index("scarce")

	counts := make(map[int]int)
	for i := 0; i < 200; i++ {
		for _, idx := range s.Sample() {
			counts[idx]++
		}
	}

	// 1000^0.75 vs 1^0.75: the frequent word should dominate the draws.
	if counts[commonIdx] <= counts[scarceIdx] {
		t.Errorf("Expected %q to dominate draws: common=%d scarce=%d",
			"common", counts[commonIdx], counts[scarceIdx])
	}
	if counts[commonIdx] == 0 {
		t.Error("Frequent word never drawn")
	}
}

func TestNegativeSamplerStaleUntilRefresh(t *testing.T) {
	c := newTestCorpus(t, [][]string{{"a"}})
	s, err := NewNegativeSampler(c, NegativeOptions{Rand: rand.New(rand.NewSource(5))})
	if err != nil {
		t.Fatalf("NewNegativeSampler failed: %v", err)
	}

	loud := make([]string, 10000)
	for i := range loud {
		loud[i] = "b"
	}
	if err := c.Ingest([][]string{loud}); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	bIdx, ok := c.Index("b")
	if !ok {
		t.Fatal("Word 'b' missing after ingest")
	}

	// The cached distribution predates "b": it must never be drawn.
	for i := 0; i < 100; i++ {
		for _, idx := range s.Sample() {
			if idx == bIdx {
				t.Fatal("Stale sampler produced a word ingested after the last refresh")
			}
		}
	}

	s.Refresh()

	// After refresh, 10000^0.75 dwarfs the other two slots.
	seen := false
	for i := 0; i < 100 && !seen; i++ {
		for _, idx := range s.Sample() {
			if idx == bIdx {
				seen = true
			}
		}
	}
	if !seen {
		t.Error("Refreshed sampler never drew the dominant new word")
	}
}

func TestNegativeSamplerValidation(t *testing.T) {
	c := newTestCorpus(t, [][]string{{"a"}})

	if _, err := NewNegativeSampler(nil, NegativeOptions{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil corpus, got %v", err)
	}
	if _, err := NewNegativeSampler(c, NegativeOptions{NumNegative: -1}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for negative count, got %v", err)
	}
	if _, err := NewNegativeSampler(c, NegativeOptions{}); err != nil {
		t.Errorf("Zero options should take defaults, got %v", err)
	}
}
