package stats

import (
	"testing"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
)

func TestComputeBasic(t *testing.T) {
	c, err := corpus.New([][]string{
		{"a", "b", "a", "c"},
		{"b", "b", "d"},
	})
	if err != nil {
		t.Fatalf("corpus.New failed: %v", err)
	}

	r := Compute(c, 0)

	if r.VocabSize != 5 {
		t.Errorf("VocabSize = %d, want 5", r.VocabSize)
	}
	if r.TotalWords != 7 {
		t.Errorf("TotalWords = %d, want 7", r.TotalWords)
	}
	if r.Documents != 2 {
		t.Errorf("Documents = %d, want 2", r.Documents)
	}
	if len(r.TopWords) != 5 {
		t.Errorf("Expected all 5 words with no limit, got %d", len(r.TopWords))
	}

	// b(3) leads, then a(2), then the count-1 words by index: c, d, UNK.
	wantOrder := []string{"b", "a", "c", "d", corpus.UnknownToken}
	for i, want := range wantOrder {
		if r.TopWords[i].Word != want {
			t.Errorf("TopWords[%d] = %q, want %q", i, r.TopWords[i].Word, want)
		}
	}

	if r.TopWords[0].Count != 3 {
		t.Errorf("Top count = %d, want 3", r.TopWords[0].Count)
	}
	if idx, _ := c.Index("b"); r.TopWords[0].Index != idx {
		t.Errorf("Top index = %d, want %d", r.TopWords[0].Index, idx)
	}
}

func TestComputeTopWordsLimit(t *testing.T) {
	c, err := corpus.New([][]string{{"a", "b", "b", "c", "c", "c"}})
	if err != nil {
		t.Fatalf("corpus.New failed: %v", err)
	}

	r := Compute(c, 2)
	if len(r.TopWords) != 2 {
		t.Fatalf("Expected 2 top words, got %d", len(r.TopWords))
	}
	if r.TopWords[0].Word != "c" || r.TopWords[1].Word != "b" {
		t.Errorf("Top words = %q, %q; want c, b", r.TopWords[0].Word, r.TopWords[1].Word)
	}
}

func TestComputeSubsampling(t *testing.T) {
	frequent := make([]string, 1000)
	for i := range frequent {
		frequent[i] = "the"
	}
	c, err := corpus.New([][]string{frequent, {"rare"}})
	if err != nil {
		t.Fatalf("corpus.New failed: %v", err)
	}

	r := Compute(c, 0)

	if r.Subsampled != 1 {
		t.Errorf("Subsampled = %d, want 1", r.Subsampled)
	}
	// Only "the" carries a non-zero probability (~0.9) over 3 vocab slots.
	if r.MeanRejection <= 0.2 || r.MeanRejection >= 0.4 {
		t.Errorf("MeanRejection = %f, want roughly 0.3", r.MeanRejection)
	}
	if r.TopWords[0].RejectionProb == 0 {
		t.Error("Most frequent word should carry a rejection probability")
	}
}

func TestComputeNilCorpus(t *testing.T) {
	r := Compute(nil, 10)
	if r.VocabSize != 0 || len(r.TopWords) != 0 {
		t.Errorf("Expected zero report for nil corpus, got %+v", r)
	}
}
