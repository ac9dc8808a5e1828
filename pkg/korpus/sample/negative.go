package sample

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/internalerr"
)

// smoothingPower flattens the unigram distribution so rare words are drawn
// more often than their raw frequency suggests. 0.75 is the word2vec value.
const smoothingPower = 0.75

// NegativeOptions configures a NegativeSampler. Zero values select the
// defaults documented on each field.
type NegativeOptions struct {
	// NumNegative is how many indices each Sample call returns. Zero
	// selects DefaultNumNegative.
	NumNegative int

	// Rand is the randomness source. Nil seeds a private generator from
	// the wall clock; pass a seeded one for reproducible draws.
	Rand *rand.Rand
}

// NegativeSampler draws word indices from the corpus unigram distribution
// raised to smoothingPower, the usual noise distribution for negative
// sampling. Every vocabulary slot takes part, the unknown-word slot
// included.
//
// The distribution is cached: it is built at construction and replaced
// only by Refresh, so ingestion between calls does not shift the draws and
// words added since the last Refresh cannot be drawn at all.
type NegativeSampler struct {
	corpus *corpus.Corpus
	n      int
	rng    *rand.Rand
	cum    []float64 // cumulative probability by word index, last entry 1
}

// NewNegativeSampler builds a sampler over c's current frequencies.
func NewNegativeSampler(c *corpus.Corpus, opts NegativeOptions) (*NegativeSampler, error) {
	if c == nil || c.VocabSize() == 0 {
		return nil, fmt.Errorf("%w: negative sampler needs a non-empty vocabulary", internalerr.ErrInvalidInput)
	}
	if opts.NumNegative < 0 {
		return nil, fmt.Errorf("%w: negative count must not be negative", internalerr.ErrInvalidInput)
	}

	n := opts.NumNegative
	if n == 0 {
		n = DefaultNumNegative
	}

	s := &NegativeSampler{
		corpus: c,
		n:      n,
		rng:    newRand(opts.Rand),
	}
	s.Refresh()
	return s, nil
}

// Refresh rebuilds the cached noise distribution from the corpus's current
// frequencies. Call it after ingesting more documents; words added since
// the last build become drawable only from this point on.
func (s *NegativeSampler) Refresh() {
	vocab := s.corpus.Vocab()
	cum := make([]float64, len(vocab))
	total := 0.0
	for i, word := range vocab {
		total += math.Pow(float64(s.corpus.Frequency(word)), smoothingPower)
		cum[i] = total
	}
	for i := range cum {
		cum[i] /= total
	}
	s.cum = cum
}

// Sample returns NumNegative word indices drawn independently from the
// noise distribution, in ascending index order. Duplicates are possible,
// and no index is excluded: callers pairing negatives with a context draw
// may occasionally see the center word among them.
func (s *NegativeSampler) Sample() []int {
	out := make([]int, s.n)
	for i := range out {
		out[i] = s.draw()
	}
	sort.Ints(out)
	return out
}

func (s *NegativeSampler) draw() int {
	idx := sort.SearchFloat64s(s.cum, s.rng.Float64())
	if idx >= len(s.cum) {
		// Rounding can leave the last cumulative entry a hair below 1.
		idx = len(s.cum) - 1
	}
	return idx
}
