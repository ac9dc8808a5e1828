package sample

import (
	"fmt"
	"math/rand"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/internalerr"
)

// ContextOptions configures a ContextSampler. Zero values select the
// defaults documented on each field.
type ContextOptions struct {
	// Window is the number of tokens taken from each side of the center
	// word. Zero selects DefaultWindow.
	Window int

	// MaxAttempts caps how many document draws a single Sample call may
	// spend before giving up with ErrSamplingExhausted. Zero retries
	// indefinitely.
	MaxAttempts int

	// Rand is the randomness source. Nil seeds a private generator from
	// the wall clock; pass a seeded one for reproducible draws.
	Rand *rand.Rand
}

// ContextSampler draws (center, context) training pairs from a corpus.
// Each draw picks a document uniformly at random, drops frequent words
// according to the corpus rejection probabilities, and cuts a window
// around a uniformly chosen center word.
//
// The sampler reads the corpus on every draw, so newly ingested documents
// show up immediately; rejection probabilities are only as fresh as the
// corpus's last ComputeRejectionProbs.
type ContextSampler struct {
	corpus      *corpus.Corpus
	window      int
	maxAttempts int
	rng         *rand.Rand
}

// NewContextSampler builds a sampler over c.
func NewContextSampler(c *corpus.Corpus, opts ContextOptions) (*ContextSampler, error) {
	if c == nil || c.NumDocuments() == 0 {
		return nil, fmt.Errorf("%w: context sampler needs a corpus with at least one document", internalerr.ErrInvalidInput)
	}
	if opts.Window < 0 {
		return nil, fmt.Errorf("%w: window must not be negative", internalerr.ErrInvalidInput)
	}
	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts must not be negative", internalerr.ErrInvalidInput)
	}

	window := opts.Window
	if window == 0 {
		window = DefaultWindow
	}

	return &ContextSampler{
		corpus:      c,
		window:      window,
		maxAttempts: opts.MaxAttempts,
		rng:         newRand(opts.Rand),
	}, nil
}

// Sample draws one center word together with its surrounding context.
//
// A single draw can come up empty two ways: the subsampling filter may
// leave fewer than two words of the chosen document standing, or stripping
// duplicates of the center word may empty the window. Both cases restart
// with a fresh document draw. On a corpus where no document can ever yield
// a context, a zero MaxAttempts means Sample never returns; set a cap to
// bound it.
func (s *ContextSampler) Sample() (string, []string, error) {
	for attempts := 0; s.maxAttempts == 0 || attempts < s.maxAttempts; attempts++ {
		doc := s.corpus.Document(s.rng.Intn(s.corpus.NumDocuments()))

		// One roll per token. The frequency guard additionally drops
		// anything that never made it into the vocabulary.
		kept := make([]string, 0, len(doc))
		for _, word := range doc {
			if s.rng.Float64() >= s.corpus.RejectionProb(word) && s.corpus.Frequency(word) >= 1 {
				kept = append(kept, word)
			}
		}
		if len(kept) < 2 {
			continue
		}

		centerIdx := s.rng.Intn(len(kept))
		center := kept[centerIdx]

		lo := centerIdx - s.window
		if lo < 0 {
			lo = 0
		}
		hi := centerIdx + 1 + s.window
		if hi > len(kept) {
			hi = len(kept)
		}

		// Every occurrence of the center word is stripped from the
		// window, not only the center slot itself.
		context := make([]string, 0, hi-lo-1)
		for _, w := range kept[lo:centerIdx] {
			if w != center {
				context = append(context, w)
			}
		}
		for _, w := range kept[centerIdx+1 : hi] {
			if w != center {
				context = append(context, w)
			}
		}
		if len(context) == 0 {
			continue
		}

		return center, context, nil
	}

	return "", nil, fmt.Errorf("%w: no usable context in %d attempts", internalerr.ErrSamplingExhausted, s.maxAttempts)
}
