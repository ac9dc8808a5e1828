// Package traindata assembles ready-to-train skip-gram examples from a
// corpus and its samplers.
package traindata

import (
	"crypto/rand"
	"fmt"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/internalerr"
	"github.com/cognicore/korpus/pkg/korpus/sample"
	"github.com/oklog/ulid/v2"
)

// Example is one skip-gram training record: a center word with its sampled
// context, both as words and vocabulary indices, plus negative indices
// drawn from the noise distribution.
type Example struct {
	ID             string   `json:"id"`
	Center         string   `json:"center"`
	CenterIndex    int      `json:"center_index"`
	Context        []string `json:"context"`
	ContextIndexes []int    `json:"context_indexes"`
	Negatives      []int    `json:"negatives"`
}

// Builder draws training examples, stamping each with a sortable ULID
type Builder struct {
	corpus    *corpus.Corpus
	contexts  *sample.ContextSampler
	negatives *sample.NegativeSampler
	entropy   *ulid.MonotonicEntropy
}

// New creates a builder over a corpus and its two samplers
func New(c *corpus.Corpus, contexts *sample.ContextSampler, negatives *sample.NegativeSampler) (*Builder, error) {
	if c == nil || contexts == nil || negatives == nil {
		return nil, fmt.Errorf("%w: builder needs a corpus and both samplers", internalerr.ErrInvalidInput)
	}
	return &Builder{
		corpus:    c,
		contexts:  contexts,
		negatives: negatives,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Build draws one training example. The error is the context sampler's,
// notably ErrSamplingExhausted when a draw cap is configured.
func (b *Builder) Build() (Example, error) {
	center, context, err := b.contexts.Sample()
	if err != nil {
		return Example{}, err
	}

	ex := Example{
		ID:             ulid.MustNew(ulid.Now(), b.entropy).String(),
		Center:         center,
		CenterIndex:    b.corpus.IndexOrUnknown(center),
		Context:        context,
		ContextIndexes: make([]int, len(context)),
		Negatives:      b.negatives.Sample(),
	}
	for i, w := range context {
		ex.ContextIndexes[i] = b.corpus.IndexOrUnknown(w)
	}
	return ex, nil
}

// BuildN draws n examples in one go.
func (b *Builder) BuildN(n int) ([]Example, error) {
	out := make([]Example, 0, n)
	for i := 0; i < n; i++ {
		ex, err := b.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}
