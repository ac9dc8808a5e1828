// Package korpus ties a vocabulary-indexed corpus and its samplers into
// one engine producing skip-gram training examples.
package korpus

import (
	"fmt"
	"math/rand"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/internalerr"
	"github.com/cognicore/korpus/pkg/korpus/sample"
	"github.com/cognicore/korpus/pkg/korpus/table"
	"github.com/cognicore/korpus/pkg/korpus/traindata"
)

// Korpus is the main training-data engine facade
type Korpus struct {
	corpus    *corpus.Corpus
	contexts  *sample.ContextSampler
	negatives *sample.NegativeSampler
	builder   *traindata.Builder
	threshold float64
}

// Options configures a Korpus instance. Corpus is required; everything
// else takes the package defaults when left at zero.
type Options struct {
	Corpus *corpus.Corpus

	// SubsampleThreshold is used when Ingest recomputes rejection
	// probabilities; zero selects corpus.DefaultSubsampleThreshold.
	SubsampleThreshold float64

	Window      int
	NumNegative int
	MaxAttempts int

	// Rand is shared by both samplers. Nil lets each seed itself from the
	// wall clock.
	Rand *rand.Rand
}

// New wires a context sampler, a negative sampler, and an example builder
// around opts.Corpus.
func New(opts Options) (*Korpus, error) {
	if opts.Corpus == nil {
		return nil, fmt.Errorf("%w: a corpus is required", internalerr.ErrInvalidInput)
	}

	contexts, err := sample.NewContextSampler(opts.Corpus, sample.ContextOptions{
		Window:      opts.Window,
		MaxAttempts: opts.MaxAttempts,
		Rand:        opts.Rand,
	})
	if err != nil {
		return nil, err
	}

	negatives, err := sample.NewNegativeSampler(opts.Corpus, sample.NegativeOptions{
		NumNegative: opts.NumNegative,
		Rand:        opts.Rand,
	})
	if err != nil {
		return nil, err
	}

	builder, err := traindata.New(opts.Corpus, contexts, negatives)
	if err != nil {
		return nil, err
	}

	return &Korpus{
		corpus:    opts.Corpus,
		contexts:  contexts,
		negatives: negatives,
		builder:   builder,
		threshold: opts.SubsampleThreshold,
	}, nil
}

// Example draws one training example.
func (k *Korpus) Example() (traindata.Example, error) {
	return k.builder.Build()
}

// Examples draws n training examples in one go.
func (k *Korpus) Examples(n int) ([]traindata.Example, error) {
	return k.builder.BuildN(n)
}

// Ingest appends a batch of documents and brings the derived state back in
// line: rejection probabilities are recomputed with the configured
// threshold and the negative-sampling distribution is refreshed. Callers
// working with a bare corpus.Corpus have to do those two steps themselves.
func (k *Korpus) Ingest(docs [][]string) error {
	if err := k.corpus.Ingest(docs); err != nil {
		return err
	}
	k.refresh()
	return nil
}

// IngestTable is Ingest for tabular input.
func (k *Korpus) IngestTable(tbl table.Table, textColumn string) error {
	if err := k.corpus.IngestTable(tbl, textColumn); err != nil {
		return err
	}
	k.refresh()
	return nil
}

// Corpus exposes the underlying index.
func (k *Korpus) Corpus() *corpus.Corpus {
	return k.corpus
}

func (k *Korpus) refresh() {
	k.corpus.ComputeRejectionProbs(k.threshold)
	k.negatives.Refresh()
}
