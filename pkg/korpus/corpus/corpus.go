package corpus

import (
	"fmt"
	"strings"

	"github.com/cognicore/korpus/pkg/korpus/internalerr"
	"github.com/cognicore/korpus/pkg/korpus/table"
)

// UnknownToken is the reserved out-of-vocabulary sentinel. It occupies one
// vocabulary slot so downstream consumers that expect an unknown-word index
// keep a stable index space. It never corresponds to a real ingested token
// and its frequency stays pinned at 1.
const UnknownToken = "UNK"

// Corpus indexes a tokenized text corpus: the documents themselves, the set
// of distinct words, per-word occurrence counts, and dense word↔index
// mappings assigned in first-seen order. It is the shared statistics object
// the sample package reads from.
//
// Mutation (Ingest, IngestTable, ComputeRejectionProbs) must be serialized
// against all other calls by the owner; read-only calls are safe to run
// concurrently once ingestion has settled.
type Corpus struct {
	docs   [][]string
	words  []string       // index → word, dense from 0 in first-seen order
	index  map[string]int // word → index, inverse of words
	freq   map[string]int64
	total  int64
	reject map[string]float64
}

// New builds a corpus from an initial batch of tokenized documents and
// computes rejection probabilities with DefaultSubsampleThreshold. The
// batch must be non-empty.
func New(docs [][]string) (*Corpus, error) {
	return NewWithThreshold(docs, DefaultSubsampleThreshold)
}

// NewWithThreshold is New with a custom subsampling threshold (see
// ComputeRejectionProbs).
func NewWithThreshold(docs [][]string, threshold float64) (*Corpus, error) {
	c := &Corpus{
		index:  make(map[string]int),
		freq:   make(map[string]int64),
		reject: make(map[string]float64),
	}
	if err := c.Ingest(docs); err != nil {
		return nil, err
	}
	c.ComputeRejectionProbs(threshold)
	return c, nil
}

// FromTable builds a corpus from the text column of a row table. Each row's
// text is trimmed and whitespace-split into one document, then construction
// proceeds as in New.
func FromTable(tbl table.Table, textColumn string) (*Corpus, error) {
	docs, err := splitColumn(tbl, textColumn)
	if err != nil {
		return nil, err
	}
	return New(docs)
}

// Ingest appends a batch of tokenized documents to the corpus. Every token
// occurrence increments the total word count; first-seen words are appended
// to the vocabulary with the next dense index and frequency 1, known words
// have their frequency incremented. After the batch, the UnknownToken slot
// is reserved once if not already present.
//
// Ingest deliberately does NOT recompute rejection probabilities: that keeps
// ingestion proportional to the batch size. Callers must invoke
// ComputeRejectionProbs afterwards to bring subsampling in line with the
// updated frequencies.
func (c *Corpus) Ingest(docs [][]string) error {
	if err := validateBatch(docs); err != nil {
		return err
	}

	for _, doc := range docs {
		copied := make([]string, len(doc))
		copy(copied, doc)
		c.docs = append(c.docs, copied)

		for _, word := range copied {
			c.total++
			if _, ok := c.index[word]; ok {
				c.freq[word]++
			} else {
				c.addWord(word)
			}
		}
	}

	// Reserve the unknown-word slot exactly once. Its synthetic occurrence
	// is not part of the total word count.
	if _, ok := c.index[UnknownToken]; !ok {
		c.addWord(UnknownToken)
	}

	return nil
}

// IngestTable is Ingest for tabular input: every row of textColumn is
// trimmed and whitespace-split into one document.
func (c *Corpus) IngestTable(tbl table.Table, textColumn string) error {
	docs, err := splitColumn(tbl, textColumn)
	if err != nil {
		return err
	}
	return c.Ingest(docs)
}

// VocabSize returns the number of distinct words, including UnknownToken.
func (c *Corpus) VocabSize() int {
	return len(c.words)
}

// TotalWords returns the total number of token occurrences across all
// ingested documents. The synthetic UnknownToken entry is not counted.
func (c *Corpus) TotalWords() int64 {
	return c.total
}

// NumDocuments returns the number of ingested documents.
func (c *Corpus) NumDocuments() int {
	return len(c.docs)
}

// Document returns the i-th ingested document. The returned slice is the
// corpus's own storage and must not be modified.
func (c *Corpus) Document(i int) []string {
	return c.docs[i]
}

// Vocab returns a copy of the vocabulary in index order.
func (c *Corpus) Vocab() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Index returns the dense index assigned to word.
func (c *Corpus) Index(word string) (int, bool) {
	idx, ok := c.index[word]
	return idx, ok
}

// IndexOrUnknown returns the dense index assigned to word, falling back to
// the UnknownToken slot for words outside the vocabulary. This is the
// lookup embedding consumers should use.
func (c *Corpus) IndexOrUnknown(word string) int {
	if idx, ok := c.index[word]; ok {
		return idx
	}
	return c.index[UnknownToken]
}

// Word returns the word assigned to index i.
func (c *Corpus) Word(i int) (string, bool) {
	if i < 0 || i >= len(c.words) {
		return "", false
	}
	return c.words[i], true
}

// Frequency returns the occurrence count recorded for word (0 if unknown).
func (c *Corpus) Frequency(word string) int64 {
	return c.freq[word]
}

func (c *Corpus) addWord(word string) {
	c.index[word] = len(c.words)
	c.words = append(c.words, word)
	c.freq[word] = 1
}

func validateBatch(docs [][]string) error {
	if len(docs) == 0 {
		return fmt.Errorf("%w: document batch must be a non-empty list of token lists", internalerr.ErrInvalidInput)
	}
	if docs[0] == nil {
		return fmt.Errorf("%w: first document is not a token list", internalerr.ErrInvalidInput)
	}
	return nil
}

func splitColumn(tbl table.Table, textColumn string) ([][]string, error) {
	if textColumn == "" {
		return nil, fmt.Errorf("%w: text column name is required for tabular input", internalerr.ErrInvalidInput)
	}
	if !table.HasColumn(tbl, textColumn) {
		return nil, fmt.Errorf("%w: column %q not found", internalerr.ErrInvalidInput, textColumn)
	}

	values, err := tbl.Column(textColumn)
	if err != nil {
		return nil, fmt.Errorf("read column %q: %w", textColumn, err)
	}

	docs := make([][]string, len(values))
	for i, text := range values {
		docs[i] = strings.Fields(text)
	}
	return docs, nil
}
