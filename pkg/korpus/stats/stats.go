// Package stats summarizes a corpus for operators: vocabulary and token
// totals, subsampling pressure, and the most frequent words.
package stats

import (
	"sort"

	"github.com/cognicore/korpus/pkg/korpus/corpus"
)

// WordCount describes one vocabulary entry in a report.
type WordCount struct {
	Word          string  `json:"word"`
	Index         int     `json:"index"`
	Count         int64   `json:"count"`
	RejectionProb float64 `json:"rejection_prob"`
}

// Report is a point-in-time summary of a corpus.
type Report struct {
	VocabSize     int     `json:"vocab_size"`
	TotalWords    int64   `json:"total_words"`
	Documents     int     `json:"documents"`
	Subsampled    int     `json:"subsampled_words"`    // words with non-zero rejection probability
	MeanRejection float64 `json:"mean_rejection_prob"` // averaged over the vocabulary

	// TopWords lists the most frequent entries, highest count first, ties
	// broken by vocabulary index.
	TopWords []WordCount `json:"top_words"`
}

// Compute builds a report over c. topWords caps the TopWords list; zero or
// negative keeps every vocabulary entry.
func Compute(c *corpus.Corpus, topWords int) Report {
	if c == nil {
		return Report{}
	}

	words := make([]WordCount, 0, c.VocabSize())
	subsampled := 0
	rejectionSum := 0.0
	for i, word := range c.Vocab() {
		p := c.RejectionProb(word)
		if p > 0 {
			subsampled++
		}
		rejectionSum += p
		words = append(words, WordCount{
			Word:          word,
			Index:         i,
			Count:         c.Frequency(word),
			RejectionProb: p,
		})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count == words[j].Count {
			return words[i].Index < words[j].Index
		}
		return words[i].Count > words[j].Count
	})
	if topWords > 0 && len(words) > topWords {
		words = words[:topWords]
	}

	mean := 0.0
	if c.VocabSize() > 0 {
		mean = rejectionSum / float64(c.VocabSize())
	}

	return Report{
		VocabSize:     c.VocabSize(),
		TotalWords:    c.TotalWords(),
		Documents:     c.NumDocuments(),
		Subsampled:    subsampled,
		MeanRejection: mean,
		TopWords:      words,
	}
}
