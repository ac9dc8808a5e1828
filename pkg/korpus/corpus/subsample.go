package corpus

import "math"

// DefaultSubsampleThreshold is the frequency threshold used when none is
// given. Words occurring at or below the threshold are never rejected;
// above it the rejection probability grows towards 1 as 1 - sqrt(t/f).
const DefaultSubsampleThreshold = 10.0

// ComputeRejectionProbs rebuilds the per-word rejection probability table
// from the current frequencies:
//
//	p(word) = max(0, 1 - sqrt(threshold/freq(word)))
//
// A threshold <= 0 falls back to DefaultSubsampleThreshold. The table is
// replaced wholesale, so words ingested after the previous computation are
// picked up and nothing stale survives. Context sampling reads this table
// to discard frequent words.
func (c *Corpus) ComputeRejectionProbs(threshold float64) {
	if threshold <= 0 {
		threshold = DefaultSubsampleThreshold
	}

	reject := make(map[string]float64, len(c.words))
	for _, word := range c.words {
		p := 1.0 - math.Sqrt(threshold/float64(c.freq[word]))
		if p < 0 {
			p = 0
		}
		reject[word] = p
	}
	c.reject = reject
}

// RejectionProb returns the rejection probability recorded for word by the
// last ComputeRejectionProbs call. Words ingested since then, like words
// never seen at all, return 0 and are therefore always kept.
func (c *Corpus) RejectionProb(word string) float64 {
	return c.reject[word]
}
