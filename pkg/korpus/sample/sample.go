// Package sample draws skip-gram training signals from an indexed corpus:
// context windows around subsampled center words, and negative examples
// from the smoothed unigram distribution.
package sample

import (
	"math/rand"
	"time"
)

// Defaults applied when the corresponding option is left at zero.
const (
	DefaultWindow      = 5
	DefaultNumNegative = 5
)

func newRand(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
