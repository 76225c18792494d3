package solver

import (
	"math"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// skewExponent penalises large feedback buckets super-linearly.
const skewExponent = 2.5

// Partition counts candidates per feedback code for guess. A candidate
// equal to guess is left out of the tally.
func Partition(cands []words.Word, guess words.Word) [NumFeedback]int {
	var buckets [NumFeedback]int
	for _, x := range cands {
		if x == guess {
			continue
		}
		buckets[Encode(x, guess)]++
	}
	return buckets
}

// SkewScore is the sum of bucket_size^2.5 over all buckets.
func SkewScore(buckets *[NumFeedback]int) float64 {
	var s float64
	for _, n := range buckets {
		if n == 0 {
			continue
		}
		s += math.Pow(float64(n), skewExponent)
	}
	return s
}

// Select returns the vocabulary word whose partition of cands has the
// lowest skew score. Ties keep the earliest word in vocab order.
func Select(vocab []words.Word, cands *Candidates) words.Word {
	return selectFrom(vocab, cands.Words())
}

func selectFrom(vocab, cands []words.Word) words.Word {
	best := vocab[0]
	bestScore := math.MaxFloat64
	for _, g := range vocab {
		buckets := Partition(cands, g)
		if s := SkewScore(&buckets); s < bestScore {
			bestScore = s
			best = g
		}
	}
	return best
}
