package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Candidates is the set of vocabulary words still consistent with every
// observation of one run. It is a bitset over vocabulary indices, so
// iteration always follows vocabulary order. The vocabulary itself is
// shared and never written.
type Candidates struct {
	vocab []words.Word
	set   *bitset.BitSet
}

// NewCandidates returns a candidate set holding the whole vocabulary.
func NewCandidates(vocab []words.Word) *Candidates {
	set := bitset.New(uint(len(vocab)))
	for i := range vocab {
		set.Set(uint(i))
	}
	return &Candidates{vocab: vocab, set: set}
}

// Len returns the number of remaining candidates.
func (c *Candidates) Len() int { return int(c.set.Count()) }

// Contains reports whether w is still a candidate.
func (c *Candidates) Contains(w words.Word) bool {
	found := false
	c.Each(func(x words.Word) bool {
		found = x == w
		return !found
	})
	return found
}

// Each calls fn for every candidate in vocabulary order until fn returns false.
func (c *Candidates) Each(fn func(words.Word) bool) {
	for i, ok := c.set.NextSet(0); ok; i, ok = c.set.NextSet(i + 1) {
		if !fn(c.vocab[i]) {
			return
		}
	}
}

// Words returns the remaining candidates as a new slice.
func (c *Candidates) Words() []words.Word {
	out := make([]words.Word, 0, c.Len())
	c.Each(func(w words.Word) bool {
		out = append(out, w)
		return true
	})
	return out
}

// Filter keeps only candidates x with Encode(x, guess) == code.
// The set never grows.
func (c *Candidates) Filter(guess words.Word, code Feedback) {
	for i, ok := c.set.NextSet(0); ok; i, ok = c.set.NextSet(i + 1) {
		if Encode(c.vocab[i], guess) != code {
			c.set.Clear(i)
		}
	}
}
