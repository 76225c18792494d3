// internal/solver/types.go
//
// Core type definitions for the solver.
// Defines:
//   - Mark: per-letter outcome of a guess (miss/present/hit).
//   - Feedback: the five marks packed base-3 into [0, 242].
//   - Options / Result: inputs and outcome of one solver run.

package solver

import (
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Mark is the evaluation of a single letter position.
type Mark uint8

const (
	MarkMiss    Mark = 0 // letter absent (after duplicates are accounted for)
	MarkPresent Mark = 1 // letter present elsewhere
	MarkHit     Mark = 2 // correct letter, correct position
)

// NumFeedback is the number of distinct feedback codes (3^5).
const NumFeedback = 243

// Feedback packs five marks as sum(mark_i * 3^i).
type Feedback uint8

// Win is the feedback for an exact match.
const Win Feedback = NumFeedback - 1

// pow3 holds 3^i for each position.
var pow3 = [words.Len]Feedback{1, 3, 9, 27, 81}

// Pack builds a Feedback from per-position marks, position 0 least significant.
func Pack(marks [words.Len]Mark) Feedback {
	var f Feedback
	for i, m := range marks {
		f += Feedback(m) * pow3[i]
	}
	return f
}

// Marks unpacks f into per-position marks.
func (f Feedback) Marks() [words.Len]Mark {
	var out [words.Len]Mark
	for i := range out {
		out[i] = Mark(f % 3)
		f /= 3
	}
	return out
}

// String renders f as five digits, position 0 first (e.g. "12001").
func (f Feedback) String() string {
	var b strings.Builder
	for _, m := range f.Marks() {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}

// Options configures one solver run.
type Options struct {
	// Opening is used verbatim for the first len(Opening) guesses.
	Opening []words.Word

	// MaxRounds caps the number of guesses. Zero means no cap; the caller
	// must then guarantee the answer is in the vocabulary.
	MaxRounds int

	// OnGuess, if set, is called after each guess is counted.
	OnGuess func(attempt int, guess words.Word, remaining int)
}

// Round records one guess and the feedback it produced.
type Round struct {
	Guess     words.Word
	Feedback  Feedback
	Remaining int // candidates left after filtering
}

// Result is the outcome of a run.
type Result struct {
	Answer   words.Word
	Rounds   []Round
	Attempts int
	Solved   bool
}

// Guesses returns the guess sequence of the run.
func (r Result) Guesses() []words.Word {
	out := make([]words.Word, len(r.Rounds))
	for i, rd := range r.Rounds {
		out[i] = rd.Guess
	}
	return out
}
