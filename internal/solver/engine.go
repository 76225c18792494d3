// internal/solver/engine.go
//
// Decision loop for a single puzzle attempt.
// Responsibilities:
//   - Pick the next guess: opening word if one is configured for this
//     attempt, otherwise the skew-minimising selector.
//   - Count and report each guess.
//   - Stop on an exact match; otherwise encode feedback and filter.
//
// Notes:
//   - The vocabulary is shared and read-only; each run owns its candidates.
//   - Without MaxRounds the loop only terminates when the answer is in the
//     vocabulary. That is the caller's contract.
package solver

import (
	"errors"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrExhausted is returned when a run stops without finding the answer:
// either the round cap was hit or no candidate is left.
var ErrExhausted = errors.New("solver: no solution found")

// Run plays one puzzle against answer and returns the guesses it made.
// On ErrExhausted the partial result is still returned.
func Run(vocab []words.Word, answer words.Word, opts Options) (Result, error) {
	res := Result{Answer: answer}
	if len(vocab) == 0 {
		return res, ErrExhausted
	}
	cands := NewCandidates(vocab)

	for {
		if opts.MaxRounds > 0 && res.Attempts >= opts.MaxRounds {
			return res, ErrExhausted
		}

		var guess words.Word
		if res.Attempts < len(opts.Opening) {
			guess = opts.Opening[res.Attempts]
		} else {
			if cands.Len() == 0 {
				return res, ErrExhausted
			}
			guess = Select(vocab, cands)
		}

		res.Attempts++

		if guess == answer {
			res.Rounds = append(res.Rounds, Round{Guess: guess, Feedback: Win, Remaining: 1})
			res.Solved = true
			report(opts, res.Attempts, guess, 1)
			return res, nil
		}

		code := Encode(answer, guess)
		cands.Filter(guess, code)
		res.Rounds = append(res.Rounds, Round{Guess: guess, Feedback: code, Remaining: cands.Len()})
		report(opts, res.Attempts, guess, cands.Len())
	}
}

func report(opts Options, attempt int, guess words.Word, remaining int) {
	if opts.OnGuess != nil {
		opts.OnGuess(attempt, guess, remaining)
	}
}

// Observation is one guess and the feedback seen for it.
type Observation struct {
	Guess    words.Word
	Feedback Feedback
}

// Next replays observations against a fresh candidate set and returns the
// guess the loop would make next, plus the remaining candidates.
// If nothing is left, ok is false.
func Next(vocab []words.Word, history []Observation, opening []words.Word) (guess words.Word, remaining []words.Word, ok bool) {
	cands := NewCandidates(vocab)
	for _, o := range history {
		if o.Feedback == Win {
			return o.Guess, []words.Word{o.Guess}, true
		}
		cands.Filter(o.Guess, o.Feedback)
	}
	remaining = cands.Words()
	if len(history) < len(opening) {
		return opening[len(history)], remaining, true
	}
	if len(remaining) == 0 {
		return guess, nil, false
	}
	return selectFrom(vocab, remaining), remaining, true
}
