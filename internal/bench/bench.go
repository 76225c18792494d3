// internal/bench/bench.go
//
// Batch driver: replays the solver over a corpus of historical answers
// and aggregates attempt counts.
//
// Runs are sequential and share the read-only vocabulary. After every game
// the running average is reported through Options.OnGame; the final
// average is in the returned Summary.
//
// A game that ends in solver.ErrExhausted is counted as failed and does
// not contribute to the average. Any other error stops the batch.

package bench

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options configures a batch run.
type Options struct {
	Solver solver.Options

	// Limit caps the number of answers played. Zero plays all of them.
	Limit int

	// OnGame is called after each game with its 1-based index, the total
	// number of games and the running average over solved games.
	OnGame func(i, n int, res solver.Result, avg float64)
}

// Game is the outcome of one answer in a batch.
type Game struct {
	Answer   words.Word
	Guesses  []words.Word
	Attempts int
	Solved   bool
}

// Summary aggregates a batch.
type Summary struct {
	Games    []Game
	Attempts int // total attempts over solved games
	Solved   int
	Failed   int
}

// Average returns the mean attempts per solved game.
func (s *Summary) Average() float64 {
	if s.Solved == 0 {
		return 0
	}
	return float64(s.Attempts) / float64(s.Solved)
}

// Max returns the worst solved game, or false if none was solved.
func (s *Summary) Max() (Game, bool) {
	var (
		worst Game
		ok    bool
	)
	for _, g := range s.Games {
		if g.Solved && (!ok || g.Attempts > worst.Attempts) {
			worst, ok = g, true
		}
	}
	return worst, ok
}

// Histogram counts solved games by attempt count.
func (s *Summary) Histogram() map[int]int {
	h := make(map[int]int)
	for _, g := range s.Games {
		if g.Solved {
			h[g.Attempts]++
		}
	}
	return h
}

// Run plays every answer in history against vocab.
// The context is checked between games; on cancellation the partial
// summary is returned with ctx.Err().
func Run(ctx context.Context, vocab, history []words.Word, opts Options) (*Summary, error) {
	n := len(history)
	if opts.Limit > 0 && opts.Limit < n {
		n = opts.Limit
	}
	sum := &Summary{Games: make([]Game, 0, n)}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := solver.Run(vocab, history[i], opts.Solver)
		switch {
		case err == nil:
			sum.Solved++
			sum.Attempts += res.Attempts
		case errors.Is(err, solver.ErrExhausted):
			sum.Failed++
			log.Warn().Str("answer", history[i].String()).Int("attempts", res.Attempts).Msg("no solution found")
		default:
			return sum, err
		}
		sum.Games = append(sum.Games, Game{
			Answer:   history[i],
			Guesses:  res.Guesses(),
			Attempts: res.Attempts,
			Solved:   res.Solved,
		})
		if opts.OnGame != nil {
			opts.OnGame(i+1, n, res, sum.Average())
		}
	}
	return sum, nil
}
