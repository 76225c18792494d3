package bench

import (
	"context"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Record persists a finished summary and returns the stored run ID.
func Record(ctx context.Context, st store.Store, sum *Summary, opening []words.Word, started, finished time.Time) (int64, error) {
	games := make([]store.Game, len(sum.Games))
	for i, g := range sum.Games {
		games[i] = store.Game{
			Seq:      i,
			Answer:   g.Answer.String(),
			Attempts: g.Attempts,
			Solved:   g.Solved,
			Guesses:  words.Strings(g.Guesses),
		}
	}
	return st.SaveRun(ctx, store.Run{
		Opening:    words.Strings(opening),
		Games:      len(sum.Games),
		Attempts:   sum.Attempts,
		StartedAt:  started,
		FinishedAt: finished,
	}, games)
}
