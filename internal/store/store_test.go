package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "bench.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func sampleRun() (Run, []Game) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Run{
		Opening:    []string{"lares"},
		Games:      3,
		Attempts:   10,
		StartedAt:  start,
		FinishedAt: start.Add(time.Minute),
	}
	games := []Game{
		{Seq: 0, Answer: "cigar", Attempts: 3, Solved: true, Guesses: []string{"lares", "crate", "cigar"}},
		{Seq: 1, Answer: "rebut", Attempts: 4, Solved: true, Guesses: []string{"lares", "tubed", "debut", "rebut"}},
		{Seq: 2, Answer: "sissy", Attempts: 3, Solved: true, Guesses: []string{"lares", "missy", "sissy"}},
	}
	return r, games
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			r, games := sampleRun()
			id, err := st.SaveRun(ctx, r, games)
			require.NoError(t, err)
			assert.NotZero(t, id)

			got, gotGames, err := st.GetRun(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, r.Opening, got.Opening)
			assert.Equal(t, r.Games, got.Games)
			assert.Equal(t, r.Attempts, got.Attempts)
			assert.True(t, r.StartedAt.Equal(got.StartedAt))
			assert.True(t, r.FinishedAt.Equal(got.FinishedAt))
			assert.Equal(t, games, gotGames)
		})
	}
}

func TestGetRunNotFound(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := st.GetRun(context.Background(), 42)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestHardest(t *testing.T) {
	ctx := context.Background()
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			r, games := sampleRun()
			_, err := st.SaveRun(ctx, r, games)
			require.NoError(t, err)

			games[0].Attempts = 5
			games = append(games, Game{Seq: 3, Answer: "humph", Attempts: 9, Solved: false})
			_, err = st.SaveRun(ctx, r, games)
			require.NoError(t, err)

			rows, err := st.Hardest(ctx, 0)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, HardRow{Answer: "cigar", Runs: 2, MaxAttempts: 5, AvgAttempts: 4}, rows[0])
			assert.Equal(t, "rebut", rows[1].Answer)
			assert.Equal(t, "sissy", rows[2].Answer)

			rows, err = st.Hardest(ctx, 1)
			require.NoError(t, err)
			assert.Len(t, rows, 1)
		})
	}
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.Hardest(context.Background(), 5)
	assert.NoError(t, err)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, want.Equal(parseTime("2022-01-02T03:04:05Z")))
	assert.True(t, parseTime("not a time").IsZero())
	assert.True(t, parseTime("").IsZero())
}
