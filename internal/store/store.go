// internal/store/store.go
//
// Persistence for finished benchmark runs.
// Implementations:
//   - memory (this package): map-backed, lost on restart.
//   - sqlite (this package): SQLite file with embedded migrations.
//
// Only completed outcomes are stored. Solver state is never persisted.

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("store: not found")

// Run is the header row of one benchmark batch.
type Run struct {
	ID         int64     `json:"id"`
	Opening    []string  `json:"opening"`
	Games      int       `json:"games"`
	Attempts   int       `json:"attempts"` // total over solved games
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Game is one answer played inside a run.
type Game struct {
	Seq      int      `json:"seq"`
	Answer   string   `json:"answer"`
	Attempts int      `json:"attempts"`
	Solved   bool     `json:"solved"`
	Guesses  []string `json:"guesses"`
}

// HardRow aggregates one solved answer across all stored runs.
type HardRow struct {
	Answer      string  `json:"answer"`
	Runs        int     `json:"runs"`
	MaxAttempts int     `json:"maxAttempts"`
	AvgAttempts float64 `json:"avgAttempts"`
}

// Store defines the persistence interface for benchmark history.
type Store interface {
	// SaveRun persists a run and its games, returning the assigned ID.
	SaveRun(ctx context.Context, r Run, games []Game) (int64, error)

	// GetRun loads a run and its games in play order.
	// Returns ErrNotFound if the ID is unknown.
	GetRun(ctx context.Context, id int64) (*Run, []Game, error)

	// Hardest returns answers ordered by max attempts, then average, then
	// answer. A non-positive limit defaults to 20.
	Hardest(ctx context.Context, limit int) ([]HardRow, error)

	Close() error
}

const defaultLimit = 20
