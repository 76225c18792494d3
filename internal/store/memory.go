// internal/store/memory.go
//
// In-memory implementation of Store.
// Used when no DB_PATH is configured, and in tests.
//
// Characteristics:
//   - Runs keyed by a monotonically increasing ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
)

type memoryRun struct {
	run   Run
	games []Game
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex
	nextID int64
	runs   map[int64]*memoryRun
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[int64]*memoryRun)}
}

func (m *memory) SaveRun(ctx context.Context, r Run, games []Game) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.runs[r.ID] = &memoryRun{run: r, games: append([]Game(nil), games...)}
	return r.ID, nil
}

func (m *memory) GetRun(ctx context.Context, id int64) (*Run, []Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mr, ok := m.runs[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	r := mr.run
	return &r, append([]Game(nil), mr.games...), nil
}

func (m *memory) Hardest(ctx context.Context, limit int) ([]HardRow, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	m.mu.RLock()
	type agg struct{ runs, max, total int }
	byAnswer := make(map[string]*agg)
	for _, mr := range m.runs {
		for _, g := range mr.games {
			if !g.Solved {
				continue
			}
			a := byAnswer[g.Answer]
			if a == nil {
				a = &agg{}
				byAnswer[g.Answer] = a
			}
			a.runs++
			a.total += g.Attempts
			if g.Attempts > a.max {
				a.max = g.Attempts
			}
		}
	}
	m.mu.RUnlock()

	out := make([]HardRow, 0, len(byAnswer))
	for w, a := range byAnswer {
		out = append(out, HardRow{
			Answer:      w,
			Runs:        a.runs,
			MaxAttempts: a.max,
			AvgAttempts: float64(a.total) / float64(a.runs),
		})
	}
	sortHardest(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }

// sortHardest orders rows the way the SQL query does.
func sortHardest(rows []HardRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.MaxAttempts != b.MaxAttempts {
			return a.MaxAttempts > b.MaxAttempts
		}
		if a.AvgAttempts != b.AvgAttempts {
			return a.AvgAttempts > b.AvgAttempts
		}
		return a.Answer < b.Answer
	})
}
