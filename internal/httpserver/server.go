// internal/httpserver/server.go
//
// HTTP wiring for `serve` mode.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Solver endpoints: GET /feedback, POST /solve, POST /next.
//   - Daily puzzle: mounted under /daily.
//   - Benchmark endpoints: POST /bench (token-gated when API_SECRET is set),
//     GET /bench/{id}, GET /bench/hardest.
//
// Notes:
//   - The vocabulary is loaded once and shared read-only by every request;
//     each solve owns its own candidate set.
//   - /solve enforces the solver's precondition (answer in vocabulary) so
//     a request can never loop forever.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Config carries everything the server needs from main.
type Config struct {
	Lists     *words.Lists
	Store     store.Store
	Opening   []words.Word
	MaxRounds int
	DailySalt string
	APISecret string // empty disables the bearer-token check on POST /bench
}

// Server bundles router, word lists and benchmark store.
type Server struct {
	r     *chi.Mux
	cfg   Config
	vocab []words.Word
	index map[words.Word]int
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	vocab := cfg.Lists.Vocabulary()
	s := &Server{r: chi.NewRouter(), cfg: cfg, vocab: vocab, index: words.Index(vocab)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","GET /feedback","POST /solve","POST /next","GET /daily","POST /bench","GET /bench/hardest"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			h, x := s.cfg.Lists.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"history": h, "extra": x, "vocabulary": len(s.vocab)})
		})

		r.Get("/feedback", s.handleFeedback)
		r.Post("/solve", s.handleSolve)
		r.Post("/next", s.handleNext)

		s.mountDaily(r)

		r.Get("/bench/hardest", s.handleHardest)
		r.Get("/bench/{id}", s.handleGetRun)
	})

	// Benchmarks can take a while; they get their own bound.
	s.r.With(chimw.Timeout(5*time.Minute), s.requireToken()).Post("/bench", s.handleBench)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin taken from CLIENT_ORIGIN.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SOLVER -------------------------------------

type feedbackRes struct {
	Code   solver.Feedback `json:"code"`
	Digits string          `json:"digits"`
	Marks  []int           `json:"marks"`
}

// handleFeedback encodes ?guess= against ?answer=. Neither word needs to be
// in the vocabulary.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	answer, err := words.Parse(r.URL.Query().Get("answer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	guess, err := words.Parse(r.URL.Query().Get("guess"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}
	code := solver.Encode(answer, guess)
	res := feedbackRes{Code: code, Digits: code.String()}
	for _, m := range code.Marks() {
		res.Marks = append(res.Marks, int(m))
	}
	writeJSON(w, http.StatusOK, res)
}

// solveReq/Res payloads for POST /solve.
type solveReq struct {
	Answer  string   `json:"answer"`
	Opening []string `json:"opening"` // nil uses the server default; [] disables it
}
type roundRes struct {
	Guess     string `json:"guess"`
	Feedback  string `json:"feedback"`
	Remaining int    `json:"remaining"`
}
type solveRes struct {
	Answer   string     `json:"answer"`
	Guesses  []string   `json:"guesses"`
	Rounds   []roundRes `json:"rounds"`
	Attempts int        `json:"attempts"`
	Solved   bool       `json:"solved"`
}

// handleSolve runs one solver loop against a known answer.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer, err := words.Parse(req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	if _, ok := s.index[answer]; !ok {
		writeError(w, http.StatusUnprocessableEntity, "answer_not_in_vocabulary")
		return
	}
	opening := s.cfg.Opening
	if req.Opening != nil {
		if opening, err = words.ParseAll(req.Opening); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_opening")
			return
		}
	}

	res, err := solver.Run(s.vocab, answer, solver.Options{Opening: opening, MaxRounds: s.cfg.MaxRounds})
	if err != nil && !errors.Is(err, solver.ErrExhausted) {
		log.Error().Err(err).Str("answer", answer.String()).Msg("solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}
	writeJSON(w, http.StatusOK, toSolveRes(res))
}

func toSolveRes(res solver.Result) solveRes {
	out := solveRes{
		Answer:   res.Answer.String(),
		Guesses:  words.Strings(res.Guesses()),
		Rounds:   make([]roundRes, len(res.Rounds)),
		Attempts: res.Attempts,
		Solved:   res.Solved,
	}
	for i, rd := range res.Rounds {
		out.Rounds[i] = roundRes{Guess: rd.Guess.String(), Feedback: rd.Feedback.String(), Remaining: rd.Remaining}
	}
	return out
}

// nextReq/Res payloads for POST /next.
type observation struct {
	Word string `json:"word"`
	Code int    `json:"code"`
}
type nextReq struct {
	Guesses []observation `json:"guesses"`
	Opening []string      `json:"opening"`
}
type nextRes struct {
	Guess      string   `json:"guess"`
	Remaining  int      `json:"remaining"`
	Candidates []string `json:"candidates,omitempty"` // listed when 10 or fewer
}

// handleNext suggests the next guess given the feedback seen so far.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req nextReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	hist := make([]solver.Observation, 0, len(req.Guesses))
	for _, o := range req.Guesses {
		g, err := words.Parse(o.Word)
		if err != nil || o.Code < 0 || o.Code >= solver.NumFeedback {
			writeError(w, http.StatusBadRequest, "invalid_observation")
			return
		}
		hist = append(hist, solver.Observation{Guess: g, Feedback: solver.Feedback(o.Code)})
	}
	opening := s.cfg.Opening
	if req.Opening != nil {
		var err error
		if opening, err = words.ParseAll(req.Opening); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_opening")
			return
		}
	}

	guess, remaining, ok := solver.Next(s.vocab, hist, opening)
	if !ok {
		writeError(w, http.StatusConflict, "no_candidates")
		return
	}
	res := nextRes{Guess: guess.String(), Remaining: len(remaining)}
	if len(remaining) <= 10 {
		res.Candidates = words.Strings(remaining)
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ BENCH --------------------------------------

type benchReq struct {
	Limit int `json:"limit"`
}
type benchRes struct {
	RunID     int64       `json:"runId"`
	Games     int         `json:"games"`
	Solved    int         `json:"solved"`
	Failed    int         `json:"failed"`
	Average   float64     `json:"average"`
	Histogram map[int]int `json:"histogram"`
}

// handleBench runs the batch driver over the history list and stores it.
func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var req benchReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "invalid_limit")
		return
	}

	started := time.Now()
	sum, err := bench.Run(r.Context(), s.vocab, s.cfg.Lists.History, bench.Options{
		Solver: solver.Options{Opening: s.cfg.Opening, MaxRounds: s.cfg.MaxRounds},
		Limit:  req.Limit,
	})
	if err != nil {
		log.Warn().Err(err).Int("played", len(sum.Games)).Msg("bench interrupted")
		writeError(w, http.StatusServiceUnavailable, "bench_interrupted")
		return
	}

	id, err := bench.Record(r.Context(), s.cfg.Store, sum, s.cfg.Opening, started, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("save bench run")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Int64("runId", id).Int("games", len(sum.Games)).Float64("average", sum.Average()).Msg("bench finished")
	writeJSON(w, http.StatusOK, benchRes{
		RunID:     id,
		Games:     len(sum.Games),
		Solved:    sum.Solved,
		Failed:    sum.Failed,
		Average:   sum.Average(),
		Histogram: sum.Histogram(),
	})
}

// handleGetRun returns a stored run and its games.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	run, games, err := s.cfg.Store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run": run, "games": games})
}

// handleHardest lists answers by worst attempt count across stored runs.
func (s *Server) handleHardest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.cfg.Store.Hardest(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
