// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
//   - GET  /daily       → today's date, and the solver's play of it
//                          (answer and guesses hidden unless ?reveal=1)
//   - POST /daily/guess → score a word against today's answer
//
// The answer is picked from the history list by daily.WordIndex, so every
// server sharing DAILY_SALT agrees on it. Nothing is stored.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Post("/guess", s.handleDailyGuess)
	})
}

// Today returns today's date key and answer from the history list.
func Today(hist []words.Word, salt string, now time.Time) (string, words.Word) {
	idx := daily.WordIndex(now, salt, len(hist))
	return daily.DateKey(now), hist[idx]
}

type dailyRes struct {
	Date     string   `json:"date"`
	Attempts int      `json:"attempts"`
	Answer   string   `json:"answer,omitempty"`
	Guesses  []string `json:"guesses,omitempty"`
}

// handleDaily solves today's puzzle and reports how many guesses it took.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, answer := Today(s.cfg.Lists.History, s.cfg.DailySalt, time.Now())
	res, err := solver.Run(s.vocab, answer, solver.Options{Opening: s.cfg.Opening, MaxRounds: s.cfg.MaxRounds})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}
	out := dailyRes{Date: date, Attempts: res.Attempts}
	if r.URL.Query().Get("reveal") == "1" {
		out.Answer = answer.String()
		out.Guesses = words.Strings(res.Guesses())
	}
	writeJSON(w, http.StatusOK, out)
}

type dailyGuessReq struct {
	Word string `json:"word"`
}
type dailyGuessRes struct {
	Date   string `json:"date"`
	Code   int    `json:"code"`
	Digits string `json:"digits"` // per-letter: 0=miss, 1=present, 2=hit
	State  string `json:"state"`  // in_progress | won
}

// handleDailyGuess scores a word against today's answer.
// The word must be in the vocabulary.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := words.Parse(p.Word)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}
	if _, ok := s.index[guess]; !ok {
		writeError(w, http.StatusBadRequest, "word_not_allowed")
		return
	}

	date, answer := Today(s.cfg.Lists.History, s.cfg.DailySalt, time.Now())
	code := solver.Encode(answer, guess)
	state := "in_progress"
	if code == solver.Win {
		state = "won"
	}
	writeJSON(w, http.StatusOK, dailyGuessRes{Date: date, Code: int(code), Digits: code.String(), State: state})
}
