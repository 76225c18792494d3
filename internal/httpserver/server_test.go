package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newTestServer(t *testing.T, secret string) *Server {
	t.Helper()
	l, err := words.Load("", "")
	require.NoError(t, err)
	return New(Config{
		Lists:     l,
		Store:     store.NewMemoryStore(),
		Opening:   []words.Word{words.MustParse("lares")},
		DailySalt: "test_salt",
		APISecret: secret,
	})
}

func do(t *testing.T, s *Server, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/feedback?answer=hello&guess=level", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[feedbackRes](t, rec)
	assert.Equal(t, "12001", res.Digits)
	assert.Equal(t, []int{1, 2, 0, 0, 1}, res.Marks)
	assert.EqualValues(t, 1+2*3+1*81, res.Code)

	rec = do(t, s, http.MethodGet, "/feedback?answer=hello&guess=lev", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "CIGAR"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[solveRes](t, rec)
	assert.True(t, res.Solved)
	assert.Equal(t, "lares", res.Guesses[0])
	assert.Equal(t, "cigar", res.Guesses[len(res.Guesses)-1])
	assert.Equal(t, len(res.Guesses), res.Attempts)
	assert.Equal(t, "22222", res.Rounds[len(res.Rounds)-1].Feedback)
}

func TestSolveWithoutOpening(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "cigar", "opening": []string{}})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[solveRes](t, rec)
	assert.True(t, res.Solved)
	assert.Equal(t, "cigar", res.Guesses[len(res.Guesses)-1])
}

func TestSolveRejectsUnknownAnswer(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "zzzzz"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "zz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNextReplaysSolve(t *testing.T) {
	s := newTestServer(t, "")
	solved := decode[solveRes](t, do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "model"}))
	require.True(t, solved.Solved)

	var obs []map[string]any
	for _, rd := range solved.Rounds {
		rec := do(t, s, http.MethodPost, "/next", map[string]any{"guesses": obs})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, rd.Guess, decode[nextRes](t, rec).Guess)

		code := 0
		for i, mult := 0, 1; i < 5; i, mult = i+1, mult*3 {
			code += int(rd.Feedback[i]-'0') * mult
		}
		obs = append(obs, map[string]any{"word": rd.Guess, "code": code})
	}
}

func TestNextBadObservation(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/next", map[string]any{"guesses": []map[string]any{{"word": "lares", "code": 243}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hidden := decode[dailyRes](t, rec)
	assert.Empty(t, hidden.Answer)
	assert.GreaterOrEqual(t, hidden.Attempts, 1)

	revealed := decode[dailyRes](t, do(t, s, http.MethodGet, "/daily?reveal=1", nil))
	_, answer := Today(s.cfg.Lists.History, "test_salt", time.Now())
	assert.Equal(t, answer.String(), revealed.Answer)
	assert.Equal(t, answer.String(), revealed.Guesses[len(revealed.Guesses)-1])

	rec = do(t, s, http.MethodPost, "/daily/guess", map[string]any{"word": answer.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	g := decode[dailyGuessRes](t, rec)
	assert.Equal(t, "won", g.State)
	assert.Equal(t, "22222", g.Digits)

	rec = do(t, s, http.MethodPost, "/daily/guess", map[string]any{"word": "qqqqq"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBenchStoresRun(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/bench", map[string]any{"limit": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[benchRes](t, rec)
	assert.Equal(t, 5, res.Games)
	assert.Equal(t, 5, res.Solved)
	assert.Greater(t, res.Average, 0.0)

	rec = do(t, s, http.MethodGet, "/bench/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answer":"cigar"`)

	rec = do(t, s, http.MethodGet, "/bench/hardest?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]store.HardRow](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/bench/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBenchRequiresToken(t *testing.T) {
	s := newTestServer(t, "s3cret")
	rec := do(t, s, http.MethodPost, "/bench", map[string]any{"limit": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	bad, err := SignToken("other", "ci", time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/bench", map[string]any{"limit": 1}, "Authorization", "Bearer "+bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := SignToken("s3cret", "ci", -time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/bench", map[string]any{"limit": 1}, "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	good, err := SignToken("s3cret", "ci", time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/bench", map[string]any{"limit": 1}, "Authorization", "Bearer "+good)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
