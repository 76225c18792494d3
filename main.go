// main.go
//
// Command-line entry point for the Wordle solver.
//
// Usage:
//   solver [flags] benchmark   solve every history answer, report averages
//   solver [flags] daily       solve today's puzzle (see internal/daily)
//   solver [flags] serve       start the HTTP API
//   solver [flags] token       print a bearer token for POST /bench
//   solver [flags] ANSWER      solve a single 5-letter answer
//
// Configuration comes from the environment (optionally a .env file);
// flags override the solver settings.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	setupLogging()

	quiet := flag.Bool("quiet", false, "do not print individual guesses")
	progress := flag.Bool("progress", false, "show a progress bar in benchmark mode")
	openingFlag := flag.String("opening", getEnv("SOLVER_OPENING", "lares"), "comma-separated forced opening guesses")
	limit := flag.Int("limit", 0, "benchmark only the first N history answers (0 = all)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <benchmark|daily|serve|token|ANSWER>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatal().Int("args", flag.NArg()).Msg("expected exactly 1 argument")
	}

	lists, err := words.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	opening, err := parseOpening(*openingFlag)
	if err != nil {
		log.Fatal().Err(err).Str("opening", *openingFlag).Msg("invalid opening")
	}
	opts := solver.Options{Opening: opening, MaxRounds: envInt("SOLVER_MAX_ROUNDS", 0)}
	h, x := lists.Stats()
	log.Debug().Int("history", h).Int("extra", x).Strs("opening", words.Strings(opening)).Msg("word lists loaded")

	rep := newReporter(os.Stdout, *quiet, *progress)

	switch mode := flag.Arg(0); mode {
	case "benchmark":
		runBenchmark(lists, opts, *limit, rep)
	case "daily":
		_, answer := httpserver.Today(lists.History, getEnv("DAILY_SALT", "local_dev_salt"), time.Now())
		runOne(lists.Vocabulary(), answer, opts, rep)
	case "serve":
		serve(lists, opts)
	case "token":
		secret := os.Getenv("API_SECRET")
		if secret == "" {
			log.Fatal().Msg("API_SECRET is not set")
		}
		tok, err := httpserver.SignToken(secret, "cli", 24*time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("sign token")
		}
		fmt.Println(tok)
	default:
		answer, err := words.Parse(mode)
		if err != nil {
			log.Fatal().Err(err).Str("answer", mode).Msg("invalid answer")
		}
		runOne(lists.Vocabulary(), answer, opts, rep)
	}
}

// runOne solves a single answer and prints its guesses.
func runOne(vocab []words.Word, answer words.Word, opts solver.Options, rep *reporter) {
	if _, ok := words.Index(vocab)[answer]; !ok && opts.MaxRounds == 0 {
		log.Warn().Str("answer", answer.String()).Msg("answer is not in the vocabulary; the solver will give up once no candidate is left")
	}
	opts.OnGuess = rep.guess
	res, err := solver.Run(vocab, answer, opts)
	if errors.Is(err, solver.ErrExhausted) {
		log.Error().Str("answer", answer.String()).Int("attempts", res.Attempts).Msg("no solution found")
		os.Exit(1)
	}
	rep.solved(res)
}

// runBenchmark plays the whole history list and prints running averages.
// With DB_PATH set the run is stored for later comparison.
func runBenchmark(lists *words.Lists, opts solver.Options, limit int, rep *reporter) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts.OnGuess = rep.guess
	n := len(lists.History)
	if limit > 0 && limit < n {
		n = limit
	}
	rep.start(n)

	started := time.Now()
	sum, err := bench.Run(ctx, lists.Vocabulary(), lists.History, bench.Options{
		Solver: opts,
		Limit:  limit,
		OnGame: rep.game,
	})
	rep.finish(sum)
	if err != nil {
		log.Fatal().Err(err).Int("played", len(sum.Games)).Msg("benchmark interrupted")
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		st, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Msg("open benchmark store")
		}
		defer st.Close()
		id, err := bench.Record(ctx, st, sum, opts.Opening, started, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("save benchmark run")
		}
		log.Info().Int64("runId", id).Str("db", path).Msg("benchmark saved")
	}
}

// serve starts the HTTP API.
func serve(lists *words.Lists, opts solver.Options) {
	var st store.Store = store.NewMemoryStore()
	if path := os.Getenv("DB_PATH"); path != "" {
		var err error
		if st, err = store.OpenSQLite(path); err != nil {
			log.Fatal().Err(err).Msg("open benchmark store")
		}
	}
	defer st.Close()

	srv := httpserver.New(httpserver.Config{
		Lists:     lists,
		Store:     st,
		Opening:   opts.Opening,
		MaxRounds: opts.MaxRounds,
		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
		APISecret: os.Getenv("API_SECRET"),
	})
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting solver server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// parseOpening splits a comma-separated list of words. Empty means none.
func parseOpening(s string) ([]words.Word, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return words.ParseAll(strings.Split(s, ","))
}

func setupLogging() {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_FORMAT", "console") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}
