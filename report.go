package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// reporter prints per-round progress and batch averages to out.
// With a progress bar the per-game lines are replaced by the bar on stderr.
type reporter struct {
	out      io.Writer
	quiet    bool
	progress bool
	bar      *progressbar.ProgressBar
}

func newReporter(out io.Writer, quiet, progress bool) *reporter {
	return &reporter{out: out, quiet: quiet || progress, progress: progress}
}

func (r *reporter) guess(_ int, g words.Word, _ int) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "guess %q\n", g.String())
}

func (r *reporter) solved(res solver.Result) {
	if r.progress {
		return
	}
	if !res.Solved {
		fmt.Fprintf(r.out, "no solution for %s after %d attempts\n", res.Answer, res.Attempts)
		return
	}
	fmt.Fprintf(r.out, "%d attempts for %s\n", res.Attempts, res.Answer)
}

func (r *reporter) start(n int) {
	if !r.progress {
		return
	}
	r.bar = progressbar.NewOptions(n,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("benchmark"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
}

func (r *reporter) game(i, n int, res solver.Result, avg float64) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("benchmark avg %.4f", avg))
		_ = r.bar.Add(1)
		return
	}
	r.solved(res)
	fmt.Fprintf(r.out, "benchmark %d/%d, avg %v\n", i, n, avg)
}

func (r *reporter) finish(sum *bench.Summary) {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(r.out, "average %v\n", sum.Average())
	if sum.Failed > 0 {
		fmt.Fprintf(r.out, "failed %d\n", sum.Failed)
	}
	if r.progress {
		hist := sum.Histogram()
		keys := make([]int, 0, len(hist))
		for k := range hist {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			fmt.Fprintf(r.out, "%2d: %d\n", k, hist[k])
		}
	}
}
