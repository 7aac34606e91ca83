package worker

import (
	"ormbench/util"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// Progress is notified once per finished trial
type Progress interface {
	Increment() int
	Finish()
}

type Worker struct {
	runID    string
	trials   int
	progress Progress
}

// Operation is a named trial; Run executes one full trial and returns the measured seconds
type Operation struct {
	Name string
	Run  func() (float64, error)
}

type Metric struct {
	Rts   []float64 // duration (seconds) of every trial, in execution order
	Min   float64   // best-of-n duration
	Total float64   // sum of the duration of all trials
}

type BenchmarkResult struct {
	Label   string
	Seconds float64
	Trials  []float64
}

func NewWorker(runID string, trials int, progress Progress) *Worker {
	worker := new(Worker)
	worker.runID = runID
	worker.trials = trials
	worker.progress = progress
	return worker
}

func (w *Worker) log(msg string) {
	zlog.Info().Str("run", w.runID).Msg(msg)
}

// Runs the trials of a single operation and returns its metric
func (w *Worker) Measure(op Operation) (*Metric, error) {
	if w.trials <= 0 {
		return nil, errors.Errorf("invalid number of trials: %d", w.trials)
	}

	metric := &Metric{}
	for i := 0; i < w.trials; i++ {
		rt, err := op.Run()
		if err != nil {
			return nil, errors.Wrapf(err, "%s trial %d", op.Name, i+1)
		}

		zlog.Debug().Str("run", w.runID).Str("operation", op.Name).Int("trial", i+1).
			Float64("rt", rt).Msg("completed")

		metric.Rts = append(metric.Rts, rt)
		metric.Total += rt

		if w.progress != nil {
			w.progress.Increment()
		}
	}

	metric.Min = util.Min(metric.Rts)
	return metric, nil
}

// Runs every operation in order. done is called after each operation finishes all of its
// trials, before the next one starts. The first error aborts the run.
func (w *Worker) Run(ops []Operation, done func(BenchmarkResult) error) ([]BenchmarkResult, error) {
	w.log("Running")
	results := []BenchmarkResult{}

	for _, op := range ops {
		metric, err := w.Measure(op)
		if err != nil {
			return results, err
		}

		zlog.Info().Str("run", w.runID).Str("operation", op.Name).Float64("min", metric.Min).
			Float64("avg", metric.Total/float64(len(metric.Rts))).
			Float64("median", util.Percentile(metric.Rts, 50)).Msg("operation done")

		result := BenchmarkResult{Label: op.Name, Seconds: metric.Min, Trials: metric.Rts}
		results = append(results, result)

		if done != nil {
			if err := done(result); err != nil {
				return results, err
			}
		}
	}

	w.log("Done")
	return results, nil
}
