package benchmark

import (
	"io"

	engine "ormbench/benchmark/engines/abstract"
	"ormbench/resultlog"
	"ormbench/worker"
)

type Benchmark interface {
	// Called once at the start of the run, to setup any resources required
	Setup() error
	// Cleans the tables and seeds the reference data
	Populate() error
	// Returns the timed operations, in execution order
	Prepare() []worker.Operation
	// Runs every category and reports its best duration
	RunAllTests() ([]worker.BenchmarkResult, error)
	// Returns the benchmark-specific configurations
	GetConfigs() map[string]string
	// Returns the benchmark-specific metrics
	GetMetrics() (map[string]string, error)
	// Called once at the end of the run, to close any resources required
	Finalize() error
}

// Env carries the collaborators shared by every benchmark of a run
type Env struct {
	RunID   string
	Engine  engine.Engine
	Results *resultlog.Logger
	Stdout  io.Writer
	// Optional; called with the number of trials a run will execute
	NewProgress func(steps int) worker.Progress
}
