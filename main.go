package main

import (
	"flag"
	"log"
	"os"
	"sort"
	"time"

	"ormbench/benchmark"
	"ormbench/benchmark/crud"
	engine "ormbench/benchmark/engines/abstract"
	"ormbench/benchmark/engines/mssql"
	"ormbench/benchmark/engines/mysql"
	"ormbench/benchmark/engines/postgres"
	"ormbench/benchmark/engines/sqlite"
	"ormbench/resultlog"
	"ormbench/util"
	"ormbench/worker"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	db "github.com/upper/db/v4"
	"gopkg.in/cheggaaa/pb.v1"
	"gopkg.in/yaml.v3"
)

type BenchmarkArgs struct {
	Engine    string
	Benchmark string
	LogFile   string `yaml:"logFile"`
	ResetLog  bool   `yaml:"resetLog"`
	QueryLog  bool   `yaml:"queryLog"`
	FileData  []byte `yaml:"-"` // config file contents
}

// Prepare zerolog
func setupLogging(disableLog bool, level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var zlevel zerolog.Level
	if disableLog {
		zlevel = zerolog.Disabled
	} else if level == "info" {
		zlevel = zerolog.InfoLevel
	} else {
		zlevel = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(zlevel)
}

// Parses the config file contents and fills in the defaults
func parseArgs(data []byte) (*BenchmarkArgs, error) {
	// the log starts fresh unless the config says otherwise
	args := BenchmarkArgs{ResetLog: true}
	if err := yaml.Unmarshal(data, &args); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	args.FileData = data

	if args.Benchmark == "" {
		args.Benchmark = "crud"
	}
	if args.LogFile == "" {
		args.LogFile = "dapper_speed_tests.txt"
	}
	if args.Engine == "" {
		return nil, errors.New("config: missing engine")
	}

	return &args, nil
}

// Returns a BenchmarkArgs struct with the information in the configFile.
func buildArgs(configFile string) *BenchmarkArgs {
	if configFile == "" {
		log.Fatal("Missing config file.")
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal(err)
	}

	args, err := parseArgs(data)
	if err != nil {
		log.Fatal(err)
	}

	return args
}

// Returns the engine named engineName. configData is the contents of the configuration file, so
// each engine can deserialize its respective parameters.
func getEngine(engineName string, configData []byte) (engine.Engine, error) {
	switch engineName {
	case "postgres":
		return postgres.New(configData)
	case "sqlite":
		return sqlite.New(configData)
	case "mysql":
		return mysql.New(configData)
	case "mssql":
		return mssql.New(configData)
	}
	return nil, errors.Errorf("engine '%s' not found", engineName)
}

// Returns a benchmark factory based on the benchmarkType
func getBenchmarkFactory(benchmarkType string) (func([]byte, benchmark.Env) (benchmark.Benchmark, error), error) {
	switch benchmarkType {
	case "crud":
		return func(configData []byte, env benchmark.Env) (benchmark.Benchmark, error) {
			return crud.New(configData, env)
		}, nil
	}
	return nil, errors.Errorf("benchmark '%s' not found", benchmarkType)
}

func newProgressBar(steps int) worker.Progress {
	bar := pb.New(steps).SetMaxWidth(90)
	bar.Output = os.Stderr
	bar.ShowSpeed = false
	return bar.Start()
}

// Logs the benchmark configs and metrics, sorted by key
func printSummary(runID string, configs map[string]string, metrics map[string]string) {
	event := zlog.Info().Str("run", runID)

	keys := []string{}
	for k := range configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		event = event.Str(k, configs[k])
	}

	keys = keys[:0]
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		event = event.Str(k, metrics[k])
	}

	event.Msg("Summary")
}

func main() {
	disableLog := flag.Bool("no-log", false, "Disables the log")
	configFile := flag.String("conf", "", "Benchmark config file")
	logLevel := flag.String("level", "debug", "Log level (info|debug)")
	showProgress := flag.Bool("progress", false, "Shows a progress bar on stderr")
	flag.Parse()

	setupLogging(*disableLog, *logLevel)
	args := buildArgs(*configFile)
	if args.QueryLog {
		db.LC().SetLevel(db.LogLevelDebug)
	}

	runID := uuid.NewString()
	startTime := util.EpochSeconds()

	eng := util.Try(getEngine(args.Engine, args.FileData))
	results := resultlog.New(args.LogFile)
	if args.ResetLog {
		util.CheckErr(results.Reset())
	}

	env := benchmark.Env{
		RunID:   runID,
		Engine:  eng,
		Results: results,
		Stdout:  os.Stdout,
	}
	if *showProgress {
		env.NewProgress = newProgressBar
	}

	factory := util.Try(getBenchmarkFactory(args.Benchmark))
	bench := util.Try(factory(args.FileData, env))

	zlog.Info().Str("run", runID).Str("engine", eng.Name()).Str("benchmark", args.Benchmark).Msg("Run started")

	util.CheckErr(bench.Setup())
	util.CheckErr(bench.Populate())
	util.Try(bench.RunAllTests())
	printSummary(runID, bench.GetConfigs(), util.Try(bench.GetMetrics()))
	util.CheckErr(bench.Finalize())

	zlog.Info().Str("run", runID).Float64("totalTime", util.EpochSeconds()-startTime).Msg("Run ended")
}
