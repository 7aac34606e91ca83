package crud

import (
	"fmt"
	"os"
	"strconv"

	"ormbench/benchmark"
	dbutils "ormbench/dbUtils"
	"ormbench/util"
	"ormbench/worker"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Category labels, in the order RunAllTests measures them
const (
	Insert = "INSERT"
	Update = "UPDATE"
	Select = "SELECT"
	Delete = "DELETE"
)

type Crud struct {
	Trials         int    `yaml:"trials"`
	InsertOuter    int    `yaml:"insertOuter"`
	InsertInner    int    `yaml:"insertInner"`
	Selects        int    `yaml:"selects"`
	DepartmentName string `yaml:"departmentName"`
	FirstNames     string `yaml:"firstNames"`
	LastNames      string `yaml:"lastNames"`
	CreateSchema   bool   `yaml:"createSchema"`
	Cleanup        bool   `yaml:"cleanup"`
	env            benchmark.Env
	departmentKey  int64
}

func New(configData []byte, env benchmark.Env) (*Crud, error) {
	c := Crud{}
	if err := yaml.Unmarshal(configData, &c); err != nil {
		return nil, errors.Wrap(err, "crud config")
	}
	if env.Engine == nil {
		return nil, errors.New("crud: missing engine")
	}
	if env.Results == nil {
		return nil, errors.New("crud: missing result log")
	}
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	c.env = env

	if c.Trials == 0 {
		c.Trials = 5
	}
	if c.InsertOuter == 0 {
		c.InsertOuter = 10
	}
	if c.InsertInner == 0 {
		c.InsertInner = 1000
	}
	if c.Selects == 0 {
		c.Selects = 1000
	}
	if c.DepartmentName == "" {
		c.DepartmentName = "Operations"
	}
	if c.FirstNames == "" {
		c.FirstNames = "data/firstnames.txt"
	}
	if c.LastNames == "" {
		c.LastNames = "data/lastnames.txt"
	}

	if c.Trials < 0 || c.InsertOuter < 0 || c.InsertInner < 0 || c.Selects < 0 {
		return nil, errors.New("crud: trials and loop counts must be positive")
	}

	return &c, nil
}

func (c *Crud) log(msg string) {
	zlog.Info().Str("benchmark", "crud").Str("run", c.env.RunID).Msg(msg)
}

// Returns the key of the department seeded by the last InitializeData
func (c *Crud) DepartmentKey() int64 {
	return c.departmentKey
}

func (c *Crud) Setup() error {
	if !c.CreateSchema {
		return nil
	}

	c.log("Creating schema")
	sess, err := c.env.Engine.Open()
	if err != nil {
		return err
	}
	defer sess.Close()

	return dbutils.CreateSchema(sess, c.env.Engine.Schema())
}

func (c *Crud) Populate() error {
	c.log("Populating")
	return c.InitializeData()
}

// Returns the trial of each category: a fresh seed, the insert workload unless the insert
// itself is measured, then the measured operation
func (c *Crud) Prepare() []worker.Operation {
	trial := func(measured func() (float64, error), seed bool) func() (float64, error) {
		return func() (float64, error) {
			if err := c.InitializeData(); err != nil {
				return 0, err
			}
			if seed {
				if _, err := c.TestInsert(); err != nil {
					return 0, err
				}
			}
			return measured()
		}
	}

	return []worker.Operation{
		{Name: Insert, Run: trial(c.TestInsert, false)},
		{Name: Update, Run: trial(c.TestUpdate, true)},
		{Name: Select, Run: trial(c.TestSelect, true)},
		{Name: Delete, Run: trial(c.TestDelete, true)},
	}
}

// Measures every category Trials times and records the best duration of each
func (c *Crud) RunAllTests() ([]worker.BenchmarkResult, error) {
	ops := c.Prepare()

	var progress worker.Progress
	if c.env.NewProgress != nil {
		progress = c.env.NewProgress(len(ops) * c.Trials)
		defer progress.Finish()
	}

	w := worker.NewWorker(c.env.RunID, c.Trials, progress)
	results, err := w.Run(ops, func(r worker.BenchmarkResult) error {
		line := r.Label + ":" + util.FormatSeconds(r.Seconds)
		if err := c.WriteLine(line); err != nil {
			return err
		}
		fmt.Fprintln(c.env.Stdout, line)
		return nil
	})
	if err != nil {
		return results, err
	}

	zlog.Info().Str("run", c.env.RunID).Str("file", c.env.Results.Path()).Msg("Results written")
	return results, c.WriteLine("")
}

// Appends a line to the result log
func (c *Crud) WriteLine(text string) error {
	return c.env.Results.WriteLine(text)
}

func (c *Crud) GetConfigs() map[string]string {
	configs := c.env.Engine.GetConfigs()
	configs["trials"] = strconv.Itoa(c.Trials)
	configs["inserts"] = strconv.Itoa(c.InsertOuter * c.InsertInner)
	configs["selects"] = strconv.Itoa(c.Selects)
	return configs
}

func (c *Crud) GetMetrics() (map[string]string, error) {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	departments, err := dbutils.CountRows(sess, departmentTable)
	if err != nil {
		return nil, err
	}
	persons, err := dbutils.CountRows(sess, personTable)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"departmentRows": strconv.FormatUint(departments, 10),
		"personRows":     strconv.FormatUint(persons, 10),
	}, nil
}

func (c *Crud) Finalize() error {
	if !c.Cleanup {
		return nil
	}

	c.log("Cleaning up")
	sess, err := c.env.Engine.Open()
	if err != nil {
		return err
	}
	defer sess.Close()

	return dbutils.ClearTables(sess, personTable, departmentTable)
}

var _ benchmark.Benchmark = (*Crud)(nil)
