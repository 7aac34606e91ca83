package crud

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ormbench/benchmark"
	"ormbench/benchmark/engines/sqlite"
	"ormbench/resultlog"
	"ormbench/worker"

	"github.com/stretchr/testify/suite"
	db "github.com/upper/db/v4"
)

var errConnectionRefused = errors.New("connection refused")

// failingEngine cannot reach its database
type failingEngine struct {
	opens int
}

func (e *failingEngine) Name() string {
	return "failing"
}

func (e *failingEngine) Open() (db.Session, error) {
	e.opens++
	return nil, errConnectionRefused
}

func (e *failingEngine) Schema() []string {
	return nil
}

func (e *failingEngine) GetConfigs() map[string]string {
	return map[string]string{"engine": "failing"}
}

type countingProgress struct {
	steps    int
	n        int
	finished bool
}

func (p *countingProgress) Increment() int {
	p.n++
	return p.n
}

func (p *countingProgress) Finish() {
	p.finished = true
}

// Helper builds a Crud benchmark on top of a temporary sqlite database
type Helper struct {
	suite.Suite

	dir      string
	engine   *sqlite.SQLite
	results  *resultlog.Logger
	stdout   *bytes.Buffer
	progress *countingProgress
}

func (h *Helper) SetupTest() {
	h.dir = h.T().TempDir()

	var err error
	h.engine, err = sqlite.New([]byte(fmt.Sprintf(`
database: %s
sqliteOptions:
  _journal_mode: WAL
  _sync: "OFF"
`, filepath.Join(h.dir, "sampledata.db"))))
	h.Require().NoError(err)

	h.results = resultlog.New(filepath.Join(h.dir, "speed_tests.txt"))
	h.stdout = &bytes.Buffer{}
	h.progress = &countingProgress{}
}

func (h *Helper) writeNames(name string, names ...string) string {
	path := filepath.Join(h.dir, name)
	h.Require().NoError(os.WriteFile(path, []byte(strings.Join(names, "\n")+"\n"), 0o644))
	return path
}

// Returns a benchmark with the schema in place. extra is appended to the yaml config.
func (h *Helper) newCrud(extra string) *Crud {
	config := "createSchema: true\n" + extra
	c, err := New([]byte(config), benchmark.Env{
		RunID:   "test",
		Engine:  h.engine,
		Results: h.results,
		Stdout:  h.stdout,
		NewProgress: func(steps int) worker.Progress {
			h.progress.steps = steps
			return h.progress
		},
	})
	h.Require().NoError(err)
	h.Require().NoError(c.Setup())
	return c
}

func (h *Helper) session() db.Session {
	sess, err := h.engine.Open()
	h.Require().NoError(err)
	return sess
}

func (h *Helper) count(table string) uint64 {
	sess := h.session()
	defer sess.Close()

	n, err := sess.Collection(table).Find().Count()
	h.Require().NoError(err)
	return n
}

func (h *Helper) persons() []Person {
	sess := h.session()
	defer sess.Close()

	var persons []Person
	h.Require().NoError(sess.SQL().SelectFrom("person").OrderBy("id").All(&persons))
	return persons
}
