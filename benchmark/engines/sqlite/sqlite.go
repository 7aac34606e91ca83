package sqlite

import (
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	db "github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/sqlite"
	"gopkg.in/yaml.v3"
)

type SQLite struct {
	// Path to the database file
	Database string `yaml:"database"`
	// Extra driver parameters, e.g. _journal_mode or _sync
	Options map[string]string `yaml:"sqliteOptions"`
}

func New(configData []byte) (*SQLite, error) {
	s := SQLite{}
	if err := yaml.Unmarshal(configData, &s); err != nil {
		return nil, errors.Wrap(err, "sqlite config")
	}
	if s.Database == "" {
		return nil, errors.New("sqlite: missing database path")
	}
	return &s, nil
}

func (s *SQLite) Name() string {
	return "sqlite"
}

func (s *SQLite) Open() (db.Session, error) {
	settings := sqlite.ConnectionURL{
		Database: s.Database,
		Options:  map[string]string{},
	}
	for k, v := range s.Options {
		settings.Options[k] = v
	}

	sess, err := sqlite.Open(settings)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlite open %s", s.Database)
	}
	return sess, nil
}

func (s *SQLite) Schema() []string {
	return []string{
		`create table if not exists department(id integer primary key autoincrement, name varchar(60) not null)`,
		`create table if not exists person(
			id integer primary key autoincrement,
			first varchar(60) not null,
			last varchar(80) not null,
			department integer not null references department(id)
		)`,
	}
}

func (s *SQLite) GetConfigs() map[string]string {
	version, _, _ := sqlite3.Version()
	return map[string]string{
		"engine":        "sqlite",
		"sqliteVersion": version,
		"database":      s.Database,
	}
}
