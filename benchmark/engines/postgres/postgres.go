package postgres

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	db "github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/postgresql"
	"gopkg.in/yaml.v3"
)

type Postgres struct {
	Connection string `yaml:"connection"`
	// pq (github.com/lib/pq) or pgx (github.com/jackc/pgx/v5)
	Driver string `yaml:"driver"`
}

func New(configData []byte) (*Postgres, error) {
	p := Postgres{}
	if err := yaml.Unmarshal(configData, &p); err != nil {
		return nil, errors.Wrap(err, "postgres config")
	}
	if p.Driver == "" {
		p.Driver = "pq"
	}
	if p.Driver != "pq" && p.Driver != "pgx" {
		return nil, errors.Errorf("unknown postgres driver '%s'", p.Driver)
	}
	if p.Connection == "" {
		return nil, errors.New("postgres: missing connection string")
	}
	return &p, nil
}

func (p *Postgres) Name() string {
	return "postgres"
}

// Returns the database/sql driver name registered by the chosen driver package
func (p *Postgres) driverName() string {
	if p.Driver == "pgx" {
		return "pgx"
	}
	return "postgres"
}

func (p *Postgres) Open() (db.Session, error) {
	sqlDB, err := sql.Open(p.driverName(), p.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "postgres open")
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "postgres ping")
	}

	sess, err := postgresql.New(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "postgres session")
	}
	return sess, nil
}

func (p *Postgres) Schema() []string {
	return []string{
		`create table if not exists department(id serial primary key, name varchar(60) not null)`,
		`create table if not exists person(
			id serial primary key,
			first varchar(60) not null,
			last varchar(80) not null,
			department integer not null references department(id)
		)`,
	}
}

func (p *Postgres) GetConfigs() map[string]string {
	return map[string]string{
		"engine": "postgres",
		"driver": p.Driver,
	}
}
