package mysql

import (
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	db "github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
	"gopkg.in/yaml.v3"
)

type MySQL struct {
	// DSN in the go-sql-driver format, e.g. user:pass@tcp(host:3306)/sampledata
	Connection string `yaml:"connection"`
	dsn        *mysqldriver.Config
	settings   mysql.ConnectionURL
}

func New(configData []byte) (*MySQL, error) {
	m := MySQL{}
	if err := yaml.Unmarshal(configData, &m); err != nil {
		return nil, errors.Wrap(err, "mysql config")
	}
	dsn, err := mysqldriver.ParseDSN(m.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "mysql connection")
	}
	m.dsn = dsn
	settings, err := mysql.ParseURL(m.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "mysql connection")
	}
	m.settings = settings
	return &m, nil
}

func (m *MySQL) Name() string {
	return "mysql"
}

func (m *MySQL) Open() (db.Session, error) {
	sess, err := mysql.Open(m.settings)
	if err != nil {
		return nil, errors.Wrapf(err, "mysql open %s", m.dsn.Addr)
	}
	return sess, nil
}

func (m *MySQL) Schema() []string {
	return []string{
		`create table if not exists department(
			id int not null auto_increment primary key,
			name varchar(60) not null
		) engine=InnoDB`,
		`create table if not exists person(
			id int not null auto_increment primary key,
			first varchar(60) not null,
			last varchar(80) not null,
			department int not null,
			foreign key (department) references department(id)
		) engine=InnoDB`,
	}
}

func (m *MySQL) GetConfigs() map[string]string {
	return map[string]string{
		"engine":   "mysql",
		"addr":     m.dsn.Addr,
		"database": m.dsn.DBName,
	}
}
