package engine

import (
	db "github.com/upper/db/v4"
)

type Engine interface {
	// Returns the engine name, as used in the config file
	Name() string
	// Opens a new session; the caller is responsible for closing it
	Open() (db.Session, error)
	// Returns the statements that create the department and person tables
	Schema() []string
	// Returns the engine-specific configurations
	GetConfigs() map[string]string
}
