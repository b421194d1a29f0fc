package repository

import (
	"fmt"

	"github.com/deppfellow/coffee-demo/internal/config"
	"github.com/deppfellow/coffee-demo/internal/database"
	"github.com/deppfellow/coffee-demo/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Coffee CoffeeMapper
}

// NewRepositories constructs the repository container for the configured driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	coffee, err := NewCoffeeMapper(s.DB)
	if err != nil {
		return nil, err
	}
	return &Repositories{Coffee: coffee}, nil
}

// NewCoffeeMapper picks the CoffeeMapper implementation matching db.Driver.
func NewCoffeeMapper(db *database.Database) (CoffeeMapper, error) {
	switch db.Driver {
	case config.DriverPostgres:
		return NewPostgresCoffeeRepository(db.Pool), nil
	case config.DriverSQLite:
		return NewSQLiteCoffeeRepository(db.SQL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}
