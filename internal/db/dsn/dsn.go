// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/admidio-bridge/admidio-bridge/internal/config"
)

// Create builds the Data Source Name for the given store configuration.
func Create(dbCfg config.DB) string {
	switch dbCfg.Engine {
	case config.EnginePostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d %s",
			dbCfg.Host,
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Name,
			dbCfg.Port,
			dbCfg.Extras,
		)
	case config.EngineSQLite:
		// Name carries the file path, or ":memory:" for tests/dev mode.
		return dbCfg.Name
	default: // mysql
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.Name,
			dbCfg.Extras,
		)
	}
}

// Dialector returns the gorm dialector matching the configured engine.
func Dialector(dbCfg config.DB) (gorm.Dialector, error) {
	switch dbCfg.Engine {
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case config.EnginePostgres:
		return postgres.Open(Create(dbCfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(Create(dbCfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownEngine, dbCfg.Engine)
	}
}
