package config

// Supported gorm engines for store connections.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the connection settings for one database-backed store.
type DB struct {
	Engine   string // mysql, postgres or sqlite
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // database name, or file path for sqlite
	Prefix   string // table name prefix (Admidio installs default to "adm_")
}
