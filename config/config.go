package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store engines the service can run on.
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
	EngineMemory   = "memory"
)

// Database adapters for the postgres engine.
const (
	AdapterPGX   = "pgx"
	AdapterSQLX  = "sqlx"
	AdapterSQLDB = "sqldb"
)

var (
	// ErrUnknownEngine is returned for an engine value outside postgres/sqlite/memory.
	ErrUnknownEngine = errors.New("unknown store engine")

	// ErrUnknownAdapter is returned for an adapter value outside pgx/sqlx/sqldb.
	ErrUnknownAdapter = errors.New("unknown database adapter")

	// ErrMissingDSN is returned when the postgres engine is selected without a DSN.
	ErrMissingDSN = errors.New("postgres engine requires a dsn")

	// ErrMissingSQLitePath is returned when the sqlite engine is selected without a file path.
	ErrMissingSQLitePath = errors.New("sqlite engine requires a database path")
)

// Config holds everything the service needs to start.
type Config struct {
	ListenAddr      string
	Engine          string
	Adapter         string
	PostgresDSN     string
	SQLitePath      string
	EnsureSchema    bool
	LogLevel        string
	LogJSON         bool
	ShutdownTimeout time.Duration
}

// Load reads configuration from the LENDING_ environment prefix and an
// optional config file, applying defaults for everything unset.
func Load(configFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("listen-addr", ":8080")
	v.SetDefault("engine", EngineMemory)
	v.SetDefault("adapter", AdapterPGX)
	v.SetDefault("postgres-dsn", "")
	v.SetDefault("sqlite-path", "")
	v.SetDefault("ensure-schema", true)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-json", true)
	v.SetDefault("shutdown-timeout", 10*time.Second)

	v.SetEnvPrefix("LENDING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		ListenAddr:      v.GetString("listen-addr"),
		Engine:          strings.ToLower(v.GetString("engine")),
		Adapter:         strings.ToLower(v.GetString("adapter")),
		PostgresDSN:     v.GetString("postgres-dsn"),
		SQLitePath:      v.GetString("sqlite-path"),
		EnsureSchema:    v.GetBool("ensure-schema"),
		LogLevel:        strings.ToLower(v.GetString("log-level")),
		LogJSON:         v.GetBool("log-json"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for inconsistencies before anything
// connects or listens.
func (c Config) Validate() error {
	switch c.Engine {
	case EnginePostgres:
		if c.PostgresDSN == "" {
			return ErrMissingDSN
		}
	case EngineSQLite:
		if c.SQLitePath == "" {
			return ErrMissingSQLitePath
		}
	case EngineMemory:
		// nothing to check
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Engine)
	}

	switch c.Adapter {
	case AdapterPGX, AdapterSQLX, AdapterSQLDB:
		// fine
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, c.Adapter)
	}

	return nil
}
