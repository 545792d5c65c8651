package postgres

//nolint:revive
import (
	"bilateral/config"
	"bilateral/shared/constant"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var ErrNotConnected = errors.New("postgres connection is not established")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. With the memory driver no pool is opened and the
// returned connection stays empty.
func New(config *config.Config) *Connection {
	if config.DB.Driver == constant.DBDriverMemory {
		log.Info().Msg("Memory store selected, skipping postgres connection")

		return &Connection{}
	}

	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return ErrNotConnected
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	if c == nil {
		return
	}

	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")
		}
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		Descriptor(config.DB.Postgres.Write.Username,
			config.DB.Postgres.Write.Password,
			config.DB.Postgres.Write.Host,
			config.DB.Postgres.Write.Port,
			getDBName(config, config.DB.Postgres.Write.Name),
			config.DB.Postgres.Write.SSLMode),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		Descriptor(config.DB.Postgres.Read.Username,
			config.DB.Postgres.Read.Password,
			config.DB.Postgres.Read.Host,
			config.DB.Postgres.Read.Port,
			getDBName(config, config.DB.Postgres.Read.Name),
			config.DB.Postgres.Read.SSLMode),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// Descriptor builds a postgres URL. An empty sslmode defaults to disable.
func Descriptor(username, password, host, port, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreatePostgresConnection connects with retries and returns nil once they are exhausted.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
