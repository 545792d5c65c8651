package helper

//nolint:revive
import (
	"bilateral/config"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionDrop   = "drop"
	ActionStepUp = "step-up"
)

var ErrUnknownAction = errors.New("unknown migration action")

type step struct {
	run  func(mig *migrate.Migrate) error
	done string
}

var actions = map[string]step{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	ActionDown:   {run: func(mig *migrate.Migrate) error { return mig.Steps(-1) }, done: "Rolled back the latest migration"},
	ActionStepUp: {run: func(mig *migrate.Migrate) error { return mig.Steps(1) }, done: "Applied the next migration"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "Database migrations rolled back successfully"},
}

// DatabaseURL builds the golang-migrate connection string for the write database.
func DatabaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func Runner(cfg *config.Config, action string) error {
	act, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, DatabaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := act.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(act.done)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, ActionDrop)
}
