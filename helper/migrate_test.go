package helper_test

import (
	"bilateral/config"
	"bilateral/helper"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "app"
	cfg.DB.Postgres.Write.Password = "p@ss"
	cfg.DB.Postgres.Write.Name = "bilateral"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://app:p%40ss@db:5432/dev_bilateral?sslmode=disable&x-migrations-table=schema_migrations",
		helper.DatabaseURL(cfg))
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")
	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
