package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	_ "github.com/lib/pq"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/internal/config"
)

// RunMigrations creates the activities and feedbacks tables on a postgres
// remote. It is a no-op for REST remotes and when disabled.
func RunMigrations(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled || !cfg.Remote.Configured() || !cfg.Remote.IsPostgres() {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	connCfg, err := pgx.ParseConfig(cfg.Remote.URL)
	if err != nil {
		return err
	}
	if connCfg.Password == "" {
		connCfg.Password = cfg.Remote.Key
	}
	dsn := (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(connCfg.User, connCfg.Password),
		Host:     fmt.Sprintf("%s:%d", connCfg.Host, connCfg.Port),
		Path:     "/" + connCfg.Database,
		RawQuery: "sslmode=" + sslMode(connCfg),
	}).String()

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(cfg.Migrations.Path))
	m, err := migrate.NewWithDatabaseInstance(sourceURL, connCfg.Database, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}

func sslMode(cfg *pgx.ConnConfig) string {
	if cfg.TLSConfig == nil {
		return "disable"
	}
	return "require"
}
