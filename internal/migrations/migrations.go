package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"kanban/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed *.sql
var FS embed.FS

// databaseURL переводит postgres:// в схему драйвера pgx5
func databaseURL(connString string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

func newMigrate(connString string) (*migrate.Migrate, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL(connString))
	if err != nil {
		return nil, fmt.Errorf("инициализация миграций: %w", err)
	}
	return m, nil
}

func Up(connString string) error {
	logger.Info("Попытка миграций")

	m, err := newMigrate(connString)
	if err != nil {
		logger.Error("Migrations: Ошибка инициализации", err)
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Migrations: Ошибка применения", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Migrations: Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func Down(connString string) error {
	logger.Info("Откат миграций")

	m, err := newMigrate(connString)
	if err != nil {
		logger.Error("Migrations: Ошибка инициализации", err)
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Migrations: Ошибка отката", err)
		return fmt.Errorf("откат миграций: %w", err)
	}

	logger.Info("Migrations: Миграции откачены")
	return nil
}
