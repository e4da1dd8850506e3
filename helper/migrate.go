package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// connectionString points migrate at the primary and keeps its bookkeeping in
// DB_POSTGRES_MIGRATION_TABLE.
func connectionString(config *config.Config) string {
	write := config.DB.Postgres.Write

	dsn := postgres.DSN(
		write.Username,
		write.Password,
		write.Host,
		write.Port,
		getDBName(config, write.Name),
		write.SSLMode,
		"",
	)

	return dsn + "&x-migrations-table=" + url.QueryEscape(config.DB.Postgres.MigrationTable)
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	var step func(mig *migrate.Migrate) error

	switch action {
	case ActionUp:
		step = func(mig *migrate.Migrate) error { return mig.Up() }
	case ActionDown:
		step = func(mig *migrate.Migrate) error { return mig.Steps(-1) }
	case ActionStepUp:
		step = func(mig *migrate.Migrate) error { return mig.Steps(1) }
	case ActionDrop:
		step = func(mig *migrate.Migrate) error { return mig.Down() }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
