package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./postgres.go -destination=./mocks/postgres_mock.go -package=mocks

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 20
	connMaxLifetime    = 30 * time.Minute
)

var ErrConnectionUnavailable = errors.New("postgres connection unavailable")

// Transactor opens write transactions. *Connection is the production implementation.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// Connection keeps separate pools for the read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	role     string
	host     string
	port     string
	username string
	password string
	name     string
	sslMode  string
	timezone string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := endpoint{
		role:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		name:     withPrefix(pg.Prefix, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
		timezone: pg.Write.Timezone,
	}
	read := endpoint{
		role:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		name:     withPrefix(pg.Prefix, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
		timezone: pg.Read.Timezone,
	}

	conn := &Connection{Write: connect(write, pg.MaxRetry, pg.RetryWaitTime)}

	// Without a dedicated replica both roles share the primary pool.
	if read.host == "" {
		conn.Read = conn.Write
	} else {
		conn.Read = connect(read, pg.MaxRetry, pg.RetryWaitTime)
	}

	return conn
}

func withPrefix(prefix, name string) string {
	if prefix != "" {
		return prefix + name
	}

	return name
}

// DSN builds a libpq connection URL.
func DSN(username, password, host, port, dbName, sslMode, timezone string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)

	if timezone != "" {
		query.Set("timezone", timezone)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}

	return u.String()
}

func connect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	descriptor := DSN(e.username, e.password, e.host, e.port, e.name, e.sslMode, e.timezone)

	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.Info().
				Str("role", e.role).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.name).
				Msg("Connected to database")

			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			return db
		}

		log.Error().
			Err(err).
			Str("role", e.role).
			Str("host", e.host).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}

// WithTx runs fn inside a single write transaction. The transaction is rolled
// back when fn returns an error or panics, committed otherwise.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	if c == nil || c.Write == nil {
		return ErrConnectionUnavailable
	}

	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks the primary pool.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Write == nil {
		return ErrConnectionUnavailable
	}

	return c.Write.PingContext(ctx)
}

func (c *Connection) Close() {
	if c == nil {
		return
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close write connection")
		}
	}

	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close read connection")
		}
	}
}
