// Package sqlstore implements storage.Storage on top of database/sql and goqu.
// The same code serves PostgreSQL (through a pgx pool) and SQLite (through
// modernc.org/sqlite); only the goqu dialect and the connection differ.
package sqlstore

import (
	"carbonaudit/pkg/storage"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	// DialectPostgres is the goqu dialect name for PostgreSQL.
	DialectPostgres = "postgres"
	// DialectSQLite is the goqu dialect name for SQLite.
	DialectSQLite = "sqlite3"
)

// PostgresOptions defines the configuration parameters for PostgreSQL database connection.
type PostgresOptions struct {
	// Username is the PostgreSQL user to connect as
	Username string
	// Password is the password for the specified user
	Password string
	// Host is the PostgreSQL server hostname or IP address
	Host string
	// SslMode specifies the SSL mode for the connection (e.g., "disable", "require")
	SslMode string
	// Port is the PostgreSQL server port number
	Port int
	// Database is the name of the database to connect to
	Database string
	// ConnMaxLifetime is the maximum amount of time a connection may be reused
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle
	ConnMaxIdleTime time.Duration
	// MaxOpenConnections is the maximum number of open connections to the database
	MaxOpenConnections int
	// MaxIdleConnections is the maximum number of connections in the idle connection pool
	MaxIdleConnections int
}

// DB defines the subset of database/sql methods used by this package. Both
// *sql.DB and *sql.Tx satisfy this interface, allowing the same code paths to be
// used within and outside transactions.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Builder abstracts the minimal subset of goqu methods used by this package to
// construct queries. Both a goqu database handle and a transaction handle
// implement this interface.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Update(table interface{}) *goqu.UpdateDataset
}

// Store implements storage.Storage for PostgreSQL and SQLite.
type Store struct {
	// DB is the underlying executor. It is either a *sql.DB (when not in a
	// transaction) or a *sql.Tx (when inside a transaction).
	DB DB
	// Builder is the goqu handle used to construct SQL queries bound to DB.
	Builder Builder
	// Pool is the pgx connection pool. It is nil for SQLite.
	Pool *pgxpool.Pool
	// Dialect is the goqu dialect name, DialectPostgres or DialectSQLite.
	Dialect string

	now func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// Close closes the underlying connections.
func (s *Store) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if db, ok := s.DB.(*sql.DB); ok {
		if err := db.Close(); err != nil && s.Pool == nil {
			return fmt.Errorf("could not close database: %w", err)
		}
	}

	return nil
}

// Commit commits the current transaction. It returns storage.ErrNotInTx if
// called when the Store is not in a transactional context.
func (s *Store) Commit() error {
	db, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// Rollback aborts the current transaction. It returns storage.ErrNotInTx if
// called when the Store is not in a transactional context.
func (s *Store) Rollback() error {
	db, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := db.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	return nil
}

// Begin starts a new database transaction and returns a transactional Store.
// If called while already inside a transaction, ErrAlreadyInTx is returned.
func (s *Store) Begin(ctx context.Context) (storage.TxStorage, error) {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return nil, storage.ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &Store{
		DB:      tx,
		Builder: goqu.NewTx(s.Dialect, tx),
		Dialect: s.Dialect,
		now:     s.now,
	}, nil
}

// WithTx starts a transaction, executes cb with a transactional storage handle,
// and commits if cb returns nil. If cb returns an error, the transaction is
// rolled back and the callback error is returned.
func (s *Store) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// NewPostgres creates a PostgreSQL store backed by pgxpool, and a
// database/sql wrapper for compatibility with goqu and migrations.
func NewPostgres(ctx context.Context, options PostgresOptions) (*Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		options.Host,
		options.Port,
		options.Username,
		options.Database,
		options.Password,
		options.SslMode)
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("could not parse pgxpool config: %w", err)
	}
	if options.MaxOpenConnections > 0 {
		cfg.MaxConns = int32(options.MaxOpenConnections) //nolint: gosec
	}
	if options.MaxIdleConnections > 0 {
		cfg.MinConns = int32(options.MaxIdleConnections) //nolint: gosec
	}
	if options.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = options.ConnMaxLifetime
	}
	if options.ConnMaxIdleTime > 0 {
		cfg.MaxConnIdleTime = options.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create pgx Pool: %w", err)
	}

	// wrap the pool with a *sql.DB to keep compatibility with goqu and goose
	sqlDB := stdlib.OpenDBFromPool(pool)

	return &Store{
		DB:      sqlDB,
		Builder: goqu.Dialect(DialectPostgres).DB(sqlDB),
		Pool:    pool,
		Dialect: DialectPostgres,
		now:     time.Now,
	}, nil
}

// NewSQLite opens (creating if needed) the SQLite database file at path.
func NewSQLite(ctx context.Context, path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("could not connect to sqlite database: %w", err)
	}

	return &Store{
		DB:      sqlDB,
		Builder: goqu.Dialect(DialectSQLite).DB(sqlDB),
		Dialect: DialectSQLite,
		now:     time.Now,
	}, nil
}

// WithClock replaces the clock used for store-assigned timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now

	return s
}

// SQLDB returns the non-transactional *sql.DB, or nil inside a transaction.
func (s *Store) SQLDB() *sql.DB {
	db, _ := s.DB.(*sql.DB)

	return db
}
