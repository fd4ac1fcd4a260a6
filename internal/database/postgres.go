package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresDB manages the database connection to PostgreSQL
type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgresDB creates a new connection to PostgreSQL
func NewPostgresDB(ctx context.Context, dbURL string) (*PostgresDB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("POSTGRES_DB_URL environment variable is not set")
	}

	// Create a connection pool
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Establish the connection pool
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the database connection pool
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetPool returns the connection pool for direct use
func (db *PostgresDB) GetPool() *pgxpool.Pool {
	return db.pool
}

// ExecuteTransaction executes a transaction with the provided callback function
func (db *PostgresDB) ExecuteTransaction(ctx context.Context, txFunc func(pgx.Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Execute the transaction function
	if err := txFunc(tx); err != nil {
		// Rollback on error
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	// Commit the transaction
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Migration is one embedded schema file
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded schema files in apply order
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Name: name, SQL: string(content)})
	}
	return migrations, nil
}

// Version is the name recorded in schema_migrations for m
func (m Migration) Version() string {
	return path.Base(m.Name)
}

const (
	createMigrationLedger = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	lockMigrationLedger  = `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`
	selectAppliedVersion = `SELECT COALESCE(array_agg(version), '{}') FROM schema_migrations`
	recordMigration      = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// migrationTx is the part of pgx.Tx the migrator needs
type migrationTx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrate applies the embedded migrations not yet recorded in
// schema_migrations, all inside one transaction. The ledger table is locked
// so concurrent migrators apply each file once.
func (db *PostgresDB) Migrate(ctx context.Context, log *zap.Logger) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}

	return db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		_, err := applyMigrations(ctx, tx, migrations, log)
		return err
	})
}

// applyMigrations runs the pending migrations in order and returns the
// versions it applied
func applyMigrations(ctx context.Context, tx migrationTx, migrations []Migration, log *zap.Logger) ([]string, error) {
	if _, err := tx.Exec(ctx, createMigrationLedger); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	if _, err := tx.Exec(ctx, lockMigrationLedger); err != nil {
		return nil, fmt.Errorf("failed to lock schema_migrations: %w", err)
	}

	var versions []string
	if err := tx.QueryRow(ctx, selectAppliedVersion).Scan(&versions); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}

	var applied []string
	for _, m := range migrations {
		version := m.Version()
		if done[version] {
			log.Debug("Migration already applied", zap.String("version", version))
			continue
		}
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %w", version, err)
		}
		if _, err := tx.Exec(ctx, recordMigration, version); err != nil {
			return nil, fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		log.Info("Applied migration", zap.String("version", version))
		applied = append(applied, version)
	}

	if len(applied) == 0 {
		log.Info("Schema is up to date")
	}
	return applied, nil
}
