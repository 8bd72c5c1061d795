package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine"
)

const driverNamePostgres = "postgres"

var ErrConnectingFailed = errors.New("connecting to postgres failed")

// PostgresPGXPoolConfig creates a pgxpool.Config from the connection settings.
func PostgresPGXPoolConfig(cfg PostgresConfig) (*pgxpool.Config, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	dbConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	dbConfig.MaxConns = cfg.MaxConns
	dbConfig.MinConns = cfg.MinConns
	dbConfig.MaxConnLifetime = cfg.MaxConnLifetime
	dbConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return dbConfig, nil
}

// PostgresPGXPool creates a pgxpool.Pool and checks that the database answers.
func PostgresPGXPool(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	return pool, nil
}

// PostgresSQLDB creates a configured *sql.DB using the lib/pq driver and checks that the database answers.
func PostgresSQLDB(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	db, err := sql.Open(driverNamePostgres, cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if pingErr := pingWithTimeout(ctx, cfg, db.PingContext); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	return db, nil
}

// PostgresSQLX creates a configured *sqlx.DB using the lib/pq driver and checks that the database answers.
func PostgresSQLX(ctx context.Context, cfg PostgresConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	db, err := sqlx.Open(driverNamePostgres, cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if pingErr := pingWithTimeout(ctx, cfg, db.PingContext); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	return db, nil
}

func pingWithTimeout(ctx context.Context, cfg PostgresConfig, ping func(context.Context) error) error {
	if cfg.ConnectTimeout <= 0 {
		return ping(ctx)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	return ping(pingCtx)
}

// OpenRecordStore connects with the configured adapter and creates a RecordStore on the configured table.
// The returned close function releases the connection.
func OpenRecordStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.RecordStore, func(), error) {

	allOptions := append([]postgresengine.Option{postgresengine.WithTableName(cfg.Archive.TableName)}, options...)

	switch cfg.Postgres.Adapter {
	case AdapterPGX:
		pool, err := PostgresPGXPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromPGXPool(pool, allOptions...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil

	case AdapterSQL:
		db, err := PostgresSQLDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLDB(db, allOptions...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case AdapterSQLX:
		db, err := PostgresSQLX(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLX(db, allOptions...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedAdapter, cfg.Postgres.Adapter)
	}
}
