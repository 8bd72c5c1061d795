// Package config loads the genevent configuration and builds the PostgreSQL connections for the event archive.
//
// A YAML file supplies the settings, the environment overrides single values:
//
//	GENEVENT_POSTGRES_DSN      postgres.dsn
//	GENEVENT_POSTGRES_ADAPTER  postgres.adapter (pgx, sql or sqlx)
//	GENEVENT_ARCHIVE_TABLE     archive.table_name
//	GENEVENT_LOG_LEVEL         logging.level (debug, info, warn, error)
//
// Connections are created for the adapters the archive supports: pgxpool.Pool, sql.DB with the
// lib/pq driver and sqlx.DB.
package config
