// Package adapters provide database adapter implementations for the PostgreSQL event archive.
//
// It supports pgxpool.Pool, sql.DB and sqlx.DB behind the common DBAdapter interface,
// so the archive works the same with any supported connection type.
package adapters
