// Package postgresengine provides a PostgreSQL archive for encoded generator events.
//
// Each archived event is one row of an event_records table holding the run id, the event number,
// the recording time and the JSON-encoded event payload (see package codec). Records are appended
// in batches and queried back in sequence order, optionally filtered by run, event number range
// and recording time range.
//
// Supported database adapters are pgx.Pool, sql.DB (with the lib/pq driver) and sqlx.DB.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("shower_records"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.CreateTable(ctx)
//	record, _ := codec.BuildRecord(runID, event, time.Now())
//	_ = store.Append(ctx, record)
//
//	filter := postgresengine.BuildRecordFilter().ForRun(runID).WithEventNumbersBetween(1, 100).Finalize()
//	records, _ := store.Query(ctx, filter)
package postgresengine
