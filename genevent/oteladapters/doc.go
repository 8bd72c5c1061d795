// Package oteladapters provides OpenTelemetry implementations of the genevent observability interfaces.
//
// They plug into the PostgreSQL archive (see package postgresengine) without the caller
// implementing the interfaces:
//
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(
//		pool,
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("genevent")),
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("genevent"))),
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("genevent"))),
//	)
package oteladapters
