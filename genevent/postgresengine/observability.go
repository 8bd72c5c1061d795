package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/genevent-go/genevent"
	"github.com/AntonStoeckl/genevent-go/genevent/codec"
)

const (
	metricQueryDuration    = "genevent_archive_query_duration_seconds"
	metricAppendDuration   = "genevent_archive_append_duration_seconds"
	metricRecordsQueried   = "genevent_archive_records_queried_total"
	metricRecordsAppended  = "genevent_archive_records_appended_total"
	metricDatabaseErrors   = "genevent_archive_database_errors_total"
	spanNameQuery          = "archive.query"
	spanNameAppend         = "archive.append"
	spanNameCreateTable    = "archive.create_table"
	spanAttrOperation      = "operation"
	spanAttrErrorType      = "error_type"
	spanAttrRecordCount    = "record_count"
	spanAttrRunID          = "run_id"
	spanAttrTable          = "table"
	spanAttrRowsAffected   = "rows_affected"
	spanAttrStatementCount = "statement_count"
	spanAttrDurationMS     = "duration_ms"
	operationQuery         = "query"
	operationAppend        = "append"
	operationCreateTable   = "create_table"
	labelStatus            = "status"
	statusSuccess          = "success"
	statusError            = "error"
)

// === Logging ===
// Every message goes to the Logger and to the ContextualLogger, whichever are configured.

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (rs *RecordStore) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	rs.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (rs *RecordStore) logDebug(ctx context.Context, message string, args ...any) {
	if rs.logger != nil {
		rs.logger.Debug(message, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.DebugContext(ctx, message, args...)
	}
}

// logOperation logs operational information at info level.
func (rs *RecordStore) logOperation(ctx context.Context, action string, args ...any) {
	if rs.logger != nil {
		rs.logger.Info(logMsgOperation+action, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level.
func (rs *RecordStore) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if rs.logger != nil {
		rs.logger.Warn(message, allArgs...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.WarnContext(ctx, message, allArgs...)
	}
}

// logError logs error information at error level.
func (rs *RecordStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if rs.logger != nil {
		rs.logger.Error(message, allArgs...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2f", durationToMilliseconds(d))
}

// === Metrics ===

// recordErrorMetrics increments the database error counter, with context if the collector supports it.
func (rs *RecordStore) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := rs.metricsCollector.(genevent.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	rs.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

// recordDurationMetrics records a duration, with context if the collector supports it.
func (rs *RecordStore) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {

	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := rs.metricsCollector.(genevent.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	rs.metricsCollector.RecordDuration(metricName, duration, labels)
}

// recordValueMetrics records a value, with context if the collector supports it.
func (rs *RecordStore) recordValueMetrics(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {

	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := rs.metricsCollector.(genevent.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	rs.metricsCollector.RecordValue(metricName, value, labels)
}

// queryMetricsObserver encapsulates the metrics collection for query operations.
type queryMetricsObserver struct {
	rs  *RecordStore
	ctx context.Context
}

// appendMetricsObserver encapsulates the metrics collection for append operations.
type appendMetricsObserver struct {
	rs  *RecordStore
	ctx context.Context
}

func (rs *RecordStore) startQueryMetrics(ctx context.Context) *queryMetricsObserver {
	return &queryMetricsObserver{rs: rs, ctx: ctx}
}

func (rs *RecordStore) startAppendMetrics(ctx context.Context) *appendMetricsObserver {
	return &appendMetricsObserver{rs: rs, ctx: ctx}
}

func (qmo *queryMetricsObserver) recordSuccess(recordCount int, duration time.Duration) {
	qmo.rs.recordDurationMetrics(qmo.ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	qmo.rs.recordValueMetrics(qmo.ctx, metricRecordsQueried, float64(recordCount), operationQuery, statusSuccess)
}

func (qmo *queryMetricsObserver) recordError(errorType string, duration time.Duration) {
	qmo.rs.recordDurationMetrics(qmo.ctx, metricQueryDuration, duration, operationQuery, statusError)
	qmo.rs.recordErrorMetrics(qmo.ctx, operationQuery, errorType)
}

func (amo *appendMetricsObserver) recordSuccess(recordCount int, duration time.Duration) {
	amo.rs.recordDurationMetrics(amo.ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	amo.rs.recordValueMetrics(amo.ctx, metricRecordsAppended, float64(recordCount), operationAppend, statusSuccess)
}

func (amo *appendMetricsObserver) recordError(errorType string, duration time.Duration) {
	amo.rs.recordDurationMetrics(amo.ctx, metricAppendDuration, duration, operationAppend, statusError)
	amo.rs.recordErrorMetrics(amo.ctx, operationAppend, errorType)
}

// === Tracing ===

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (rs *RecordStore) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, genevent.SpanContext) {

	if rs.tracingCollector != nil {
		return rs.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan sets the status and attributes on the span and finishes it.
func (rs *RecordStore) finishTraceSpan(span genevent.SpanContext, status string, attrs map[string]string) {
	if rs.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	for key, value := range attrs {
		span.AddAttribute(key, value)
	}

	rs.tracingCollector.FinishSpan(span, status, attrs)
}

// finishSpanError finishes a span with error details; a zero duration is left out.
func (rs *RecordStore) finishSpanError(
	span genevent.SpanContext,
	errorType string,
	duration time.Duration,
	additionalAttrs map[string]string,
) {

	attrs := map[string]string{spanAttrErrorType: errorType}
	if duration > 0 {
		attrs[spanAttrDurationMS] = formatDuration(duration)
	}

	for key, value := range additionalAttrs {
		attrs[key] = value
	}

	rs.finishTraceSpan(span, statusError, attrs)
}

// queryTracingObserver encapsulates tracing span lifecycle management for query operations.
type queryTracingObserver struct {
	rs   *RecordStore
	span genevent.SpanContext
}

// appendTracingObserver encapsulates tracing span lifecycle management for append operations.
type appendTracingObserver struct {
	rs   *RecordStore
	span genevent.SpanContext
}

// createTableTracingObserver encapsulates tracing span lifecycle management for table creation.
type createTableTracingObserver struct {
	rs   *RecordStore
	span genevent.SpanContext
}

func (rs *RecordStore) startQueryTracing(ctx context.Context) (*queryTracingObserver, context.Context) {
	newCtx, span := rs.startTraceSpan(ctx, spanNameQuery, map[string]string{
		spanAttrOperation: operationQuery,
		spanAttrTable:     rs.tableName,
	})

	return &queryTracingObserver{rs: rs, span: span}, newCtx
}

func (rs *RecordStore) startAppendTracing(ctx context.Context, records codec.Records) (*appendTracingObserver, context.Context) {
	attrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrTable:       rs.tableName,
		spanAttrRecordCount: fmt.Sprintf("%d", len(records)),
	}

	if len(records) > 0 {
		attrs[spanAttrRunID] = records[0].RunID.String()
	}

	newCtx, span := rs.startTraceSpan(ctx, spanNameAppend, attrs)

	return &appendTracingObserver{rs: rs, span: span}, newCtx
}

func (rs *RecordStore) startCreateTableTracing(ctx context.Context) (*createTableTracingObserver, context.Context) {
	newCtx, span := rs.startTraceSpan(ctx, spanNameCreateTable, map[string]string{
		spanAttrOperation: operationCreateTable,
		spanAttrTable:     rs.tableName,
	})

	return &createTableTracingObserver{rs: rs, span: span}, newCtx
}

func (qto *queryTracingObserver) finishSuccess(recordCount int, duration time.Duration) {
	qto.rs.finishTraceSpan(qto.span, statusSuccess, map[string]string{
		spanAttrRecordCount: fmt.Sprintf("%d", recordCount),
		spanAttrDurationMS:  formatDuration(duration),
	})
}

func (qto *queryTracingObserver) finishError(errorType string, duration time.Duration) {
	qto.rs.finishSpanError(qto.span, errorType, duration, nil)
}

func (ato *appendTracingObserver) finishSuccess(rowsAffected int64, duration time.Duration) {
	ato.rs.finishTraceSpan(ato.span, statusSuccess, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
		spanAttrDurationMS:   formatDuration(duration),
	})
}

func (ato *appendTracingObserver) finishError(errorType string, duration time.Duration) {
	ato.rs.finishSpanError(ato.span, errorType, duration, nil)
}

func (ato *appendTracingObserver) finishErrorWithAttrs(errorType string, attrs map[string]string) {
	ato.rs.finishSpanError(ato.span, errorType, 0, attrs)
}

func (cto *createTableTracingObserver) finishSuccess(statementCount int, duration time.Duration) {
	cto.rs.finishTraceSpan(cto.span, statusSuccess, map[string]string{
		spanAttrStatementCount: fmt.Sprintf("%d", statementCount),
		spanAttrDurationMS:     formatDuration(duration),
	})
}

func (cto *createTableTracingObserver) finishError(errorType string, duration time.Duration) {
	cto.rs.finishSpanError(cto.span, errorType, duration, nil)
}
