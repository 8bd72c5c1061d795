package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/genevent-go/genevent"
	"github.com/AntonStoeckl/genevent-go/genevent/codec"
	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine/internal/adapters"
)

const (
	defaultRecordTableName       = "event_records"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgInvalidRecord          = "rejected invalid record"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during record append"
	logMsgCreateTableFailed      = "database execution failed during table creation"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildRecordFailed      = "failed to build record from database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgIncompleteAppend       = "fewer rows inserted than records supplied"
	logMsgQueryCompleted         = "query completed"
	logMsgRecordsAppended        = "records appended"
	logMsgTableCreated           = "table created"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "archive operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrTable                 = "table"
	logAttrRunID                 = "run_id"
	logAttrRecordCount           = "record_count"
	logAttrDurationMS            = "duration_ms"
	logAttrRowsAffected          = "rows_affected"
	logActionQuery               = "query"
	logActionAppend              = "append"
	logActionCreateTable         = "create table"
	colSequenceNumber            = "sequence_number"
	colRunID                     = "run_id"
	colEventNumber               = "event_number"
	colRecordedAt                = "recorded_at"
	colPayload                   = "payload"
	dialectPostgres              = "postgres"
	tableNameSeparator           = "."
	identifierQuote              = `"`
	castText                     = "::text"
	castUUID                     = "?::uuid"
	castTimestamp                = "?::timestamp with time zone"
	castJsonb                    = "?::jsonb"
	createTableStatementTemplate = `CREATE TABLE IF NOT EXISTS %s (sequence_number bigserial PRIMARY KEY, run_id uuid NOT NULL, event_number bigint NOT NULL, recorded_at timestamp with time zone NOT NULL, payload jsonb NOT NULL)`
	createIndexStatementTemplate = `CREATE INDEX IF NOT EXISTS "%s_run_id_event_number_idx" ON %s (run_id, event_number)`
	errorTypeBuildQuery          = "build_query"
	errorTypeInvalidRecord       = "invalid_record"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowScan             = "row_scan"
	errorTypeBuildRecord         = "build_record"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeIncompleteAppend    = "incomplete_append"
	errorTypeCreateTable         = "create_table"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// RecordStore archives encoded generator events in a PostgreSQL table and queries them back.
// It leverages a database adapter and supports optional logging, metrics and tracing.
type RecordStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           genevent.Logger
	contextualLogger genevent.ContextualLogger
	metricsCollector genevent.MetricsCollector
	tracingCollector genevent.TracingCollector
}

type queryResultRow struct {
	sequenceNumber int64
	runID          string
	eventNumber    int64
	recordedAt     time.Time
	payload        []byte
}

// NewRecordStoreFromPGXPool creates a new RecordStore using a pgx Pool with optional configuration.
func NewRecordStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapter(db), options...)
}

// NewRecordStoreFromPGXPoolAndReplica creates a new RecordStore that sends queries to the replica pool.
func NewRecordStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if db == nil || replica == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewRecordStoreFromSQLDB creates a new RecordStore using a sql.DB with optional configuration.
func NewRecordStoreFromSQLDB(db *sql.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLAdapter(db), options...)
}

// NewRecordStoreFromSQLX creates a new RecordStore using a sqlx.DB with optional configuration.
func NewRecordStoreFromSQLX(db *sqlx.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLXAdapter(db), options...)
}

func newRecordStore(db adapters.DBAdapter, options ...Option) (*RecordStore, error) {
	rs := &RecordStore{
		db:        db,
		tableName: defaultRecordTableName,
	}

	for _, option := range options {
		if err := option(rs); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

// TableName returns the name of the table the records are stored in.
func (rs *RecordStore) TableName() string {
	return rs.tableName
}

// CreateTable creates the records table and its run index if they don't exist yet.
func (rs *RecordStore) CreateTable(ctx context.Context) error {
	tracer, ctx := rs.startCreateTableTracing(ctx)
	start := time.Now()

	statements := []sqlQueryString{
		fmt.Sprintf(createTableStatementTemplate, quoteTableName(rs.tableName)),
		fmt.Sprintf(createIndexStatementTemplate, unqualifiedTableName(rs.tableName), quoteTableName(rs.tableName)),
	}

	for _, statement := range statements {
		statementStart := time.Now()
		_, execErr := rs.db.Exec(ctx, statement)
		rs.logQueryWithDuration(ctx, statement, logActionCreateTable, time.Since(statementStart))

		if execErr != nil {
			rs.logError(ctx, logMsgCreateTableFailed, execErr, logAttrTable, rs.tableName)
			rs.recordErrorMetrics(ctx, operationCreateTable, errorTypeCreateTable)
			tracer.finishError(errorTypeCreateTable, time.Since(start))

			return errors.Join(ErrCreatingTableFailed, execErr)
		}
	}

	duration := time.Since(start)
	rs.logOperation(ctx, logMsgTableCreated, logAttrTable, rs.tableName, logAttrDurationMS, durationToMilliseconds(duration))
	tracer.finishSuccess(len(statements), duration)

	return nil
}

// Query retrieves the records matching the filter, ordered by their sequence number.
func (rs *RecordStore) Query(ctx context.Context, filter RecordFilter) (codec.Records, error) {
	tracer, ctx := rs.startQueryTracing(ctx)
	metrics := rs.startQueryMetrics(ctx)
	start := time.Now()

	var empty codec.Records

	sqlQuery, buildQueryErr := rs.buildSelectQuery(filter)
	if buildQueryErr != nil {
		rs.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, 0)

		return empty, buildQueryErr
	}

	rows, queryErr := rs.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		metrics.recordError(errorTypeDatabaseQuery, time.Since(start))
		tracer.finishError(errorTypeDatabaseQuery, time.Since(start))

		return empty, queryErr
	}
	defer rs.closeRows(ctx, rows)

	records, errorType, scanErr := rs.processQueryResults(ctx, rows)
	if scanErr != nil {
		metrics.recordError(errorType, time.Since(start))
		tracer.finishError(errorType, time.Since(start))

		return empty, scanErr
	}

	duration := time.Since(start)

	rs.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrRecordCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	metrics.recordSuccess(len(records), duration)
	tracer.finishSuccess(len(records), duration)

	return records, nil
}

// executeQuery executes the SQL query and logs it with its timing.
func (rs *RecordStore) executeQuery(ctx context.Context, sqlQuery sqlQueryString) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := rs.db.Query(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, errors.Join(ErrQueryingRecordsFailed, queryErr)
	}

	return rows, nil
}

// closeRows closes database rows and logs any errors.
func (rs *RecordStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		rs.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// processQueryResults scans the database rows into records.
// On failure, it also returns the error type for metrics and tracing.
func (rs *RecordStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (codec.Records, string, error) {
	var empty codec.Records
	result := queryResultRow{}
	records := make(codec.Records, 0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.sequenceNumber, &result.runID, &result.eventNumber, &result.recordedAt, &result.payload)
		if rowScanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, rowScanErr)

			return empty, errorTypeRowScan, errors.Join(ErrScanningDBRowFailed, rowScanErr)
		}

		record, buildRecordErr := rs.buildRecord(result)
		if buildRecordErr != nil {
			rs.logError(ctx, logMsgBuildRecordFailed, buildRecordErr, logAttrRunID, result.runID)

			return empty, errorTypeBuildRecord, errors.Join(ErrBuildingRecordFailed, buildRecordErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		rs.logError(ctx, logMsgScanRowFailed, rowsErr)

		return empty, errorTypeRowScan, errors.Join(ErrScanningDBRowFailed, rowsErr)
	}

	return records, "", nil
}

func (rs *RecordStore) buildRecord(row queryResultRow) (codec.Record, error) {
	runID, parseErr := uuid.Parse(row.runID)
	if parseErr != nil {
		return codec.Record{}, parseErr
	}

	record, buildErr := codec.BuildRecordFromPayload(runID, int(row.eventNumber), row.recordedAt, row.payload)
	if buildErr != nil {
		return codec.Record{}, buildErr
	}

	record.SequenceNumber = uint(row.sequenceNumber)

	return record, nil
}

// Append inserts one or multiple records atomically with a single INSERT statement.
// The SequenceNumber of the supplied records is ignored, the database assigns it.
func (rs *RecordStore) Append(ctx context.Context, record codec.Record, additionalRecords ...codec.Record) error {
	allRecords := codec.Records{record}
	allRecords = append(allRecords, additionalRecords...)

	tracer, ctx := rs.startAppendTracing(ctx, allRecords)
	metrics := rs.startAppendMetrics(ctx)
	start := time.Now()

	if err := rs.validateRecords(ctx, allRecords); err != nil {
		metrics.recordError(errorTypeInvalidRecord, time.Since(start))
		tracer.finishError(errorTypeInvalidRecord, 0)

		return err
	}

	sqlQuery, buildQueryErr := rs.buildInsertQuery(allRecords)
	if buildQueryErr != nil {
		rs.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrRecordCount, len(allRecords))
		metrics.recordError(errorTypeBuildQuery, time.Since(start))
		tracer.finishError(errorTypeBuildQuery, 0)

		return buildQueryErr
	}

	rowsAffected, errorType, execErr := rs.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		metrics.recordError(errorType, time.Since(start))
		tracer.finishError(errorType, time.Since(start))

		return execErr
	}

	if rowsAffected < int64(len(allRecords)) {
		rs.logError(
			ctx,
			logMsgIncompleteAppend,
			ErrAppendingRecordsFailed,
			logAttrRowsAffected, rowsAffected,
			logAttrRecordCount, len(allRecords),
		)
		metrics.recordError(errorTypeIncompleteAppend, time.Since(start))
		tracer.finishErrorWithAttrs(errorTypeIncompleteAppend, map[string]string{
			spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
		})

		return fmt.Errorf("%w: %d of %d rows inserted", ErrAppendingRecordsFailed, rowsAffected, len(allRecords))
	}

	duration := time.Since(start)

	rs.logOperation(
		ctx,
		logMsgRecordsAppended,
		logAttrRecordCount, len(allRecords),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	metrics.recordSuccess(len(allRecords), duration)
	tracer.finishSuccess(rowsAffected, duration)

	return nil
}

func (rs *RecordStore) validateRecords(ctx context.Context, records codec.Records) error {
	for i, record := range records {
		if record.RunID == uuid.Nil || len(record.PayloadJSON) == 0 {
			rs.logError(ctx, logMsgInvalidRecord, ErrInvalidRecord, logAttrRecordCount, len(records))

			return fmt.Errorf("%w: record %d", ErrInvalidRecord, i)
		}
	}

	return nil
}

// executeAppendQuery executes the SQL append statement and returns the rows affected.
// On failure, it also returns the error type for metrics and tracing.
func (rs *RecordStore) executeAppendQuery(ctx context.Context, sqlQuery sqlQueryString) (rowsAffectedInt64, string, error) {
	start := time.Now()
	tag, execErr := rs.db.Exec(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, logActionAppend, time.Since(start))

	if execErr != nil {
		rs.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return 0, errorTypeDatabaseExec, errors.Join(ErrAppendingRecordsFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		rs.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, errorTypeRowsAffected, errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, "", nil
}

func (rs *RecordStore) buildSelectQuery(filter RecordFilter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(rs.tableName).
		Select(
			colSequenceNumber,
			goqu.L(colRunID+castText).As(colRunID),
			colEventNumber,
			colRecordedAt,
			colPayload,
		).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt = rs.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (rs *RecordStore) buildInsertQuery(records codec.Records) (sqlQueryString, error) {
	rows := make([][]any, 0, len(records))

	for _, record := range records {
		rows = append(rows, []any{
			goqu.L(castUUID, record.RunID.String()),
			record.EventNumber,
			goqu.L(castTimestamp, record.RecordedAt),
			goqu.L(castJsonb, string(record.PayloadJSON)),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(rs.tableName).
		Cols(colRunID, colEventNumber, colRecordedAt, colPayload).
		Vals(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (rs *RecordStore) addWhereClause(filter RecordFilter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	expressions := make([]goqu.Expression, 0)

	if filter.RunID() != uuid.Nil {
		expressions = append(expressions, goqu.C(colRunID).Eq(goqu.L(castUUID, filter.RunID().String())))
	}

	if from, ok := filter.EventNumberFrom(); ok {
		expressions = append(expressions, goqu.C(colEventNumber).Gte(from))
	}

	if until, ok := filter.EventNumberUntil(); ok {
		expressions = append(expressions, goqu.C(colEventNumber).Lte(until))
	}

	if !filter.RecordedFrom().IsZero() {
		expressions = append(expressions, goqu.C(colRecordedAt).Gte(filter.RecordedFrom()))
	}

	if !filter.RecordedUntil().IsZero() {
		expressions = append(expressions, goqu.C(colRecordedAt).Lte(filter.RecordedUntil()))
	}

	if len(expressions) == 0 {
		return selectStmt
	}

	return selectStmt.Where(goqu.And(expressions...))
}

// quoteTableName quotes an optionally schema-qualified table name the way goqu does for DML,
// so "archive.records" becomes "archive"."records".
func quoteTableName(tableName string) string {
	parts := strings.Split(tableName, tableNameSeparator)
	for i, part := range parts {
		parts[i] = identifierQuote + part + identifierQuote
	}

	return strings.Join(parts, tableNameSeparator)
}

// unqualifiedTableName strips the schema, index names cannot be schema-qualified.
func unqualifiedTableName(tableName string) string {
	return tableName[strings.LastIndex(tableName, tableNameSeparator)+1:]
}
