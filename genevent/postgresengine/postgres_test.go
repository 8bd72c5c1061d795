package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/genevent-go/genevent/attributes"
	"github.com/AntonStoeckl/genevent-go/genevent/codec"
	. "github.com/AntonStoeckl/genevent-go/genevent/postgresengine" //nolint:revive
	"github.com/AntonStoeckl/genevent-go/testutil/fixtures"
)

func givenRecord(t *testing.T, runID uuid.UUID, eventNumber int) codec.Record {
	t.Helper()

	bt := fixtures.NewBasicTree()
	bt.Event.SetEventNumber(eventNumber)

	record, err := codec.BuildRecord(runID, bt.Event, time.Unix(int64(eventNumber), 0).UTC())
	require.NoError(t, err)

	return record
}

func givenRow(t *testing.T, record codec.Record, sequenceNumber int64) []any {
	t.Helper()

	return []any{
		sequenceNumber,
		record.RunID.String(),
		int64(record.EventNumber),
		record.RecordedAt,
		record.PayloadJSON,
	}
}

func Test_FactoryFunctions_NewRecordStore_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (*RecordStore, error)
	}{
		{
			name: "NewRecordStoreFromPGXPool with nil",
			factoryFunc: func() (*RecordStore, error) {
				return NewRecordStoreFromPGXPool(nil)
			},
		},
		{
			name: "NewRecordStoreFromPGXPoolAndReplica with nil",
			factoryFunc: func() (*RecordStore, error) {
				return NewRecordStoreFromPGXPoolAndReplica(nil, nil)
			},
		},
		{
			name: "NewRecordStoreFromSQLDB with nil",
			factoryFunc: func() (*RecordStore, error) {
				return NewRecordStoreFromSQLDB(nil)
			},
		},
		{
			name: "NewRecordStoreFromSQLX with nil",
			factoryFunc: func() (*RecordStore, error) {
				return NewRecordStoreFromSQLX(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := tc.factoryFunc()

			// assert
			assert.ErrorIs(t, err, ErrNilDatabaseConnection)
		})
	}
}

func Test_WithTableName_When_Empty_ShouldFail(t *testing.T) {
	// act
	_, err := NewRecordStoreWithAdapter(&fakeDB{}, WithTableName(""))

	// assert
	assert.ErrorIs(t, err, ErrEmptyTableNameSupplied)
}

func Test_WithTableName_ShouldBeUsedInQueries(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{}, WithTableName("shower_records"))
	require.NoError(t, err)

	// act
	sqlQuery, buildErr := rs.BuildSelectQuery(BuildRecordFilter().MatchingAnyRecord())

	// assert
	assert.NoError(t, buildErr)
	assert.Equal(t, "shower_records", rs.TableName())
	assert.Contains(t, sqlQuery, `FROM "shower_records"`)
}

func Test_WithTableName_When_Invalid_ShouldFail(t *testing.T) {
	for _, tableName := range []string{`shower"records`, "a.b.c", ".records", "archive."} {
		t.Run(tableName, func(t *testing.T) {
			// act
			_, err := NewRecordStoreWithAdapter(&fakeDB{}, WithTableName(tableName))

			// assert
			assert.ErrorIs(t, err, ErrInvalidTableNameSupplied)
		})
	}
}

func Test_WithTableName_When_SchemaQualified_DDLAndDMLNameTheSameTable(t *testing.T) {
	// arrange
	db := &fakeDB{}
	rs, err := NewRecordStoreWithAdapter(db, WithTableName("archive.records"))
	require.NoError(t, err)

	// act
	createErr := rs.CreateTable(context.Background())
	selectQuery, selectErr := rs.BuildSelectQuery(BuildRecordFilter().MatchingAnyRecord())
	insertQuery, insertErr := rs.BuildInsertQuery(codec.Records{givenRecord(t, uuid.New(), 1)})

	// assert
	require.NoError(t, createErr)
	require.NoError(t, selectErr)
	require.NoError(t, insertErr)
	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0], `CREATE TABLE IF NOT EXISTS "archive"."records" (`)
	assert.Contains(t, db.statements[1], `CREATE INDEX IF NOT EXISTS "records_run_id_event_number_idx" ON "archive"."records" (`)
	assert.Contains(t, selectQuery, `FROM "archive"."records"`)
	assert.Contains(t, insertQuery, `INSERT INTO "archive"."records"`)
}

func Test_BuildSelectQuery_When_FilterIsEmpty(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{})
	require.NoError(t, err)

	// act
	sqlQuery, buildErr := rs.BuildSelectQuery(BuildRecordFilter().MatchingAnyRecord())

	// assert
	assert.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, `SELECT "sequence_number", run_id::text AS "run_id", "event_number", "recorded_at", "payload"`)
	assert.Contains(t, sqlQuery, `FROM "event_records"`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_BuildSelectQuery_When_FilterHasRunAndEventNumbers(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{})
	require.NoError(t, err)
	runID := uuid.New()
	filter := BuildRecordFilter().ForRun(runID).WithEventNumbersBetween(3, 7).Finalize()

	// act
	sqlQuery, buildErr := rs.BuildSelectQuery(filter)

	// assert
	assert.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, "WHERE")
	assert.Contains(t, sqlQuery, `'`+runID.String()+`'::uuid`)
	assert.Contains(t, sqlQuery, `"event_number" >= 3`)
	assert.Contains(t, sqlQuery, `"event_number" <= 7`)
	assert.NotContains(t, sqlQuery, `"recorded_at" >=`)
}

func Test_BuildSelectQuery_When_FilterHasRecordedAtRange(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{})
	require.NoError(t, err)
	filter := BuildRecordFilter().
		RecordedFrom(time.Unix(0, 0).UTC()).
		RecordedUntil(time.Unix(3600, 0).UTC()).
		Finalize()

	// act
	sqlQuery, buildErr := rs.BuildSelectQuery(filter)

	// assert
	assert.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, `"recorded_at" >=`)
	assert.Contains(t, sqlQuery, `"recorded_at" <=`)
	assert.NotContains(t, sqlQuery, `"event_number" >=`)
}

func Test_BuildInsertQuery_With_MultipleRecords(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{})
	require.NoError(t, err)
	runID := uuid.New()
	records := codec.Records{givenRecord(t, runID, 1), givenRecord(t, runID, 2)}

	// act
	sqlQuery, buildErr := rs.BuildInsertQuery(records)

	// assert
	assert.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, `INSERT INTO "event_records" ("run_id", "event_number", "recorded_at", "payload") VALUES`)
	assert.Contains(t, sqlQuery, `'`+runID.String()+`'::uuid, 1,`)
	assert.Contains(t, sqlQuery, `'`+runID.String()+`'::uuid, 2,`)
	assert.Contains(t, sqlQuery, "::jsonb")
}

func Test_CreateTable_ExecutesTableAndIndexStatements(t *testing.T) {
	// arrange
	db := &fakeDB{}
	rs, err := NewRecordStoreWithAdapter(db, WithTableName("shower_records"))
	require.NoError(t, err)

	// act
	createErr := rs.CreateTable(context.Background())

	// assert
	assert.NoError(t, createErr)
	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0], `CREATE TABLE IF NOT EXISTS "shower_records"`)
	assert.Contains(t, db.statements[0], "payload jsonb NOT NULL")
	assert.Contains(t, db.statements[1], `ON "shower_records" (run_id, event_number)`)
}

func Test_CreateTable_When_DatabaseFails(t *testing.T) {
	// arrange
	db := &fakeDB{execErr: errFakeDB}
	rs, err := NewRecordStoreWithAdapter(db)
	require.NoError(t, err)

	// act
	createErr := rs.CreateTable(context.Background())

	// assert
	assert.ErrorIs(t, createErr, ErrCreatingTableFailed)
	assert.ErrorIs(t, createErr, errFakeDB)
	assert.Len(t, db.statements, 1, "should stop after the first failing statement")
}

func Test_Append_InsertsAllRecordsInOneStatement(t *testing.T) {
	// arrange
	db := &fakeDB{}
	rs, err := NewRecordStoreWithAdapter(db)
	require.NoError(t, err)
	runID := uuid.New()

	// act
	appendErr := rs.Append(context.Background(), givenRecord(t, runID, 1), givenRecord(t, runID, 2), givenRecord(t, runID, 3))

	// assert
	assert.NoError(t, appendErr)
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "INSERT INTO")
}

func Test_Append_When_RecordIsInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		record codec.Record
	}{
		{name: "nil run id", record: codec.Record{EventNumber: 1, PayloadJSON: []byte(`{}`)}},
		{name: "empty payload", record: codec.Record{RunID: uuid.New(), EventNumber: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			db := &fakeDB{}
			rs, err := NewRecordStoreWithAdapter(db)
			require.NoError(t, err)

			// act
			appendErr := rs.Append(context.Background(), givenRecord(t, uuid.New(), 1), tc.record)

			// assert
			assert.ErrorIs(t, appendErr, ErrInvalidRecord)
			assert.Empty(t, db.statements, "nothing must be written")
		})
	}
}

func Test_Append_When_DatabaseFails(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{execErr: errFakeDB})
	require.NoError(t, err)

	// act
	appendErr := rs.Append(context.Background(), givenRecord(t, uuid.New(), 1))

	// assert
	assert.ErrorIs(t, appendErr, ErrAppendingRecordsFailed)
	assert.ErrorIs(t, appendErr, errFakeDB)
}

func Test_Append_When_FewerRowsAreAffected(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{useAffected: true, rowsAffected: 1})
	require.NoError(t, err)
	runID := uuid.New()

	// act
	appendErr := rs.Append(context.Background(), givenRecord(t, runID, 1), givenRecord(t, runID, 2))

	// assert
	assert.ErrorIs(t, appendErr, ErrAppendingRecordsFailed)
	assert.ErrorContains(t, appendErr, "1 of 2 rows inserted")
}

func Test_Query_ReturnsRecordsWithSequenceNumbers(t *testing.T) {
	// arrange
	runID := uuid.New()
	first := givenRecord(t, runID, 1)
	second := givenRecord(t, runID, 2)
	db := &fakeDB{rows: [][]any{givenRow(t, first, 11), givenRow(t, second, 12)}}
	rs, err := NewRecordStoreWithAdapter(db)
	require.NoError(t, err)

	// act
	records, queryErr := rs.Query(context.Background(), BuildRecordFilter().ForRun(runID).Finalize())

	// assert
	require.NoError(t, queryErr)
	require.Len(t, records, 2)
	assert.Equal(t, uint(11), records[0].SequenceNumber)
	assert.Equal(t, uint(12), records[1].SequenceNumber)
	assert.Equal(t, runID, records[0].RunID)
	assert.Equal(t, 2, records[1].EventNumber)
	assert.Equal(t, first.RecordedAt, records[0].RecordedAt)

	event, decodeErr := records[1].Event(attributes.NewRegistry())
	require.NoError(t, decodeErr)
	assert.Equal(t, 2, event.EventNumber())
	assert.Equal(t, 8, event.ParticleCount())
	assert.Equal(t, 4, event.VertexCount())
}

func Test_Query_When_NothingMatches(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{})
	require.NoError(t, err)

	// act
	records, queryErr := rs.Query(context.Background(), BuildRecordFilter().MatchingAnyRecord())

	// assert
	assert.NoError(t, queryErr)
	assert.Empty(t, records)
}

func Test_Query_When_DatabaseFails(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{queryErr: errFakeDB})
	require.NoError(t, err)

	// act
	_, queryErr := rs.Query(context.Background(), BuildRecordFilter().MatchingAnyRecord())

	// assert
	assert.ErrorIs(t, queryErr, ErrQueryingRecordsFailed)
	assert.ErrorIs(t, queryErr, errFakeDB)
}

func Test_Query_When_RowCannotBeScanned(t *testing.T) {
	// arrange
	rs, err := NewRecordStoreWithAdapter(&fakeDB{rows: [][]any{{int64(1), "too short"}}})
	require.NoError(t, err)

	// act
	_, queryErr := rs.Query(context.Background(), BuildRecordFilter().MatchingAnyRecord())

	// assert
	assert.ErrorIs(t, queryErr, ErrScanningDBRowFailed)
}

func Test_Query_When_StoredRowIsMalformed(t *testing.T) {
	testCases := []struct {
		name string
		row  []any
	}{
		{
			name: "invalid run id",
			row:  []any{int64(1), "not-a-uuid", int64(1), time.Unix(0, 0).UTC(), []byte(`{}`)},
		},
		{
			name: "invalid payload",
			row:  []any{int64(1), uuid.NewString(), int64(1), time.Unix(0, 0).UTC(), []byte(`{broken`)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			rs, err := NewRecordStoreWithAdapter(&fakeDB{rows: [][]any{tc.row}})
			require.NoError(t, err)

			// act
			_, queryErr := rs.Query(context.Background(), BuildRecordFilter().MatchingAnyRecord())

			// assert
			assert.ErrorIs(t, queryErr, ErrBuildingRecordFailed)
		})
	}
}
