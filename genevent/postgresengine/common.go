package postgresengine

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrInvalidTableNameSupplied = errors.New("invalid table name supplied")
var ErrInvalidRecord = errors.New("record without run id or payload supplied")
var ErrBuildingQueryFailed = errors.New("building the sql query failed")
var ErrCreatingTableFailed = errors.New("creating the records table failed")
var ErrQueryingRecordsFailed = errors.New("querying records failed")
var ErrScanningDBRowFailed = errors.New("scanning a database row failed")
var ErrBuildingRecordFailed = errors.New("building a record from a database row failed")
var ErrAppendingRecordsFailed = errors.New("appending records failed")
var ErrGettingRowsAffectedFailed = errors.New("getting the rows affected count failed")
