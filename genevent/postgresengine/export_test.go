package postgresengine

import (
	"github.com/AntonStoeckl/genevent-go/genevent/codec"
	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine/internal/adapters"
)

// NewRecordStoreWithAdapter lets tests run the store against a fake database.
func NewRecordStoreWithAdapter(db adapters.DBAdapter, options ...Option) (*RecordStore, error) {
	return newRecordStore(db, options...)
}

func (rs *RecordStore) BuildSelectQuery(filter RecordFilter) (string, error) {
	return rs.buildSelectQuery(filter)
}

func (rs *RecordStore) BuildInsertQuery(records codec.Records) (string, error) {
	return rs.buildInsertQuery(records)
}
