package inits

import (
	"github.com/hashicorp/go-memdb"
)

const StudentTable = "student"

// NewDB creates the in-memory student store. The "id" index is the UTR, so a
// payment reference can only be registered once.
func NewDB() (*memdb.MemDB, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			StudentTable: {
				Name: StudentTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "UTR"},
						AllowMissing: false,
					},
					"record": {
						Name:         "record",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
						AllowMissing: false,
					},
					"time": {
						Name:         "time",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "ReceivedAt"},
						AllowMissing: false,
					},
					"expiry": {
						Name:         "expiry",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "Expiry"},
						AllowMissing: false,
					},
				},
			},
		},
	}

	return memdb.NewMemDB(schema)
}
