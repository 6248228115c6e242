package huffman

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrTableNotFound is returned when a referenced code table is not in the
// store.
var ErrTableNotFound = errors.New("code table not found")

// TableStore keeps recently used code tables keyed by fingerprint, so that
// encoded blocks can reference a table instead of carrying it. The least
// recently used table is evicted once the store is full.
//
// A TableStore is safe for concurrent use. Tables returned by Get are
// shared and must not be modified.
type TableStore struct {
	tables *lru.Cache[uint32, *CodeTable]
}

// NewTableStore creates a store holding at most size tables.
func NewTableStore(size int) (*TableStore, error) {
	tables, err := lru.New[uint32, *CodeTable](size)
	if err != nil {
		return nil, fmt.Errorf("table store: %w", err)
	}
	return &TableStore{tables: tables}, nil
}

// Put stores a copy of table and returns its fingerprint.
func (s *TableStore) Put(table *CodeTable) (uint32, error) {
	fp, err := table.Fingerprint()
	if err != nil {
		return 0, err
	}
	if !s.tables.Contains(fp) {
		s.tables.Add(fp, table.Clone())
	}
	return fp, nil
}

// Get returns the table with the given fingerprint.
func (s *TableStore) Get(fingerprint uint32) (*CodeTable, bool) {
	return s.tables.Get(fingerprint)
}

// Len returns the number of stored tables.
func (s *TableStore) Len() int {
	return s.tables.Len()
}
