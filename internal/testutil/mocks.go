package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/tablerail/tablerail/internal/errors"
	"github.com/tablerail/tablerail/internal/store"
)

// MemoryStore implements store.Store for testing with error injection and
// call counting
type MemoryStore struct {
	mu sync.RWMutex

	tables     map[string][]store.Row
	errs       map[string]error
	callCounts map[string]int
	nextID     int
}

// MemoryOption is a functional option for configuring MemoryStore
type MemoryOption func(*MemoryStore)

// WithTable seeds the rows of one table
func WithTable(name string, rows []store.Row) MemoryOption {
	return func(m *MemoryStore) {
		m.tables[name] = rows
	}
}

// WithError injects an error for a specific operation key. Keys are either
// an operation name ("SelectAll") or operation.table ("SelectAll.students").
func WithError(key string, err error) MemoryOption {
	return func(m *MemoryStore) {
		m.errs[key] = err
	}
}

// NewMemoryStore creates a new in-memory store with the given options
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		tables:     make(map[string][]store.Row),
		errs:       make(map[string]error),
		callCounts: make(map[string]int),
		nextID:     1000,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *MemoryStore) record(op, table string) error {
	m.callCounts[op]++
	m.callCounts[op+"."+table]++

	if err, exists := m.errs[op+"."+table]; exists {
		return err
	}

	if err, exists := m.errs[op]; exists {
		return err
	}

	return nil
}

// CallCount returns how many times an operation key was invoked
func (m *MemoryStore) CallCount(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.callCounts[key]
}

// SelectAll returns a copy of the seeded rows for a table
func (m *MemoryStore) SelectAll(_ context.Context, table string) ([]store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("SelectAll", table); err != nil {
		return nil, err
	}

	rows := make([]store.Row, len(m.tables[table]))
	copy(rows, m.tables[table])

	return rows, nil
}

// SelectByID returns the seeded row with a matching stringified id
func (m *MemoryStore) SelectByID(_ context.Context, table string, id any) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("SelectByID", table); err != nil {
		return nil, err
	}

	for _, row := range m.tables[table] {
		if row.IDString() == fmt.Sprint(id) {
			return row, nil
		}
	}

	return nil, errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
}

// Insert assigns an id and appends the row
func (m *MemoryStore) Insert(_ context.Context, table string, row store.Row) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Insert", table); err != nil {
		return nil, err
	}

	stored := make(store.Row, len(row)+1)
	for k, v := range row {
		stored[k] = v
	}

	if stored["id"] == nil {
		stored["id"] = m.nextID
		m.nextID++
	}

	m.tables[table] = append(m.tables[table], stored)

	return stored, nil
}

// UpdateByID patches the row with a matching stringified id
func (m *MemoryStore) UpdateByID(_ context.Context, table string, id any, patch store.Row) (store.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("UpdateByID", table); err != nil {
		return nil, err
	}

	for i, row := range m.tables[table] {
		if row.IDString() != fmt.Sprint(id) {
			continue
		}

		updated := make(store.Row, len(row))
		for k, v := range row {
			updated[k] = v
		}

		for k, v := range patch {
			if k == "id" {
				continue
			}

			updated[k] = v
		}

		m.tables[table][i] = updated

		return updated, nil
	}

	return nil, errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
}

// DeleteByID removes the row with a matching stringified id
func (m *MemoryStore) DeleteByID(_ context.Context, table string, id any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("DeleteByID", table); err != nil {
		return err
	}

	rows := m.tables[table]
	for i, row := range rows {
		if row.IDString() == fmt.Sprint(id) {
			m.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}

	return errors.Newf(errors.ErrTypeNotFound, "%s: no row with id %v", table, id)
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() {}
