package testutil

import (
	"fmt"
	"sort"
	"sync"

	"voice-renamer/internal/app/model"
	"voice-renamer/internal/app/repository"
)

// MockRenameDAO is an in-memory RenameDAO
type MockRenameDAO struct {
	mu      sync.Mutex
	records []model.RenameRecord
	closed  bool

	// RecordErr, when set, is returned by RecordRename
	RecordErr error
}

func NewMockRenameDAO() *MockRenameDAO {
	return &MockRenameDAO{}
}

func (m *MockRenameDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockRenameDAO) RecordRename(record model.RenameRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, fmt.Errorf("dao is closed")
	}
	if m.RecordErr != nil {
		return 0, m.RecordErr
	}
	record.ID = len(m.records) + 1
	m.records = append(m.records, record)
	return int64(record.ID), nil
}

func (m *MockRenameDAO) GetByRun(runID string) ([]model.RenameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.RenameRecord
	for _, r := range m.records {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRenameDAO) GetRecent(limit int) ([]model.RenameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.RenameRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Records returns everything recorded so far, in insertion order
func (m *MockRenameDAO) Records() []model.RenameRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.RenameRecord(nil), m.records...)
}

// IsClosed reports whether Close was called
func (m *MockRenameDAO) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ repository.RenameDAO = (*MockRenameDAO)(nil)
