package sheets

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/segregate/internal/model"
)

// MockWriter is a mock implementation of Publisher for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, t model.Table, generatedAt time.Time) (string, error)
	WriteCalls     []WriteCall
	LastTable      model.Table
	SpreadsheetID  string
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	GeneratedAt time.Time
	Error       error
	Table       model.Table
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		SpreadsheetID: "mock-spreadsheet",
		WriteCalls:    make([]WriteCall, 0),
	}
}

// Write implements the Publisher interface.
func (m *MockWriter) Write(ctx context.Context, t model.Table, generatedAt time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastTable = t

	id := m.SpreadsheetID
	var err error
	if m.WriteFunc != nil {
		id, err = m.WriteFunc(ctx, t, generatedAt)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Table:       t,
		GeneratedAt: generatedAt,
		Error:       err,
	})

	return id, err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return an error on every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, model.Table, time.Time) (string, error) {
		return "", err
	}
}
