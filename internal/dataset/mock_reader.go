package dataset

import "context"

// MockReader is a test double for SourceReader.
// It allows tests to provide predefined tables without touching the filesystem.
type MockReader struct {
	Table *Table
	Error error
}

// NewMockReader creates a new MockReader with the given data.
func NewMockReader(table *Table, err error) *MockReader {
	return &MockReader{Table: table, Error: err}
}

// ReadTable returns the predefined table or error.
func (m *MockReader) ReadTable(_ context.Context) (*Table, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Table.Clone(), nil
}

// Compile-time interface conformance check.
var _ SourceReader = (*MockReader)(nil)
