package dataset

import "context"

// SourceReader defines the interface for acquiring a customer table.
// This abstraction allows for easier testing and alternative sources
// (files on disk, uploaded payloads, the built-in sample).
type SourceReader interface {
	// ReadTable loads the table. Implementations return a fresh copy on
	// every call; callers own the result.
	ReadTable(ctx context.Context) (*Table, error)
}

// Compile-time interface conformance checks.
var (
	_ SourceReader = (*CSVReader)(nil)
	_ SourceReader = (*StaticReader)(nil)
)
