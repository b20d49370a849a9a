package storage

import (
	"context"
	"fmt"
)

// Document is the contract every storable type satisfies: a stable identity
// key plus a flat rendering for the delimited-file sink. The identity key is
// what storage backends deduplicate on.
type Document interface {
	// ID returns the stable deduplication key ("{source}:{sourceId}").
	ID() string
	// Kind names the logical collection/table/file the type is stored in.
	Kind() string
	// CSVHeader returns the ordered field names, computed fields included.
	CSVHeader() []string
	// CSVRow renders the document as one row, aligned with CSVHeader.
	CSVRow() []string
}

// Storage is the generic append-only persistence contract. Append returns the
// number of items actually newly persisted: duplicate identity keys are
// counted out, never raised as errors. Unrecoverable I/O or connection
// failures surface as *StorageError.
type Storage[T Document] interface {
	Append(ctx context.Context, items []T) (int, error)
}

// StorageError reports an unrecoverable storage failure. Partial bulk-write
// failures the backend can characterize (duplicate keys) are accounted for in
// the Append count instead of being raised.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func newStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}
