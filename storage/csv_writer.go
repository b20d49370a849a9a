package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"immobiliare-scraper/utils"
)

// Delimiter used by the flat-file sink. Extracted text folds commas and
// semicolons away, so the separator never collides with cell content.
const csvDelimiter = ';'

// CSVStorage writes documents to one delimited file per construction. The
// file name carries the document kind and a session timestamp; the header row
// (computed id field included) is written exactly once, at construction. The
// flat-file sink does not deduplicate: repeated appends of the same logical
// id produce duplicate rows, and the downstream consumer is expected to
// deduplicate. Safe for concurrent use.
type CSVStorage[T Document] struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
	logger *utils.Logger
}

// NewCSVStorage creates the session file under dir and writes the header row.
// Intermediate directories are created automatically.
func NewCSVStorage[T Document](dir string, logger *utils.Logger) (*CSVStorage[T], error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, newStorageError("csv", "create output dir", err)
	}

	var zero T
	name := fmt.Sprintf("%s_%s.csv", zero.Kind(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, newStorageError("csv", fmt.Sprintf("create file %q", path), err)
	}

	w := csv.NewWriter(f)
	w.Comma = csvDelimiter

	if err := w.Write(zero.CSVHeader()); err != nil {
		_ = f.Close()
		return nil, newStorageError("csv", "write header", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, newStorageError("csv", "flush header", err)
	}

	logger.Info("[csv] Session file created: %s", path)
	return &CSVStorage[T]{path: path, file: f, writer: w, logger: logger}, nil
}

// Path returns the session file location.
func (c *CSVStorage[T]) Path() string { return c.path }

// Append writes one row per item and reports every item as newly persisted.
func (c *CSVStorage[T]) Append(ctx context.Context, items []T) (int, error) {
	if len(items) == 0 {
		c.logger.Warn("[csv] No data to store")
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, newStorageError("csv", "append", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		if err := c.writer.Write(item.CSVRow()); err != nil {
			return 0, newStorageError("csv", "write row", err)
		}
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return 0, newStorageError("csv", "flush", err)
	}

	c.logger.Debug("[csv] Appended %d rows to %s", len(items), c.path)
	return len(items), nil
}

// Close flushes and closes the underlying file.
func (c *CSVStorage[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}
