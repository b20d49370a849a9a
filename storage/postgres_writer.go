package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"immobiliare-scraper/utils"
)

// PostgresStorage persists documents as JSONB rows in one table per document
// kind, keyed on the computed id. Re-inserting an existing id is a no-op, so
// Append reports only the rows that were actually new.
type PostgresStorage[T Document] struct {
	db     *sql.DB
	table  string
	logger *utils.Logger
}

// NewPostgresStorage opens a connection to PostgreSQL, runs schema migrations
// for the document kind's table, and returns a ready-to-use storage.
func NewPostgresStorage[T Document](dsn string, logger *utils.Logger) (*PostgresStorage[T], error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, newStorageError("postgres", "open", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, newStorageError("postgres", "ping failed after retries", err)
	}

	var zero T
	ps := &PostgresStorage[T]{db: db, table: zero.Kind(), logger: logger}
	if err := ps.migrate(); err != nil {
		return nil, newStorageError("postgres", "migrate", err)
	}

	logger.Info("[postgres] Storage ready: table %s", ps.table)
	return ps, nil
}

func (ps *PostgresStorage[T]) migrate() error {
	_, err := ps.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT        PRIMARY KEY,
			doc        JSONB       NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`, ps.table))
	return err
}

// Append batch-inserts the documents, skipping ids already present. The
// returned count comes from the rows the insert actually touched.
func (ps *PostgresStorage[T]) Append(ctx context.Context, items []T) (int, error) {
	if len(items) == 0 {
		ps.logger.Warn("[postgres] No data to store")
		return 0, nil
	}

	const batchSize = 50
	inserted := 0
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		n, err := ps.insertBatch(ctx, items[i:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	ps.logger.Debug("[postgres] Appended %d/%d documents to %s", inserted, len(items), ps.table)
	return inserted, nil
}

func (ps *PostgresStorage[T]) insertBatch(ctx context.Context, batch []T) (int, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*2)

	for idx, item := range batch {
		doc, err := json.Marshal(item)
		if err != nil {
			return 0, newStorageError("postgres", "encode document", err)
		}
		base := idx * 2
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d)", base+1, base+2))
		valueArgs = append(valueArgs, item.ID(), doc)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, ps.table, strings.Join(valueStrings, ","))

	res, err := ps.db.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return 0, newStorageError("postgres", "insert batch", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, newStorageError("postgres", "rows affected", err)
	}
	return int(affected), nil
}

func (ps *PostgresStorage[T]) Close() error {
	return ps.db.Close()
}
