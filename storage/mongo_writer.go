package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"immobiliare-scraper/utils"
)

// MongoConfig carries the document-store connection settings. Pool sizing and
// write timeout are external configuration, not part of the storage contract.
type MongoConfig struct {
	URI          string
	Database     string
	MaxPoolSize  uint64
	WriteTimeout time.Duration
}

// MongoStorage persists documents in one collection per document kind, with a
// unique index on the computed id field. Duplicate-key conditions are not
// errors: Append reports how many documents actually inserted. Clients are
// acquired and released per logical operation, so one broken connection can
// never silently corrupt later operations in the process. Concurrent writers
// on the same collection are coordinated by the unique index, not by
// in-process locking.
type MongoStorage[T Document] struct {
	cfg        MongoConfig
	collection string
	logger     *utils.Logger
}

// NewMongoStorage verifies connectivity and idempotently ensures the unique
// id index for the document kind's collection.
func NewMongoStorage[T Document](ctx context.Context, cfg MongoConfig, logger *utils.Logger) (*MongoStorage[T], error) {
	var zero T
	m := &MongoStorage[T]{cfg: cfg, collection: zero.Kind(), logger: logger}

	err := m.withCollection(ctx, "init", func(ctx context.Context, coll *mongo.Collection) error {
		if err := coll.Database().Client().Ping(ctx, nil); err != nil {
			return err
		}
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("[mongo] Storage ready: db %s, collection %s", cfg.Database, m.collection)
	return m, nil
}

// withCollection runs fn against a client scoped to this single operation.
func (m *MongoStorage[T]) withCollection(ctx context.Context, op string, fn func(context.Context, *mongo.Collection) error) error {
	if m.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.WriteTimeout)
		defer cancel()
	}

	opts := options.Client().ApplyURI(m.cfg.URI)
	if m.cfg.MaxPoolSize > 0 {
		opts = opts.SetMaxPoolSize(m.cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return newStorageError("mongo", op+": connect", err)
	}
	defer func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			m.logger.Warn("[mongo] Error closing client: %v", derr)
		}
	}()

	if err := fn(ctx, client.Database(m.cfg.Database).Collection(m.collection)); err != nil {
		return newStorageError("mongo", op, err)
	}
	return nil
}

// Append bulk-inserts the items unordered. On a partial failure caused only
// by duplicate keys, the count of documents that did insert is recovered from
// the bulk-write failure detail rather than failing the whole batch.
func (m *MongoStorage[T]) Append(ctx context.Context, items []T) (int, error) {
	if len(items) == 0 {
		m.logger.Warn("[mongo] No data to store")
		return 0, nil
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		doc, err := toBSONDocument(item)
		if err != nil {
			return 0, newStorageError("mongo", "encode document", err)
		}
		docs = append(docs, doc)
	}

	inserted := 0
	err := m.withCollection(ctx, "append", func(ctx context.Context, coll *mongo.Collection) error {
		res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		if err == nil {
			return nil
		}
		if mongo.IsDuplicateKeyError(err) {
			inserted = insertedFromBulkError(err, len(docs), inserted)
			m.logger.Info("[mongo] Inserted %d new documents, skipped %d duplicates in %s",
				inserted, len(docs)-inserted, m.collection)
			return nil
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	m.logger.Debug("[mongo] Appended %d/%d documents to %s", inserted, len(items), m.collection)
	return inserted, nil
}

// Upsert replaces each document keyed on id, inserting when absent. Used when
// overwrite semantics are required, e.g. re-scraping a stored listing.
func (m *MongoStorage[T]) Upsert(ctx context.Context, items []T) (int, error) {
	if len(items) == 0 {
		m.logger.Warn("[mongo] No data to store")
		return 0, nil
	}

	written := 0
	err := m.withCollection(ctx, "upsert", func(ctx context.Context, coll *mongo.Collection) error {
		for _, item := range items {
			doc, err := toBSONDocument(item)
			if err != nil {
				return err
			}
			res, err := coll.ReplaceOne(ctx,
				bson.M{"id": item.ID()}, doc,
				options.Replace().SetUpsert(true))
			if err != nil {
				return err
			}
			if wroteDocument(res) {
				written++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	m.logger.Debug("[mongo] Upserted %d/%d documents into %s", written, len(items), m.collection)
	return written, nil
}

// wroteDocument reports whether a replace changed or created the document.
// Replacing a document with identical content matches but writes nothing.
func wroteDocument(res *mongo.UpdateResult) bool {
	return res != nil && (res.UpsertedCount > 0 || res.ModifiedCount > 0)
}

// insertedFromBulkError recovers the successful-insert count from a partial
// bulk-write failure. The driver's result already lists inserted ids; the
// write-error count is the fallback when the result is unavailable.
func insertedFromBulkError(err error, total, fromResult int) int {
	if fromResult > 0 {
		return fromResult
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		n := total - len(bwe.WriteErrors)
		if n >= 0 {
			return n
		}
	}
	return 0
}

// toBSONDocument flattens a document to bson.M with the computed id
// materialized, so the unique index always has a value to key on.
func toBSONDocument[T Document](item T) (bson.M, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["id"] = item.ID()
	return doc, nil
}
