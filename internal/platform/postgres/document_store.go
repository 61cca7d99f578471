package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dailynote/internal/platform/logger"
	"github.com/phrazzld/dailynote/internal/store"
)

const (
	getDocumentQuery = `
		SELECT fields, created_at
		FROM documents
		WHERE collection = $1 AND key = $2`

	setDocumentQuery = `
		INSERT INTO documents (collection, key, fields)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, key) DO UPDATE
		SET fields = EXCLUDED.fields,
		    unique_field = NULL,
		    unique_value = NULL,
		    created_at = now()`

	createDocumentQuery = `
		INSERT INTO documents (collection, key, fields)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, key) DO NOTHING`

	addDocumentQuery = `
		INSERT INTO documents (collection, key, fields)
		VALUES ($1, $2, $3::jsonb)`

	addUniqueDocumentQuery = `
		INSERT INTO documents (collection, key, fields, unique_field, unique_value)
		VALUES ($1, $2, $3::jsonb, $4, $5)
		ON CONFLICT (collection, unique_field, unique_value) WHERE unique_value IS NOT NULL
		DO NOTHING`

	queryEqualsQuery = `
		SELECT key, fields, created_at
		FROM documents
		WHERE collection = $1 AND fields -> $2 = $3::jsonb
		ORDER BY seq`
)

// DocumentStore implements store.DocumentStore on PostgreSQL.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a new PostgreSQL document store.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_document_store")),
	}
}

// Get implements store.DocumentStore.Get
func (s *DocumentStore) Get(ctx context.Context, collection, key string) (*store.Document, error) {
	var raw []byte
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, getDocumentQuery, collection, key).Scan(&raw, &createdAt)
	if err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrDocumentNotFound
		}
		return nil, store.NewStoreError(collection, "get", "failed to read document", err)
	}

	return decodeDocument(collection, key, raw, createdAt)
}

// Set implements store.DocumentStore.Set
func (s *DocumentStore) Set(ctx context.Context, collection, key string, fields store.Fields) error {
	payload, err := encodeFields(fields)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, setDocumentQuery, collection, key, payload); err != nil {
		return store.NewStoreError(collection, "set", "failed to write document", MapError(err))
	}
	return nil
}

// Create implements store.DocumentStore.Create
func (s *DocumentStore) Create(ctx context.Context, collection, key string, fields store.Fields) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := encodeFields(fields)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, createDocumentQuery, collection, key, payload)
	if err != nil {
		return store.NewStoreError(collection, "create", "failed to insert document", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return store.NewStoreError(collection, "create", "failed to insert document", err)
	}
	if n == 0 {
		log.Debug("document key already exists",
			slog.String("collection", collection),
			slog.String("key", key))
		return store.ErrKeyExists
	}
	return nil
}

// Add implements store.DocumentStore.Add
func (s *DocumentStore) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	payload, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	key := uuid.New().String()
	if _, err := s.db.ExecContext(ctx, addDocumentQuery, collection, key, payload); err != nil {
		return "", store.NewStoreError(collection, "add", "failed to insert document", MapError(err))
	}
	return key, nil
}

// AddUnique implements store.DocumentStore.AddUnique. The partial unique
// index makes the duplicate check and the insert a single statement.
func (s *DocumentStore) AddUnique(
	ctx context.Context,
	collection, uniqueField string,
	fields store.Fields,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateName(uniqueField); err != nil {
		return "", err
	}
	value, err := store.UniqueValue(fields, uniqueField)
	if err != nil {
		return "", err
	}
	payload, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	key := uuid.New().String()
	result, err := s.db.ExecContext(ctx, addUniqueDocumentQuery, collection, key, payload, uniqueField, value)
	if err != nil {
		err = MapError(err)
		if store.IsDuplicateError(err) {
			return "", store.ErrUniqueValueExists
		}
		return "", store.NewStoreError(collection, "add_unique", "failed to insert document", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return "", store.NewStoreError(collection, "add_unique", "failed to insert document", err)
	}
	if n == 0 {
		log.Debug("unique field value already exists",
			slog.String("collection", collection),
			slog.String("field", uniqueField))
		return "", store.ErrUniqueValueExists
	}
	return key, nil
}

// QueryEquals implements store.DocumentStore.QueryEquals
func (s *DocumentStore) QueryEquals(
	ctx context.Context,
	collection, field string,
	value any,
) ([]*store.Document, error) {
	if err := store.ValidateName(field); err != nil {
		return nil, err
	}
	want, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: query value is not JSON encodable: %v", store.ErrInvalidEntity, err)
	}

	rows, err := s.db.QueryContext(ctx, queryEqualsQuery, collection, field, string(want))
	if err != nil {
		return nil, store.NewStoreError(collection, "query", "failed to query documents", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	docs := make([]*store.Document, 0)
	for rows.Next() {
		var key string
		var raw []byte
		var createdAt time.Time
		if err := rows.Scan(&key, &raw, &createdAt); err != nil {
			return nil, store.NewStoreError(collection, "query", "failed to scan document", err)
		}
		doc, err := decodeDocument(collection, key, raw, createdAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(collection, "query", "failed to iterate documents", MapError(err))
	}
	return docs, nil
}

func encodeFields(fields store.Fields) (string, error) {
	if fields == nil {
		fields = store.Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: fields are not JSON encodable: %v", store.ErrInvalidEntity, err)
	}
	return string(data), nil
}

func decodeDocument(collection, key string, raw []byte, createdAt time.Time) (*store.Document, error) {
	fields := store.Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, store.NewStoreError(collection, "decode", "stored fields are not a JSON object", err)
	}
	return &store.Document{
		Collection: collection,
		Key:        key,
		Fields:     fields,
		CreatedAt:  createdAt.UTC(),
	}, nil
}
