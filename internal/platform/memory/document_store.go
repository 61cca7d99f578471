// Package memory provides an in-process implementation of store.DocumentStore.
// It backs dry runs (database.driver = memory) and unit tests. Documents are
// normalised through JSON on write so reads behave like the SQL backends.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dailynote/internal/platform/logger"
	"github.com/phrazzld/dailynote/internal/store"
)

type record struct {
	seq    int64
	doc    store.Document
	unique string // empty unless written by AddUnique
}

// DocumentStore keeps documents in memory, grouped by collection.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]map[string]*record
	seq         int64
	now         func() time.Time
	logger      *slog.Logger
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates an empty in-memory document store.
// If logger is nil, a default logger will be used.
func NewDocumentStore(logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{
		collections: make(map[string]map[string]*record),
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger.With(slog.String("component", "memory_document_store")),
	}
}

// SetClock replaces the timestamp source used for CreatedAt.
func (s *DocumentStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get implements store.DocumentStore.Get
func (s *DocumentStore) Get(ctx context.Context, collection, key string) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][key]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return copyDocument(rec.doc), nil
}

// Set implements store.DocumentStore.Set
func (s *DocumentStore) Set(ctx context.Context, collection, key string, fields store.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := normalize(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.collections[collection][key]; ok {
		existing.doc.Fields = normalized
		existing.doc.CreatedAt = s.now()
		existing.unique = ""
		return nil
	}
	s.insertLocked(collection, key, normalized, "")
	return nil
}

// Create implements store.DocumentStore.Create
func (s *DocumentStore) Create(ctx context.Context, collection, key string, fields store.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := normalize(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][key]; ok {
		s.logger.DebugContext(ctx, "document key already exists",
			slog.String("collection", collection),
			slog.String("key", key))
		return store.ErrKeyExists
	}
	s.insertLocked(collection, key, normalized, "")
	return nil
}

// Add implements store.DocumentStore.Add
func (s *DocumentStore) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized, err := normalize(fields)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.New().String()
	s.insertLocked(collection, key, normalized, "")
	return key, nil
}

// AddUnique implements store.DocumentStore.AddUnique
func (s *DocumentStore) AddUnique(
	ctx context.Context,
	collection, uniqueField string,
	fields store.Fields,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, err := store.UniqueValue(fields, uniqueField)
	if err != nil {
		return "", err
	}
	normalized, err := normalize(fields)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uniqueKey := uniqueField + "\x00" + value
	for _, rec := range s.collections[collection] {
		if rec.unique == uniqueKey {
			log.Debug("unique field value already exists",
				slog.String("collection", collection),
				slog.String("field", uniqueField))
			return "", store.ErrUniqueValueExists
		}
	}

	key := uuid.New().String()
	s.insertLocked(collection, key, normalized, uniqueKey)
	return key, nil
}

// QueryEquals implements store.DocumentStore.QueryEquals
func (s *DocumentStore) QueryEquals(
	ctx context.Context,
	collection, field string,
	value any,
) ([]*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*record
	for _, rec := range s.collections[collection] {
		got, ok := rec.doc.Fields[field]
		if ok && reflect.DeepEqual(got, want) {
			matches = append(matches, rec)
		}
	}
	sortBySeq(matches)

	docs := make([]*store.Document, 0, len(matches))
	for _, rec := range matches {
		docs = append(docs, copyDocument(rec.doc))
	}
	return docs, nil
}

// All returns every document in the collection in insertion order.
func (s *DocumentStore) All(collection string) []*store.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]*record, 0, len(s.collections[collection]))
	for _, rec := range s.collections[collection] {
		recs = append(recs, rec)
	}
	sortBySeq(recs)

	docs := make([]*store.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, copyDocument(rec.doc))
	}
	return docs
}

func (s *DocumentStore) insertLocked(collection, key string, fields store.Fields, unique string) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*record)
		s.collections[collection] = docs
	}
	s.seq++
	docs[key] = &record{
		seq: s.seq,
		doc: store.Document{
			Collection: collection,
			Key:        key,
			Fields:     fields,
			CreatedAt:  s.now(),
		},
		unique: unique,
	}
}

func sortBySeq(recs []*record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
}

func normalize(fields store.Fields) (store.Fields, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: fields are not JSON encodable: %v", store.ErrInvalidEntity, err)
	}
	out := store.Fields{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return out, nil
}

func normalizeValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: query value is not JSON encodable: %v", store.ErrInvalidEntity, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return out, nil
}

func copyDocument(doc store.Document) *store.Document {
	fields, _ := normalize(doc.Fields)
	doc.Fields = fields
	return &doc
}
