package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nundu/internal/models"
	"nundu/internal/sanitize"
	"nundu/internal/store"
)

// RecordService sanitizes input, applies defaults and persists records.
type RecordService struct {
	store store.RecordStore
	now   func() time.Time
}

// NewRecordService constructs a RecordService.
func NewRecordService(recordStore store.RecordStore) *RecordService {
	return &RecordService{store: recordStore, now: time.Now}
}

// Create validates input against the entity's full schema and stores it
// under a fresh id.
func (s *RecordService) Create(ctx context.Context, entity models.Entity, input map[string]any) (models.Record, error) {
	schema, err := sanitize.SchemaFor(entity.Name)
	if err != nil {
		return nil, err
	}

	result := sanitize.Sanitize(input, schema)
	if !result.Accepted() {
		return nil, validationFailed(result.Errors)
	}

	rec := models.Record{}
	rec.Merge(result.Data)
	entity.ApplyDefaults(rec)
	rec["id"] = store.NewID()
	rec["createdAt"] = models.FormatTimestamp(s.now())

	if err := s.store.Put(ctx, entity.Name, rec); err != nil {
		return nil, storeFailure(fmt.Errorf("create %s: %w", strings.ToLower(entity.Label), err))
	}
	return rec, nil
}

// Get returns a record by id.
func (s *RecordService) Get(ctx context.Context, entity models.Entity, id string) (models.Record, error) {
	rec, err := s.store.Get(ctx, entity.Name, id)
	if err != nil {
		return nil, s.lookupError(entity, err)
	}
	return rec, nil
}

// List returns the records matching query, in insertion order.
func (s *RecordService) List(ctx context.Context, entity models.Entity, query listQuery) ([]models.Record, error) {
	records, err := s.store.List(ctx, entity.Name)
	if err != nil {
		return nil, storeFailure(err)
	}
	return query.apply(records), nil
}

// Update sanitizes only the fields present in input and merges them into the
// stored record. Fields that were not sent keep their values.
func (s *RecordService) Update(ctx context.Context, entity models.Entity, id string, input map[string]any) (models.Record, error) {
	schema, err := sanitize.SchemaFor(entity.Name)
	if err != nil {
		return nil, err
	}

	sent := make([]string, 0, len(input))
	for key := range input {
		sent = append(sent, key)
	}
	result := sanitize.Sanitize(input, schema.Pick(sent...))
	if !result.Accepted() {
		return nil, validationFailed(result.Errors)
	}

	existing, err := s.store.Get(ctx, entity.Name, id)
	if err != nil {
		return nil, s.lookupError(entity, err)
	}

	rec := existing.Clone()
	rec.Merge(result.Data)
	rec["updatedAt"] = models.FormatTimestamp(s.now())

	if err := s.store.Put(ctx, entity.Name, rec); err != nil {
		return nil, storeFailure(fmt.Errorf("update %s %s: %w", strings.ToLower(entity.Label), id, err))
	}
	return rec, nil
}

// Delete removes a record by id.
func (s *RecordService) Delete(ctx context.Context, entity models.Entity, id string) error {
	if err := s.store.Delete(ctx, entity.Name, id); err != nil {
		return s.lookupError(entity, err)
	}
	return nil
}

func (s *RecordService) lookupError(entity models.Entity, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundCode(fmt.Errorf("%s not found", entity.Label), notFoundCodeFor(entity.Name))
	}
	return storeFailure(err)
}
