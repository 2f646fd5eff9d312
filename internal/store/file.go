package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"nundu/internal/models"
)

var collectionRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// FileStore keeps each collection in <dir>/<collection>.json as a
// pretty-printed JSON array.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: abs}, nil
}

func (s *FileStore) List(ctx context.Context, collection string) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(collection)
}

func (s *FileStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	records, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Put(ctx context.Context, collection string, rec models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := rec.ID()
	if id == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(collection)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range records {
		if existing.ID() == id {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return s.write(collection, records)
}

func (s *FileStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(collection)
	if err != nil {
		return err
	}
	kept := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID() != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return ErrNotFound
	}
	return s.write(collection, kept)
}

func (s *FileStore) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 3)
	for _, entity := range models.Entities() {
		records, err := s.List(ctx, entity.Name)
		if err != nil {
			return nil, err
		}
		counts[entity.Name] = len(records)
	}
	return counts, nil
}

func (s *FileStore) Location() string {
	return s.dir
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(collection string) (string, error) {
	if !collectionRegex.MatchString(collection) {
		return "", fmt.Errorf("invalid collection %q", collection)
	}
	return filepath.Join(s.dir, collection+".json"), nil
}

// read loads a collection; a missing file is an empty collection.
func (s *FileStore) read(collection string) ([]models.Record, error) {
	path, err := s.path(collection)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Record{}, nil
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Default().Error("read collection", "component", "store", "path", path, "error", err)
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// write replaces the collection file atomically.
func (s *FileStore) write(collection string, records []models.Record) error {
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+collection+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
