package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/internal/logger"
)

// bucketParsedNews holds one JSON document per article, keyed by its
// canonical location URL.
const bucketParsedNews = "parsednews"

// ErrNotFound is returned when no document exists for a location.
var ErrNotFound = errors.New("store: document not found")

// Store persists enriched news records in a bbolt file. Each upsert is
// an independent atomic transaction, so a failed run never corrupts
// documents written before the failure.
type Store struct {
	db  *bolt.DB
	log logger.Logger
}

// Open opens (or creates) the store file and ensures the news bucket
// exists.
func Open(path string, log logger.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is empty")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketParsedNews))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucketParsedNews, err)
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes the record keyed by its location, replacing any
// existing document wholesale.
func (s *Store) Upsert(rec domain.NewsRecord) error {
	loc := strings.TrimSpace(rec.Location)
	if loc == "" {
		return errors.New("record location is empty")
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", loc, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketParsedNews)).Put([]byte(loc), doc)
	})
	if err != nil {
		return fmt.Errorf("upsert %s: %w", loc, err)
	}
	return nil
}

// UpsertAll upserts records one by one and stops at the first failure.
// Documents written before the failure stay in place.
func (s *Store) UpsertAll(records []domain.NewsRecord) error {
	for i, rec := range records {
		if err := s.Upsert(rec); err != nil {
			return fmt.Errorf("record %d/%d: %w", i+1, len(records), err)
		}
	}

	s.log.InfoObj("records persisted", "store_upsert_all", map[string]any{
		"count": len(records),
	})
	return nil
}

// All returns every stored document.
func (s *Store) All() ([]domain.NewsRecord, error) {
	var out []domain.NewsRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketParsedNews)).ForEach(func(_, v []byte) error {
			var rec domain.NewsRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode stored record: %w", err)
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByCategory returns the stored documents with the given category.
func (s *Store) ByCategory(category string) ([]domain.NewsRecord, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}

	out := make([]domain.NewsRecord, 0, len(all))
	for _, rec := range all {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Categories returns the distinct categories across all documents,
// sorted for stable output.
func (s *Store) Categories() ([]string, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(all))
	var out []string
	for _, rec := range all {
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}

	sort.Strings(out)
	return out, nil
}

// UpdateSummary sets the summary of the document stored under the
// given location.
func (s *Store) UpdateSummary(location, summary string) error {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return errors.New("location is empty")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketParsedNews))

		raw := bucket.Get([]byte(loc))
		if raw == nil {
			return ErrNotFound
		}

		var rec domain.NewsRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode stored record %s: %w", loc, err)
		}

		rec.Summary = summary
		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", loc, err)
		}
		return bucket.Put([]byte(loc), doc)
	})
}
