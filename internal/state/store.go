// Package state is the durable client-side state store: reading progress,
// per-view UI preferences, and liked-id sets. Persistence here is an
// optimization, never a correctness requirement, so every operation is
// fail-soft — a missing file, a locked database, or a corrupt value degrades
// to "no saved state" and nothing ever panics or surfaces an error to the UI.
package state

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names, versioned so a future format change can migrate or simply
// start a fresh namespace.
var (
	bucketProgress = []byte("progress.v1")
	bucketPrefs    = []byte("prefs.v1")
	bucketLikes    = []byte("likes.v1")
)

// Store persists small JSON values in BoltDB with an in-memory cache promoted
// on access. When the database cannot be opened (another running instance
// holds the file lock, unwritable disk) the store runs memory-only.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string][]byte
}

// Open opens (or creates) the store under dir. It never fails: any problem is
// logged and the store falls back to memory-only mode.
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{logger: logger, cache: make(map[string][]byte)}

	if dir == "" {
		return s
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("state dir unavailable, running memory-only", "error", err)
		return s
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		logger.Warn("state db unavailable, running memory-only", "error", err)
		return s
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProgress, bucketPrefs, bucketLikes} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("state buckets unavailable, running memory-only", "error", err)
		db.Close()
		return s
	}

	s.db = db
	return s
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// get reads and decodes the value at key. Returns false on a missing key, a
// storage failure, or undecodable JSON — never an error.
func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	// Promote to the memory cache.
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

// put encodes and writes the value at key. Write failures are swallowed after
// logging; the memory cache keeps the value for the rest of the session.
func (s *Store) put(bucket []byte, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("state encode failed", "key", key, "error", err)
		return
	}

	cacheKey := string(bucket) + ":" + key
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Debug("state write failed", "key", key, "error", err)
	}
}

// deletePrefix removes every key under prefix in the bucket.
func (s *Store) deletePrefix(bucket []byte, prefix string) {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset wipes every namespace. Used on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProgress, bucketPrefs, bucketLikes} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
