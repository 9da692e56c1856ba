// Package store persists diagrams. A Postgres backend (pgx stdlib driver)
// is used when a DSN is configured; otherwise records live in a JSON file,
// which keeps local development dependency-free.
package store

import (
	"database/sql"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Record

	schemaOnce sync.Once
	schemaErr  error

	readCache *lru.Cache[string, Record]
}

// New creates a file-backed store rooted at path.
func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Record),
	}
}

// NewPostgres connects to Postgres and fronts reads with an LRU cache.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Record](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:        db,
		readCache: cache,
	}, nil
}

// NewFromEnv prefers Postgres via DIAGRAM_STORE_PG_DSN and falls back to the
// JSON file at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("DIAGRAM_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Get(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	if s.db != nil {
		if s.readCache != nil {
			if cached, ok := s.readCache.Get(id); ok {
				return cached, true
			}
		}
		rec, ok := s.getDB(id)
		if ok && s.readCache != nil {
			s.readCache.Add(id, rec)
		}
		return rec, ok
	}
	return s.getFile(id)
}

func (s *Store) Put(rec Record) error {
	if s == nil {
		return nil
	}
	if s.db != nil {
		err := s.putDB(rec)
		if err == nil && s.readCache != nil {
			s.readCache.Remove(strings.TrimSpace(rec.ID))
		}
		return err
	}
	s.putFile(rec)
	return nil
}

func (s *Store) List() []Record {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.listDB()
	}
	return s.listFile()
}

func (s *Store) Delete(id string) bool {
	if s == nil {
		return false
	}
	if s.db != nil {
		ok := s.deleteDB(id)
		if ok && s.readCache != nil {
			s.readCache.Remove(strings.TrimSpace(id))
		}
		return ok
	}
	return s.deleteFile(id)
}

// Save flushes the file backend to disk; it is a no-op on Postgres.
func (s *Store) Save() {
	if s == nil || s.db != nil {
		return
	}
	s.saveFile()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
