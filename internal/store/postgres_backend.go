package store

import (
	"encoding/json"
	"strings"

	"archcanvas/internal/diagram"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS diagrams (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT 'Untitled diagram',
  description TEXT NOT NULL DEFAULT '',
  payload JSONB NOT NULL DEFAULT '{}',
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_diagrams_updated_at ON diagrams (updated_at DESC);
`)
	})
	return s.schemaErr
}

func (s *Store) getDB(id string) (Record, bool) {
	if err := s.ensureSchema(); err != nil {
		return Record{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, false
	}
	row := s.db.QueryRow(`SELECT id, title, description, payload, created_at, updated_at
FROM diagrams WHERE id = $1`, id)

	var rec Record
	var payload []byte
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &payload, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, false
	}
	if err := json.Unmarshal(payload, &rec.Payload); err != nil {
		rec.Payload = diagram.Payload{}
	}
	return normalizeRecord(rec), true
}

func (s *Store) putDB(rec Record) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	n := normalizeRecord(rec)
	if n.ID == "" {
		return nil
	}
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO diagrams (id, title, description, payload, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id)
DO UPDATE SET title=EXCLUDED.title,
  description=EXCLUDED.description,
  payload=EXCLUDED.payload,
  updated_at=EXCLUDED.updated_at`,
		n.ID, n.Title, n.Description, payload, n.CreatedAt, n.UpdatedAt)
	return err
}

func (s *Store) listDB() []Record {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT id, title, description, payload, created_at, updated_at
FROM diagrams ORDER BY updated_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &payload, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			continue
		}
		if err := json.Unmarshal(payload, &rec.Payload); err != nil {
			rec.Payload = diagram.Payload{}
		}
		out = append(out, normalizeRecord(rec))
	}
	return out
}

func (s *Store) deleteDB(id string) bool {
	if err := s.ensureSchema(); err != nil {
		return false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	res, err := s.db.Exec(`DELETE FROM diagrams WHERE id = $1`, id)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
