package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcanvas/internal/diagram"
)

func testRecord(id string) Record {
	return Record{
		ID:    id,
		Title: "Checkout flow",
		Payload: diagram.Payload{
			Nodes: []diagram.Node{{ID: "web", Label: "Web", Icon: "assets/icons/General/Server.svg"}},
			Edges: []diagram.Edge{},
		},
	}
}

func TestFileStore_PutGetDelete(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "diagrams.json"))

	require.NoError(t, s.Put(testRecord("d1")))

	got, ok := s.Get("d1")
	require.True(t, ok)
	assert.Equal(t, "Checkout flow", got.Title)
	assert.Len(t, got.Payload.Nodes, 1)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	assert.True(t, s.Delete("d1"))
	_, ok = s.Get("d1")
	assert.False(t, ok)
	assert.False(t, s.Delete("d1"))
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagrams.json")

	s := New(path)
	require.NoError(t, s.Put(testRecord("d1")))
	s.Save()

	reopened := New(path)
	got, ok := reopened.Get("d1")
	require.True(t, ok)
	assert.Equal(t, "d1", got.ID)
	assert.Equal(t, "web", got.Payload.Nodes[0].ID)
}

func TestFileStore_ListNewestFirst(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "diagrams.json"))

	older := testRecord("old")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt
	newer := testRecord("new")

	require.NoError(t, s.Put(older))
	require.NoError(t, s.Put(newer))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestFileStore_EmptyTitleGetsDefault(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "diagrams.json"))
	rec := testRecord("d1")
	rec.Title = "  "
	require.NoError(t, s.Put(rec))

	got, ok := s.Get("d1")
	require.True(t, ok)
	assert.Equal(t, "Untitled diagram", got.Title)
}

func TestFileStore_BlankIDIgnored(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "diagrams.json"))
	require.NoError(t, s.Put(testRecord("   ")))
	assert.Empty(t, s.List())
}

func TestStore_NilReceiverIsSafe(t *testing.T) {
	var s *Store
	_, ok := s.Get("d1")
	assert.False(t, ok)
	assert.NoError(t, s.Put(testRecord("d1")))
	assert.Nil(t, s.List())
	assert.False(t, s.Delete("d1"))
	assert.NoError(t, s.Close())
}
