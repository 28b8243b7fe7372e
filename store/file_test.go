package store

import (
	"os"
	"path/filepath"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileYieldsEmptyDocument(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	doc, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, doc.Journal)
	assert.NotNil(t, doc.Steps)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Analytics.LoginsByDate)
	assert.Empty(t, doc.Journal)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewFileStore(path)

	doc, err := s.Load()
	require.NoError(t, err)
	doc.Steps = append(doc.Steps, models.Record{"id": "s1", "uid": "u1", "count": float64(500)})
	doc.Analytics.LoginsByDate["2024-01-02"] = 3
	require.NoError(t, s.Save(doc))

	reloaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.Steps, 1)
	assert.Equal(t, "s1", reloaded.Steps[0].ID())
	assert.Equal(t, "u1", reloaded.Steps[0].UID())
	assert.Equal(t, 3, reloaded.Analytics.LoginsByDate["2024-01-02"])
}

func TestFileStorePartialDocumentGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps":[{"id":"x","uid":"u1"}]}`), 0o644))

	doc, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Len(t, doc.Steps, 1)
	assert.NotNil(t, doc.Meals)
	assert.NotNil(t, doc.Webhooks)
	assert.NotNil(t, doc.Analytics.LoginsByDate)
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "db.json")
	s := NewFileStore(path)

	doc := &models.Document{}
	doc.EnsureDefaults()
	require.NoError(t, s.Save(doc))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
