package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"backend/models"
)

// FileStore persists the document as one pretty-printed JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*models.Document, error) {
	doc := &models.Document{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc.EnsureDefaults()
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}
	doc.EnsureDefaults()
	return doc, nil
}

func (s *FileStore) Save(doc *models.Document) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return atomicWriteJSON(s.path, doc)
}

// atomicWriteJSON writes through a temp file and renames it into place
// so a crash mid-write never truncates the document.
func atomicWriteJSON(path string, data any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

var _ Store = (*FileStore)(nil)
