package store

import "backend/models"

// Store loads and saves the whole document. There is no isolation
// between concurrent writers: every Save replaces the entire document,
// so the last writer wins.
type Store interface {
	Load() (*models.Document, error)
	Save(doc *models.Document) error
}
