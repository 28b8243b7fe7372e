package services

import (
	"fmt"

	"backend/models"
	"backend/store"
	"backend/utils"
)

// CollectionService is the generic per-user list/create/delete layer
// over the free-form record collections.
type CollectionService struct {
	store store.Store
}

func NewCollectionService(st store.Store) *CollectionService {
	return &CollectionService{store: st}
}

// List returns the caller's records, newest first (creation order).
func (s *CollectionService) List(name, uid string) ([]models.Record, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	items := []models.Record{}
	for _, r := range doc.Collection(name) {
		if r.UID() == uid {
			items = append(items, r)
		}
	}
	return items, nil
}

// Create merges the id/uid envelope over the request body verbatim and
// prepends the record. No schema validation; the client owns the shape.
func (s *CollectionService) Create(name, uid string, body models.Record) (models.Record, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	item := body.WithEnvelope(utils.NewID(), uid)
	doc.SetCollection(name, append([]models.Record{item}, doc.Collection(name)...))

	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return item, nil
}

// Delete removes the record only when both id and uid match. Deleting a
// non-existent or non-owned id is a silent no-op, never an error.
func (s *CollectionService) Delete(name, uid, id string) error {
	doc, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	records := doc.Collection(name)
	kept := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.ID() == id && r.UID() == uid {
			continue
		}
		kept = append(kept, r)
	}
	doc.SetCollection(name, kept)

	if err := s.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}
