// Package memory holds process-lifetime implementations of the repository interfaces.
// State is owned by the constructed value; nothing is package-global.
package memory

import (
	"context"
	"slices"
	"sync"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentStore keeps documents in an append-ordered slice.
// It is safe for concurrent use.
type DocumentStore struct {
	mu   sync.RWMutex
	docs []model.Document
}

// NewDocumentStore returns a store pre-populated with seed, in order.
func NewDocumentStore(seed ...model.Document) *DocumentStore {
	return &DocumentStore{docs: slices.Clone(seed)}
}

var _ repository.DocumentRepository = (*DocumentStore)(nil)

// Create appends doc. IDs must be unique; a repeated ID is rejected.
func (s *DocumentStore) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(doc.ID) >= 0 {
		return nil, repository.ErrDuplicateID
	}
	s.docs = append(s.docs, *doc)
	out := *doc
	return &out, nil
}

func (s *DocumentStore) FindByID(_ context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	out := s.docs[i]
	return &out, nil
}

// List returns a snapshot; later mutations do not show through it.
func (s *DocumentStore) List(_ context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.docs = slices.Delete(s.docs, i, i+1)
	}
	return nil
}

func (s *DocumentStore) indexOf(id string) int {
	return slices.IndexFunc(s.docs, func(d model.Document) bool { return d.ID == id })
}
