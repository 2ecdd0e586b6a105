package repository

import (
	"context"
	"errors"

	"docvault/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateID is returned when a record with the same ID already exists.
	ErrDuplicateID = errors.New("id already exists")
)

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	// Create appends a new document record. The caller provides every field, including ID.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a copy of every document in insertion order, oldest first.
	List(ctx context.Context) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
