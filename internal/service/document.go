package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docvault/internal/latency"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
)

// DefaultUploader is recorded as UploadedBy when the caller supplies no name.
const DefaultUploader = "Current User"

// File describes the uploaded payload. Content may be nil when only metadata is kept.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadInput carries the fields of a new document.
// Category is not validated here; callers offer the fixed category set.
type UploadInput struct {
	Title      string
	Category   string
	File       File
	UploadedBy string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns a snapshot of every document in insertion order.
	List(ctx context.Context) ([]model.Document, error)

	// Upload creates a document. When object storage is configured the body is stored first and
	// removed again if the metadata write fails. No size limit is applied at this layer.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Delete removes a document and its stored body. Unknown IDs succeed without effect.
	Delete(ctx context.Context, id string) error

	// Download hands the document to the configured Downloader.
	Download(ctx context.Context, id string) (Receipt, error)
}

// Option customizes a DocumentService.
type Option func(*documentService)

// WithClock overrides the time source used for upload dates.
func WithClock(now func() time.Time) Option {
	return func(s *documentService) { s.now = now }
}

// WithIDGenerator overrides document ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *documentService) { s.newID = gen }
}

// WithStorage stores uploaded bodies in an object store.
func WithStorage(store storage.Storage) Option {
	return func(s *documentService) { s.store = store }
}

// WithDownloader replaces the default logging Downloader.
func WithDownloader(d Downloader) Option {
	return func(s *documentService) { s.downloader = d }
}

type documentService struct {
	repo       repository.DocumentRepository
	store      storage.Storage
	downloader Downloader
	delay      latency.Profile
	log        zerolog.Logger
	now        func() time.Time
	newID      func() string
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, delay latency.Profile, log zerolog.Logger, opts ...Option) DocumentService {
	log = log.With().Str("component", "documents").Logger()
	s := &documentService{
		repo:  repo,
		delay: delay,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.downloader == nil {
		s.downloader = NewLogDownloader(log)
	}
	return s
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	ctx, span := tracer.Start(ctx, "documents.List")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.List)
	docs, err := s.repo.List(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list documents: %w", err)
	}
	span.SetAttributes(attribute.Int("documents.count", len(docs)))
	return docs, nil
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "documents.Upload")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.Upload)

	uploadedBy := in.UploadedBy
	if uploadedBy == "" {
		uploadedBy = DefaultUploader
	}
	doc := &model.Document{
		ID:          s.newID(),
		Title:       in.Title,
		Category:    in.Category,
		UploadDate:  s.now().UTC().Format(model.DateLayout),
		FileName:    in.File.Name,
		FileSize:    model.FormatSize(in.File.Size),
		UploadedBy:  uploadedBy,
		ContentType: in.File.ContentType,
	}
	span.SetAttributes(attribute.String("document.id", doc.ID))

	if s.store != nil && in.File.Content != nil {
		key := storage.ObjectKey(doc.ID, in.File.Name)
		obj, err := s.store.Put(ctx, key, in.File.Content, storage.PutObjectOptions{
			Size:        in.File.Size,
			ContentType: in.File.ContentType,
			Metadata: map[string]string{
				"original-filename": in.File.Name,
			},
		})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		doc.StoragePath = obj.Key
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if doc.StoragePath != "" {
			if delErr := s.store.Delete(ctx, doc.StoragePath); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.log.Info().
		Str("event", "document_uploaded").
		Str("document_id", stored.ID).
		Str("category", stored.Category).
		Str("file_size", stored.FileSize).
		Send()
	return stored, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "documents.Delete")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.Delete)

	if s.store != nil {
		doc, err := s.repo.FindByID(ctx, id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil
		case err != nil:
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("find document: %w", err)
		}
		// Keep the row when the object cannot be removed so the reference is not lost.
		if doc.StoragePath != "" {
			if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
				span.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("delete storage: %w", err)
			}
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete document: %w", err)
	}
	s.log.Info().Str("event", "document_deleted").Str("document_id", id).Send()
	return nil
}

func (s *documentService) Download(ctx context.Context, id string) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "documents.Download")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.Download)
	if id == "" {
		return Receipt{}, ErrIDRequired
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Receipt{}, ErrNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return Receipt{}, fmt.Errorf("find document: %w", err)
	}
	return s.downloader.Download(ctx, *doc)
}
