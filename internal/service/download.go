package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"docvault/internal/model"
	"docvault/internal/storage"
)

// Receipt acknowledges a download request.
// URL is only set by Downloaders that can hand out a direct link.
type Receipt struct {
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	Status     string    `json:"status"`
	URL        string    `json:"url,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitzero"`
}

const StatusRequested = "requested"

// Downloader is the extension point for delivering a document to its requester.
type Downloader interface {
	Download(ctx context.Context, doc model.Document) (Receipt, error)
}

// LogDownloader records the request and transfers nothing.
type LogDownloader struct {
	log zerolog.Logger
}

func NewLogDownloader(log zerolog.Logger) *LogDownloader {
	return &LogDownloader{log: log}
}

func (d *LogDownloader) Download(_ context.Context, doc model.Document) (Receipt, error) {
	d.log.Info().
		Str("event", "download_requested").
		Str("document_id", doc.ID).
		Str("file_name", doc.FileName).
		Send()
	return Receipt{DocumentID: doc.ID, FileName: doc.FileName, Status: StatusRequested}, nil
}

// PresignDownloader issues a time-limited object store link for documents that have a stored body.
// Documents without one are passed to the fallback.
type PresignDownloader struct {
	store    storage.Storage
	expiry   time.Duration
	fallback Downloader
	log      zerolog.Logger
	now      func() time.Time
}

func NewPresignDownloader(store storage.Storage, expiry time.Duration, fallback Downloader, log zerolog.Logger) *PresignDownloader {
	return &PresignDownloader{store: store, expiry: expiry, fallback: fallback, log: log, now: time.Now}
}

func (d *PresignDownloader) Download(ctx context.Context, doc model.Document) (Receipt, error) {
	if doc.StoragePath == "" {
		return d.fallback.Download(ctx, doc)
	}
	u, err := d.store.PresignGet(ctx, doc.StoragePath, d.expiry)
	if err != nil {
		return Receipt{}, fmt.Errorf("presign download: %w", err)
	}
	d.log.Info().
		Str("event", "download_presigned").
		Str("document_id", doc.ID).
		Dur("expiry", d.expiry).
		Send()
	return Receipt{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		Status:     StatusRequested,
		URL:        u,
		ExpiresAt:  d.now().Add(d.expiry).UTC(),
	}, nil
}
