// Package storage contains object storage abstractions for document bodies (S3-compatible).
// Implementations rely on streaming I/O only.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// KeyPrefix is the folder every document body is stored under.
const KeyPrefix = "documents"

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ObjectKey derives the storage key for a document: documents/<id><ext>.
// The extension is lower-cased; the original file name is kept in object metadata instead.
func ObjectKey(docID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(KeyPrefix, docID+ext)
}
