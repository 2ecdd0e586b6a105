package model

import "fmt"

// DateLayout is the calendar-date format used for Document.UploadDate.
const DateLayout = "2006-01-02"

// Document represents one uploaded artifact in the vault.
// FileSize is a display string (e.g. "2.5 MB"), not a byte count.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	UploadDate  string `json:"upload_date"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	UploadedBy  string `json:"uploaded_by"`
	StoragePath string `json:"storage_path,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// FormatSize renders a byte count as megabytes with one decimal place.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}
