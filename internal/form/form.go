// Package form holds the upload form rules applied before a document reaches the service layer.
package form

import (
	"fmt"
	"strings"
)

// MaxFileSize is the largest accepted upload in bytes (50 MiB).
const MaxFileSize int64 = 50 * 1024 * 1024

// Categories offered when uploading. Membership is not enforced.
var Categories = []string{"Finance", "HR", "Legal", "Marketing", "Operations", "IT", "Other"}

const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldFile     = "file"
)

const (
	MsgTitleRequired    = "Document title is required"
	MsgCategoryRequired = "Please select a category"
	MsgFileRequired     = "Please select a file to upload"
	MsgFileTooLarge     = "File size must be less than 50MB"
)

// FileHeader is the part of a selected file the rules look at.
type FileHeader struct {
	Name string
	Size int64
}

// Errors maps a field name to its message. An empty Errors means the form is valid.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range []string{FieldTitle, FieldCategory, FieldFile} {
		if msg, ok := e[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// ValidateUpload checks the upload form. A nil file means none was selected.
func ValidateUpload(title, category string, file *FileHeader) Errors {
	errs := Errors{}
	if strings.TrimSpace(title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}
	if strings.TrimSpace(category) == "" {
		errs[FieldCategory] = MsgCategoryRequired
	}
	switch {
	case file == nil:
		errs[FieldFile] = MsgFileRequired
	case file.Size > MaxFileSize:
		errs[FieldFile] = MsgFileTooLarge
	}
	return errs
}

// IsCategory reports whether c is one of the offered categories.
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

var units = []string{"Bytes", "KB", "MB", "GB"}

// FormatBytes renders n for display, e.g. "1.5 MB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	return s + " " + units[i]
}
