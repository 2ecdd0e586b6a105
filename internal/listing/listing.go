// Package listing implements the search, category and dashboard views over a document snapshot.
package listing

import (
	"strings"
	"time"

	"docvault/internal/model"
)

// RecentWindow is how far back an upload counts as recent on the dashboard.
const RecentWindow = 7 * 24 * time.Hour

// Filter returns the documents whose title or file name contains term (case-insensitive)
// and whose category equals category. Empty arguments do not filter. Order is preserved.
func Filter(docs []model.Document, term, category string) []model.Document {
	term = strings.ToLower(term)
	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if category != "" && d.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Title), term) &&
			!strings.Contains(strings.ToLower(d.FileName), term) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Categories returns the distinct categories of docs in first-seen order.
func Categories(docs []model.Document) []string {
	seen := make(map[string]struct{}, len(docs))
	out := make([]string, 0)
	for _, d := range docs {
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	return out
}

type Summary struct {
	TotalDocuments int `json:"total_documents"`
	Categories     int `json:"categories"`
	RecentUploads  int `json:"recent_uploads"`
}

// Summarize computes the dashboard counters. Documents with an unparsable upload date
// are counted in the total but never as recent.
func Summarize(docs []model.Document, now time.Time) Summary {
	s := Summary{
		TotalDocuments: len(docs),
		Categories:     len(Categories(docs)),
	}
	cutoff := now.Add(-RecentWindow)
	for _, d := range docs {
		day, err := time.Parse(model.DateLayout, d.UploadDate)
		if err != nil {
			continue
		}
		if !day.Before(cutoff.Truncate(24 * time.Hour)) {
			s.RecentUploads++
		}
	}
	return s
}
