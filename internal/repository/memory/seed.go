package memory

import (
	"github.com/google/uuid"

	"docvault/internal/model"
)

// SeedUsers returns the two accounts every fresh vault starts with.
// IDs are generated per call so separate stores never share identities.
func SeedUsers() []model.User {
	return []model.User{
		{ID: uuid.NewString(), Name: "Admin User", Email: "admin@vault.com", Role: model.RoleAdmin},
		{ID: uuid.NewString(), Name: "John Doe", Email: "user@vault.com", Role: model.RoleUser},
	}
}

// SeedDocuments returns the sample documents shown on a fresh vault.
func SeedDocuments() []model.Document {
	return []model.Document{
		{
			ID:         uuid.Must(uuid.NewV7()).String(),
			Title:      "Financial Report Q4 2024",
			Category:   "Finance",
			UploadDate: "2024-01-15",
			FileName:   "financial-report-q4.pdf",
			FileSize:   "2.5 MB",
			UploadedBy: "John Doe",
		},
		{
			ID:         uuid.Must(uuid.NewV7()).String(),
			Title:      "Company Policies",
			Category:   "HR",
			UploadDate: "2024-01-10",
			FileName:   "company-policies.docx",
			FileSize:   "1.2 MB",
			UploadedBy: "Admin User",
		},
	}
}
