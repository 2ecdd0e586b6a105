package handler

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/form"
	"docvault/internal/http/middleware"
	"docvault/internal/listing"
	"docvault/internal/model"
	"docvault/internal/service"
)

// listResponse is the body of GET /documents.
type listResponse struct {
	Data       []model.Document `json:"data"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
}

// ListDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param q query string false "Search title or file name"
// @Param category query string false "Exact category"
// @Success 200 {object} listResponse
// @Security BearerAuth
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeInternal(c, err)
		}
		filtered := listing.Filter(docs, c.Query("q"), c.Query("category"))
		for i := range filtered {
			filtered[i].StoragePath = ""
		}
		return c.JSON(listResponse{
			Data:       filtered,
			Total:      len(filtered),
			Categories: listing.Categories(docs),
		})
	}
}

// UploadDocument godoc
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param file formData file true "File"
// @Success 201 {object} model.Document
// @Failure 422 {object} errorPayload
// @Security BearerAuth
// @Router /documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := c.FormValue("title")
		category := c.FormValue("category")

		var header *form.FileHeader
		fh, err := c.FormFile("file")
		if err == nil {
			header = &form.FileHeader{Name: fh.Filename, Size: fh.Size}
		}
		if errs := form.ValidateUpload(title, category, header); !errs.Valid() {
			return writeValidationError(c, errs)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		in := service.UploadInput{
			Title:    title,
			Category: category,
			File:     uploadedFile(fh, f),
		}
		if claims := middleware.ClaimsFrom(c); claims != nil {
			in.UploadedBy = claims.Name
		}

		doc, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return writeInternal(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func uploadedFile(fh *multipart.FileHeader, f multipart.File) service.File {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return service.File{Name: fh.Filename, Size: fh.Size, ContentType: ct, Content: f}
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Unknown IDs also answer 204.
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Security BearerAuth
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeInternal(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument godoc
// @Summary Request a download
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 202 {object} service.Receipt
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /documents/{id}/download [post]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Download(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeInternal(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(rec)
	}
}

type dashboardResponse struct {
	listing.Summary
	Recent []model.Document `json:"recent"`
}

// dashboardRecent is how many of the newest documents the dashboard shows.
const dashboardRecent = 5

// Dashboard godoc
// @Summary Dashboard counters and the newest documents
// @Tags documents
// @Produce json
// @Success 200 {object} dashboardResponse
// @Security BearerAuth
// @Router /dashboard [get]
func Dashboard(svc service.DocumentService, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeInternal(c, err)
		}
		recent := make([]model.Document, 0, dashboardRecent)
		for i := len(docs) - 1; i >= 0 && len(recent) < dashboardRecent; i-- {
			recent = append(recent, docs[i])
		}
		return c.JSON(dashboardResponse{
			Summary: listing.Summarize(docs, now()),
			Recent:  recent,
		})
	}
}

// AdminListDocuments godoc
// @Summary List every document with storage details
// @Tags admin
// @Produce json
// @Success 200 {object} listResponse
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /admin/documents [get]
func AdminListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeInternal(c, err)
		}
		return c.JSON(listResponse{
			Data:       docs,
			Total:      len(docs),
			Categories: listing.Categories(docs),
		})
	}
}
