package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/auth"
	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

// Tokens issues and verifies bearer tokens.
type Tokens interface {
	Issue(u model.User) (string, error)
	Parse(token string) (*auth.Claims, error)
}

// Deps are the collaborators the routes call into. DB is nil in memory mode.
type Deps struct {
	DB     *sql.DB
	Auth   service.AuthService
	Docs   service.DocumentService
	Tokens Tokens
	Now    func() time.Time
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	a := app.Group("/auth")
	a.Post("/login", Login(d.Auth, d.Tokens))
	a.Post("/register", Register(d.Auth, d.Tokens))
	a.Post("/logout", Logout())
	a.Get("/me", middleware.Auth(d.Tokens), Me())

	requireAuth := middleware.Auth(d.Tokens)

	docs := app.Group("/documents", requireAuth)
	docs.Get("/", ListDocuments(d.Docs))
	docs.Post("/", UploadDocument(d.Docs))
	docs.Delete("/:id", DeleteDocument(d.Docs))
	docs.Post("/:id/download", DownloadDocument(d.Docs))

	app.Get("/dashboard", requireAuth, Dashboard(d.Docs, d.Now))
	app.Get("/admin/documents", requireAuth, middleware.RequireRole(model.RoleAdmin), AdminListDocuments(d.Docs))
}
