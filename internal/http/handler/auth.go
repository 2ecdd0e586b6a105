package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is returned by login and register.
type sessionResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} errorPayload
// @Router /auth/login [post]
func Login(svc service.AuthService, tokens Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Login(c.UserContext(), strings.TrimSpace(req.Email), req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			}
			return writeInternal(c, err)
		}
		return respondSession(c, fiber.StatusOK, *u, tokens)
	}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Account"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /auth/register [post]
func Register(svc service.AuthService, tokens Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Register(c.UserContext(), req.Name, req.Email, req.Password)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "name, email and password are required")
		case errors.Is(err, service.ErrEmailTaken):
			return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
		case err != nil:
			return writeInternal(c, err)
		}
		return respondSession(c, fiber.StatusCreated, *u, tokens)
	}
}

func respondSession(c *fiber.Ctx, status int, u model.User, tokens Tokens) error {
	tok, err := tokens.Issue(u)
	if err != nil {
		return writeInternal(c, err)
	}
	return c.Status(status).JSON(sessionResponse{User: u.Public(), Token: tok})
}

// Logout is a no-op on the server; tokens are stateless and the client discards its copy.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the principal carried by the bearer token.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}
		return c.JSON(claims.User())
	}
}
