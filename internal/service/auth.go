package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/latency"
	"docvault/internal/model"
	"docvault/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput is returned when a required registration field is blank.
	ErrInvalidInput = errors.New("name, email and password are required")
)

// AuthOptions selects how passwords are checked.
//
// In demo mode every account accepts DemoPassword, and registered accounts also
// accept the password they registered with. With demo mode off only the stored
// bcrypt hash is accepted.
type AuthOptions struct {
	DemoMode     bool
	DemoPassword string
	HashCost     int
}

// AuthService describes principal authentication.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, name, email, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
	opts  AuthOptions
	delay latency.Profile
	log   zerolog.Logger
}

// NewAuthService constructs an AuthService over the given user repository.
func NewAuthService(users repository.UserRepository, opts AuthOptions, delay latency.Profile, log zerolog.Logger) AuthService {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &authService{
		users: users,
		opts:  opts,
		delay: delay,
		log:   log.With().Str("component", "auth").Logger(),
	}
}

// HashPassword returns a bcrypt hash suitable for model.User.PasswordHash.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.Login)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Str("event", "login_failed").Str("email", email).Send()
			return nil, ErrInvalidCredentials
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.passwordMatches(user, password) {
		s.log.Warn().Str("event", "login_failed").Str("email", email).Send()
		return nil, ErrInvalidCredentials
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	s.log.Info().Str("event", "login_succeeded").Str("user_id", user.ID).Send()
	out := user.Public()
	return &out, nil
}

func (s *authService) passwordMatches(user *model.User, password string) bool {
	if s.opts.DemoMode && subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.DemoPassword)) == 1 {
		return true
	}
	if user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	ctx = context.WithoutCancel(ctx)
	latency.Pause(s.delay.Register)

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := HashPassword(password, s.opts.HashCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: hash,
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("create user: %w", err)
	}

	span.SetAttributes(attribute.String("user.id", stored.ID))
	s.log.Info().Str("event", "user_registered").Str("user_id", stored.ID).Send()
	out := stored.Public()
	return &out, nil
}
