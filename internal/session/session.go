// Package session tracks the identity of the signed-in principal and keeps it across restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"docvault/internal/model"
)

// Key names the persisted session entry.
const Key = "vault_user"

// Record is what a successful login or registration yields and what gets persisted.
type Record struct {
	User  model.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

// Authenticator verifies credentials and creates accounts.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Record, error)
	Register(ctx context.Context, name, email, password string) (Record, error)
}

// Store holds the single current-identity slot.
type Store struct {
	auth    Authenticator
	persist Persister
	log     zerolog.Logger

	mu      sync.RWMutex
	current *Record
}

func New(auth Authenticator, p Persister, log zerolog.Logger) *Store {
	return &Store{
		auth:    auth,
		persist: p,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// Restore loads the persisted record. A missing entry leaves the session unset;
// an unreadable one is cleared.
func (s *Store) Restore(ctx context.Context) error {
	data, err := s.persist.Load(ctx)
	if errors.Is(err, ErrNoRecord) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil || rec.User.ID == "" {
		s.log.Warn().Str("event", "session_discarded").Msg("persisted session is unreadable")
		if cerr := s.persist.Clear(ctx); cerr != nil {
			return fmt.Errorf("clear session: %w", cerr)
		}
		return nil
	}

	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()
	s.log.Debug().Str("event", "session_restored").Str("user_id", rec.User.ID).Send()
	return nil
}

// Login authenticates and, on success, makes the user current.
// On failure the session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	rec, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, rec)
}

// Register creates an account and makes it current.
func (s *Store) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	rec, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, rec)
}

func (s *Store) establish(ctx context.Context, rec Record) (*model.User, error) {
	rec.User = rec.User.Public()
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.persist.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()

	s.log.Info().Str("event", "session_started").Str("user_id", rec.User.ID).Send()
	u := rec.User
	return &u, nil
}

// Logout clears the session. The slot is emptied even when the persisted entry cannot be removed.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.persist.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info().Str("event", "session_ended").Send()
	return nil
}

func (s *Store) Current() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Record{}, false
	}
	return *s.current, true
}

func (s *Store) IsAdmin() bool {
	rec, ok := s.Current()
	return ok && rec.User.IsAdmin()
}
