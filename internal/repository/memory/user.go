package memory

import (
	"context"
	"slices"
	"sync"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// UserStore keeps users in registration order.
type UserStore struct {
	mu    sync.RWMutex
	users []model.User
}

func NewUserStore(seed ...model.User) *UserStore {
	return &UserStore{users: slices.Clone(seed)}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
		if u.ID == user.ID {
			return nil, repository.ErrDuplicateID
		}
	}
	s.users = append(s.users, *user)
	out := *user
	return &out, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

func (s *UserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

func (s *UserStore) find(match func(model.User) bool) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.users, match)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	out := s.users[i]
	return &out, nil
}
