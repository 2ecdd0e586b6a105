package session

import (
	"context"

	"docvault/internal/model"
	"docvault/internal/service"
)

// TokenFunc issues a bearer token for an authenticated user.
type TokenFunc func(model.User) (string, error)

// ServiceAuthenticator adapts an in-process AuthService. Tokens are only
// attached when a TokenFunc is given.
type ServiceAuthenticator struct {
	svc   service.AuthService
	token TokenFunc
}

func NewServiceAuthenticator(svc service.AuthService, token TokenFunc) *ServiceAuthenticator {
	return &ServiceAuthenticator{svc: svc, token: token}
}

func (a *ServiceAuthenticator) Login(ctx context.Context, email, password string) (Record, error) {
	u, err := a.svc.Login(ctx, email, password)
	if err != nil {
		return Record{}, err
	}
	return a.record(*u)
}

func (a *ServiceAuthenticator) Register(ctx context.Context, name, email, password string) (Record, error) {
	u, err := a.svc.Register(ctx, name, email, password)
	if err != nil {
		return Record{}, err
	}
	return a.record(*u)
}

func (a *ServiceAuthenticator) record(u model.User) (Record, error) {
	rec := Record{User: u}
	if a.token == nil {
		return rec, nil
	}
	tok, err := a.token(u)
	if err != nil {
		return Record{}, err
	}
	rec.Token = tok
	return rec, nil
}
