package cli

import (
	"context"
	"errors"
	"fmt"

	"docvault/internal/service"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	var err error
	if *email == "" {
		if *email, err = prompt(a.in, a.out, "Email"); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = promptPassword(a.in, a.out); err != nil {
			return err
		}
	}

	u, err := a.store.Login(ctx, *email, *password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", a.out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	var err error
	if *name == "" {
		if *name, err = prompt(a.in, a.out, "Name"); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = prompt(a.in, a.out, "Email"); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = promptPassword(a.in, a.out); err != nil {
			return err
		}
	}

	u, err := a.store.Register(ctx, *name, *email, *password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return errors.New("an account with this email already exists")
	case errors.Is(err, service.ErrInvalidInput):
		return errors.New("name, email and password are required")
	case err != nil:
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", u.Name)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if _, ok := a.store.Current(); ok {
		// Tokens are stateless; a failed server call must not keep the local session.
		_ = a.client.Logout(ctx)
	}
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	rec, ok := a.store.Current()
	if !ok {
		return errNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", rec.User.Name, rec.User.Email, rec.User.Role)
	return nil
}
