// Package services contains the application services of the secdash client.
// The account service pairs the backend API client with the local identity
// store: login writes the identity, logout and account deletion clear it,
// and a profile save updates the persisted username.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avoronov/secdash/internal/client/api"
	"github.com/avoronov/secdash/internal/client/repositories/identity"
	"github.com/avoronov/secdash/internal/dbx"
)

// Identity is the locally persisted sign-in state.
type Identity struct {
	Token    string
	Username string
	Email    string
}

// AccountService defines the account operations the session workflows call.
//
// Contract:
//   - Register: create the account; nothing is persisted locally.
//   - Login: authenticate, persist {token, username, email}, return them.
//   - Profile: fetch the live profile for the token's owner.
//   - SaveUsername: push the username change and update the stored identity.
//   - ChangePassword: replace the password; the token stays valid.
//   - DeleteAccount: remove the account and clear the stored identity.
//   - Logout: clear the stored identity.
//   - LoadIdentity: read the stored identity (zero value when signed out).
//
// All methods must honor context cancellation/timeouts.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (*Identity, error)
	Profile(ctx context.Context, token string) (*api.Profile, error)
	SaveUsername(ctx context.Context, token, username, email string) error
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	LoadIdentity(ctx context.Context) (*Identity, error)
}

// accountService is the concrete AccountService backed by the remote API
// client and a local SQL database for the identity store.
type accountService struct {
	client api.Client
	db     *sql.DB
}

// NewAccountService constructs an AccountService bound to the given API
// client and database.
func NewAccountService(client api.Client, db *sql.DB) AccountService {
	return &accountService{client: client, db: db}
}

func (a *accountService) getIdentityRepo() identity.Repository {
	return identity.NewSQLiteRepository(a.db)
}

func (a *accountService) Register(ctx context.Context, username, email, password string) error {
	if _, err := a.client.Register(ctx, username, email, password); err != nil {
		return err
	}
	return nil
}

// Login authenticates, then fetches the profile so the persisted identity
// carries the account email as well. A profile fetch failure is not fatal:
// the token and username are persisted anyway.
func (a *accountService) Login(ctx context.Context, username, password string) (*Identity, error) {
	tok, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	id := &Identity{Token: tok.AccessToken, Username: username}
	if p, err := a.client.Me(ctx, tok.AccessToken); err == nil {
		id.Username = p.Username
		id.Email = p.Email
	}

	if err := a.saveIdentity(ctx, id); err != nil {
		return nil, fmt.Errorf("identity saving error: %w", err)
	}
	return id, nil
}

// saveIdentity persists the sign-in state in a single transaction.
func (a *accountService) saveIdentity(ctx context.Context, id *Identity) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := identity.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, identity.KeyToken, id.Token); err != nil {
			return err
		}
		if err := repo.Set(ctx, identity.KeyUsername, id.Username); err != nil {
			return err
		}
		if err := repo.Set(ctx, identity.KeyEmail, id.Email); err != nil {
			return err
		}
		return nil
	})
}

func (a *accountService) Profile(ctx context.Context, token string) (*api.Profile, error) {
	return a.client.Me(ctx, token)
}

func (a *accountService) SaveUsername(ctx context.Context, token, username, email string) error {
	p, err := a.client.UpdateUsername(ctx, token, username, email)
	if err != nil {
		return err
	}
	return a.getIdentityRepo().Set(ctx, identity.KeyUsername, p.Username)
}

func (a *accountService) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	return a.client.ChangePassword(ctx, token, currentPassword, newPassword)
}

func (a *accountService) DeleteAccount(ctx context.Context, token string) error {
	if err := a.client.DeleteAccount(ctx, token); err != nil {
		return err
	}
	return a.getIdentityRepo().Clear(ctx)
}

func (a *accountService) Logout(ctx context.Context) error {
	return a.getIdentityRepo().Clear(ctx)
}

func (a *accountService) LoadIdentity(ctx context.Context) (*Identity, error) {
	repo := a.getIdentityRepo()

	token, err := repo.Get(ctx, identity.KeyToken)
	if err != nil {
		return nil, err
	}
	username, err := repo.Get(ctx, identity.KeyUsername)
	if err != nil {
		return nil, err
	}
	email, err := repo.Get(ctx, identity.KeyEmail)
	if err != nil {
		return nil, err
	}
	return &Identity{Token: token, Username: username, Email: email}, nil
}
