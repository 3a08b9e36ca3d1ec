// Package service implements the application rules of the URL shortener:
// registration, login, session identity resolution and owner-gated CRUD on
// shortened URLs. Handlers translate the errors declared in internal/models
// into HTTP responses; the service never touches the transport layer.
package service

import (
	"context"
	"fmt"

	"github.com/pvidkov/tinyapp/internal/keygen"
	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/password"
	"github.com/pvidkov/tinyapp/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) error
	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)
	FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error)
}

type urlsKeeper interface {
	InsertURL(ctx context.Context, record *models.URLRecord) error
	GetURLByID(ctx context.Context, urlID string) (*models.URLRecord, bool, error)
	UpdateURL(ctx context.Context, urlID, longURL string) error
	DeleteURL(ctx context.Context, urlID string) error
	GetURLsByOwner(ctx context.Context, ownerID string) ([]models.URLRecord, error)
}

type storage interface {
	userKeeper
	urlsKeeper
}

// Service holds the storage handle and implements the application operations.
type Service struct {
	db storage
}

// New creates a Service over the given storage.
func New(db storage) *Service {
	return &Service{db: db}
}

// RegisterUser validates the registration form, hashes the password and
// inserts a new user. The email must not be registered yet.
func (s *Service) RegisterUser(ctx context.Context, email, plainPassword string) (*user.User, error) {
	if email == "" || plainPassword == "" {
		return nil, models.ErrFieldsRequired
	}

	_, found, err := s.db.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if found {
		return nil, models.ErrEmailTaken
	}

	passwordHash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	userID, err := keygen.NewKey()
	if err != nil {
		return nil, err
	}

	usr := &user.User{
		ID:           userID,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.CreateUser(ctx, usr); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return usr, nil
}

// AuthenticateUser validates the login form and checks the credentials.
func (s *Service) AuthenticateUser(ctx context.Context, email, plainPassword string) (*user.User, error) {
	if email == "" || plainPassword == "" {
		return nil, models.ErrFieldsRequired
	}

	usr, found, err := s.db.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if !found {
		return nil, models.ErrEmailNotRegistered
	}

	if !password.Verify(plainPassword, usr.PasswordHash) {
		return nil, models.ErrWrongCredentials
	}

	return usr, nil
}

// ResolveUser maps a session's carried identifier to an existing user.
// A stale or empty identifier resolves to anonymous (found == false).
func (s *Service) ResolveUser(ctx context.Context, userID string) (*user.User, bool, error) {
	if userID == "" {
		return nil, false, nil
	}

	return s.db.GetUserByID(ctx, userID)
}

// CreateURL inserts a new URL record owned by ownerID.
// The caller's session identifier is taken as-is, even when it is empty or
// stale; see the known-gap note in DESIGN.md.
func (s *Service) CreateURL(ctx context.Context, ownerID, longURL string) (*models.URLRecord, error) {
	urlID, err := keygen.NewKey()
	if err != nil {
		return nil, err
	}

	record := &models.URLRecord{
		ID:      urlID,
		OwnerID: ownerID,
		LongURL: longURL,
	}
	if err := s.db.InsertURL(ctx, record); err != nil {
		return nil, fmt.Errorf("inserting URL record: %w", err)
	}

	return record, nil
}

// URLsForUser returns every URL record owned by the given user.
func (s *Service) URLsForUser(ctx context.Context, ownerID string) ([]models.URLRecord, error) {
	return s.db.GetURLsByOwner(ctx, ownerID)
}

// URLForOwner returns the record with the given ID if userID resolves to an
// existing user owning it. Checks run in the view-route order: login first,
// then existence, then ownership.
func (s *Service) URLForOwner(ctx context.Context, userID, urlID string) (*models.URLRecord, error) {
	usr, found, err := s.ResolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrNotLoggedIn
	}

	record, found, err := s.db.GetURLByID(ctx, urlID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrURLNotFound
	}

	if record.OwnerID != usr.ID {
		return nil, models.ErrNotOwner
	}

	return record, nil
}

// UpdateURL replaces the long URL of the record after running the mutation
// checks in order: record existence, login, ownership.
func (s *Service) UpdateURL(ctx context.Context, userID, urlID, longURL string) error {
	if err := s.checkURLMutation(ctx, userID, urlID); err != nil {
		return err
	}

	return s.db.UpdateURL(ctx, urlID, longURL)
}

// DeleteURL removes the record after the same checks as UpdateURL.
func (s *Service) DeleteURL(ctx context.Context, userID, urlID string) error {
	if err := s.checkURLMutation(ctx, userID, urlID); err != nil {
		return err
	}

	return s.db.DeleteURL(ctx, urlID)
}

// ResolveShort returns the redirect target for a short key.
func (s *Service) ResolveShort(ctx context.Context, urlID string) (string, error) {
	record, found, err := s.db.GetURLByID(ctx, urlID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", models.ErrURLNotFound
	}

	return record.LongURL, nil
}

func (s *Service) checkURLMutation(ctx context.Context, userID, urlID string) error {
	record, found, err := s.db.GetURLByID(ctx, urlID)
	if err != nil {
		return err
	}
	if !found {
		return models.ErrURLNotFound
	}

	usr, found, err := s.ResolveUser(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return models.ErrNotLoggedIn
	}

	if record.OwnerID != usr.ID {
		return models.ErrNotOwner
	}

	return nil
}
