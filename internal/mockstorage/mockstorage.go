// Package mockstorage provides a testify-based mock implementation
// of the storage interfaces consumed by the service layer.
// It is used for unit testing handlers and service rules by simulating
// storage behavior, including error paths the real store never takes.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/user"
)

// StorageMock is a testify mock implementing the user and URL store
// interfaces declared in the service package.
type StorageMock struct {
	mock.Mock
}

// CreateUser mocks inserting a user.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

// GetUserByID mocks the lookup of a user by its identifier.
func (m *StorageMock) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// FindUserByEmail mocks the linear scan for a user by email.
func (m *StorageMock) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// InsertURL mocks inserting a URL record.
func (m *StorageMock) InsertURL(ctx context.Context, record *models.URLRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetURLByID mocks the lookup of a URL record by its short key.
func (m *StorageMock) GetURLByID(ctx context.Context, urlID string) (*models.URLRecord, bool, error) {
	args := m.Called(ctx, urlID)
	record, _ := args.Get(0).(*models.URLRecord)
	return record, args.Bool(1), args.Error(2)
}

// UpdateURL mocks replacing the long URL of a record.
func (m *StorageMock) UpdateURL(ctx context.Context, urlID, longURL string) error {
	args := m.Called(ctx, urlID, longURL)
	return args.Error(0)
}

// DeleteURL mocks removing a record.
func (m *StorageMock) DeleteURL(ctx context.Context, urlID string) error {
	args := m.Called(ctx, urlID)
	return args.Error(0)
}

// GetURLsByOwner mocks the linear scan for records by owner.
func (m *StorageMock) GetURLsByOwner(ctx context.Context, ownerID string) ([]models.URLRecord, error) {
	args := m.Called(ctx, ownerID)
	records, _ := args.Get(0).([]models.URLRecord)
	return records, args.Error(1)
}
