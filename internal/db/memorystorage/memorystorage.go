// Package memorystorage implements the in-memory storage for users and URL
// records. Both stores are plain maps guarded by a mutex each; lookups by
// email or owner are linear scans, which is fine for the expected store sizes.
package memorystorage

import (
	"context"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/user"
)

// MemoryStorage holds all application state for the process lifetime.
// Nothing survives a restart.
type MemoryStorage struct {
	usersMu sync.RWMutex
	users   map[string]user.User

	urlsMu sync.RWMutex
	urls   map[string]models.URLRecord
}

// New returns an empty MemoryStorage.
func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		users: map[string]user.User{},
		urls:  map[string]models.URLRecord{},
	}, nil
}

// CreateUser inserts the user keyed by its ID.
func (theStorage *MemoryStorage) CreateUser(ctx context.Context, usr *user.User) error {
	theStorage.usersMu.Lock()
	defer theStorage.usersMu.Unlock()

	theStorage.users[usr.ID] = *usr

	return nil
}

// GetUserByID returns the user with the given ID, if present.
func (theStorage *MemoryStorage) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	theStorage.usersMu.RLock()
	defer theStorage.usersMu.RUnlock()

	usr, found := theStorage.users[userID]
	if !found {
		return nil, false, nil
	}

	return &usr, true, nil
}

// FindUserByEmail scans the user store for the first user with the given email.
func (theStorage *MemoryStorage) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	theStorage.usersMu.RLock()
	defer theStorage.usersMu.RUnlock()

	found := funk.Find(funk.Values(theStorage.users), func(usr user.User) bool {
		return usr.Email == email
	})
	if found == nil {
		return nil, false, nil
	}

	usr := found.(user.User)

	return &usr, true, nil
}

// InsertURL inserts the URL record keyed by its short ID.
func (theStorage *MemoryStorage) InsertURL(ctx context.Context, record *models.URLRecord) error {
	theStorage.urlsMu.Lock()
	defer theStorage.urlsMu.Unlock()

	theStorage.urls[record.ID] = *record

	return nil
}

// GetURLByID returns the URL record with the given short ID, if present.
func (theStorage *MemoryStorage) GetURLByID(ctx context.Context, urlID string) (*models.URLRecord, bool, error) {
	theStorage.urlsMu.RLock()
	defer theStorage.urlsMu.RUnlock()

	record, found := theStorage.urls[urlID]
	if !found {
		return nil, false, nil
	}

	return &record, true, nil
}

// UpdateURL replaces the long URL of an existing record.
func (theStorage *MemoryStorage) UpdateURL(ctx context.Context, urlID, longURL string) error {
	theStorage.urlsMu.Lock()
	defer theStorage.urlsMu.Unlock()

	record, found := theStorage.urls[urlID]
	if !found {
		return models.ErrURLNotFound
	}

	record.LongURL = longURL
	theStorage.urls[urlID] = record

	return nil
}

// DeleteURL removes the record with the given short ID.
func (theStorage *MemoryStorage) DeleteURL(ctx context.Context, urlID string) error {
	theStorage.urlsMu.Lock()
	defer theStorage.urlsMu.Unlock()

	if _, found := theStorage.urls[urlID]; !found {
		return models.ErrURLNotFound
	}

	delete(theStorage.urls, urlID)

	return nil
}

// GetURLsByOwner scans the URL store for every record owned by the given user.
func (theStorage *MemoryStorage) GetURLsByOwner(ctx context.Context, ownerID string) ([]models.URLRecord, error) {
	theStorage.urlsMu.RLock()
	defer theStorage.urlsMu.RUnlock()

	result := funk.Filter(funk.Values(theStorage.urls), func(record models.URLRecord) bool {
		return record.OwnerID == ownerID
	}).([]models.URLRecord)

	return result, nil
}

// Ping reports storage health; the in-memory store is always healthy.
func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op kept for the storage contract.
func (theStorage *MemoryStorage) Close() error {
	return nil
}
