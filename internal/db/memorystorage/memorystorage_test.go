package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/user"
)

func TestUserStore(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	ctx := context.Background()

	_, found, err := theStorage.GetUserByID(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, found)

	usr := &user.User{ID: "1a2b3c", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, theStorage.CreateUser(ctx, usr))

	got, found, err := theStorage.GetUserByID(ctx, "1a2b3c")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, usr, got)
}

func TestFindUserByEmail(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	ctx := context.Background()

	_, found, err := theStorage.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, theStorage.CreateUser(ctx, &user.User{ID: "1a2b3c", Email: "a@x.com"}))
	require.NoError(t, theStorage.CreateUser(ctx, &user.User{ID: "4d5e6f", Email: "b@x.com"}))

	got, found, err := theStorage.FindUserByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "4d5e6f", got.ID)

	_, found, err = theStorage.FindUserByEmail(ctx, "c@x.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestURLStoreCRUD(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	ctx := context.Background()

	record := &models.URLRecord{ID: "abc123", OwnerID: "1a2b3c", LongURL: "http://example.com"}
	require.NoError(t, theStorage.InsertURL(ctx, record))

	got, found, err := theStorage.GetURLByID(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record, got)

	require.NoError(t, theStorage.UpdateURL(ctx, "abc123", "http://example.org"))

	got, found, err = theStorage.GetURLByID(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "http://example.org", got.LongURL)
	assert.Equal(t, "1a2b3c", got.OwnerID)

	require.NoError(t, theStorage.DeleteURL(ctx, "abc123"))

	_, found, err = theStorage.GetURLByID(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestURLStoreMissingRecordErrors(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	ctx := context.Background()

	assert.ErrorIs(t, theStorage.UpdateURL(ctx, "nonexistent", "http://example.com"), models.ErrURLNotFound)
	assert.ErrorIs(t, theStorage.DeleteURL(ctx, "nonexistent"), models.ErrURLNotFound)
}

func TestGetURLsByOwner(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	ctx := context.Background()

	urls, err := theStorage.GetURLsByOwner(ctx, "1a2b3c")
	require.NoError(t, err)
	assert.Empty(t, urls)

	require.NoError(t, theStorage.InsertURL(ctx, &models.URLRecord{ID: "u1", OwnerID: "1a2b3c", LongURL: "http://one.example.com"}))
	require.NoError(t, theStorage.InsertURL(ctx, &models.URLRecord{ID: "u2", OwnerID: "4d5e6f", LongURL: "http://two.example.com"}))
	require.NoError(t, theStorage.InsertURL(ctx, &models.URLRecord{ID: "u3", OwnerID: "1a2b3c", LongURL: "http://three.example.com"}))

	urls, err = theStorage.GetURLsByOwner(ctx, "1a2b3c")
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, record := range urls {
		assert.Equal(t, "1a2b3c", record.OwnerID)
	}
}

func TestPingAndClose(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	assert.NoError(t, theStorage.Ping(context.Background()))
	assert.NoError(t, theStorage.Close())
}
