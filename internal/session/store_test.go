package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newMemory(clock *fakeClock) *MemoryBackend {
	b := NewMemoryBackend()
	b.now = clock.Now
	return b
}

func TestMemoryBackend_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := newMemory(clock)

	require.NoError(t, b.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, b.Set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, b.Set(ctx, "forever", []byte("c"), 0))

	got, err := b.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = b.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, b.Len())

	assert.Equal(t, 1, b.PurgeExpired())
	assert.Equal(t, 2, b.Len())

	clock.now = clock.now.Add(24 * time.Hour)
	assert.Equal(t, 1, b.PurgeExpired())
	_, err = b.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	value := []byte("abc")
	require.NoError(t, b.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	require.NoError(t, b.Delete(ctx, "k"))
	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), time.Hour, time.Hour)

	user := domain.SessionUser{ID: 2, Email: "member@club.com", Name: "John Doe", Role: domain.RoleMember}
	sid, err := store.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	loaded, err := store.Load(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, user, loaded)

	user.Profile = &domain.Profile{Name: "John Doe", Mobile: "9876543210"}
	require.NoError(t, store.Save(ctx, sid, user))
	loaded, err = store.Load(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, "9876543210", loaded.Profile.Mobile)

	require.NoError(t, store.Destroy(ctx, sid))
	_, err = store.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Drafts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), time.Hour, time.Hour)

	_, err := store.LoadDraft(ctx, 2, "golf")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	w := form.NewWizard("golf", domain.User{ID: 2, Name: "John Doe", Email: "member@club.com"})
	w.Next()
	require.NoError(t, store.SaveDraft(ctx, 2, w))

	loaded, err := store.LoadDraft(ctx, 2, "GOLF")
	require.NoError(t, err)
	assert.Equal(t, w.Step, loaded.Step)
	assert.Equal(t, w.Data, loaded.Data)
	assert.Equal(t, w.Errors, loaded.Errors)

	_, err = store.LoadDraft(ctx, 3, "golf")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	require.NoError(t, store.DeleteDraft(ctx, 2, "golf"))
	_, err = store.LoadDraft(ctx, 2, "golf")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
