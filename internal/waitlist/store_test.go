package waitlist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	backend, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := NewStore(backend)
	store.now = func() time.Time { return clock }
	return store, &clock
}

func TestStore_UpsertNewEntry(t *testing.T) {
	store, _ := newTestStore(t)

	preview := &models.PreviewData{BrandName: "Slack", Mentions: 2}
	entry, err := store.Upsert("Me@Example.com", "https://slack.com", preview)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Me@Example.com", entry.Email)
	assert.Equal(t, models.WaitlistPending, entry.Status)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	assert.Equal(t, preview, entry.PreviewData)
}

func TestStore_UpsertPreservesCreatedAt(t *testing.T) {
	store, clock := newTestStore(t)

	first, err := store.Upsert("me@example.com", "https://slack.com", &models.PreviewData{BrandName: "Slack"})
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	second, err := store.Upsert("ME@example.com", "https://notion.so", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "me@example.com", second.Email)
	assert.Equal(t, "https://notion.so", second.BrandURL)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "Slack", second.PreviewData.BrandName, "missing preview keeps the previous one")

	entries, err := store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Get(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get("me@example.com")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	_, err = store.Upsert("me@example.com", "https://slack.com", nil)
	require.NoError(t, err)

	entry, err := store.Get("ME@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, "https://slack.com", entry.BrandURL)
}

func TestStore_UpdateStatusAndStats(t *testing.T) {
	store, _ := newTestStore(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := store.Upsert(email, "https://slack.com", nil)
		require.NoError(t, err)
	}
	require.NoError(t, store.UpdateStatus("a@example.com", models.WaitlistSent))
	require.NoError(t, store.UpdateStatus("B@example.com", models.WaitlistError))

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistStats{Total: 3, Pending: 1, Sent: 1, Error: 1}, stats)

	err = store.UpdateStatus("missing@example.com", models.WaitlistSent)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestStore_EmptyAndCorruptDocument(t *testing.T) {
	backend, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewStore(backend)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, backend.Store(ObjectName, []byte("{not json")))
	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}
