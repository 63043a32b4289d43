package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_StoreAndRetrieve(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("waitlist.json", []byte(`[]`)))
	require.NoError(t, store.Store("waitlist.json", []byte(`[{"email":"a@b.co"}]`)))

	data, err := store.Retrieve("waitlist.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"email":"a@b.co"}]`, string(data))
}

func TestFileStorage_RetrieveMissing(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Retrieve("missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStorage_List(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("reports/report-2.json", []byte("{}")))
	require.NoError(t, store.Store("reports/report-1.json", []byte("{}")))
	require.NoError(t, store.Store("waitlist.json", []byte("[]")))

	names, err := store.List("reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/report-1.json", "reports/report-2.json"}, names)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileStorage_Delete(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("a.json", []byte("{}")))
	require.NoError(t, store.Delete("a.json"))
	require.NoError(t, store.Delete("a.json"))

	_, err = store.Retrieve("a.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStorage_RejectsEscapingNames(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../outside.json", "/etc/passwd", "..", ""} {
		assert.Error(t, store.Store(name, []byte("x")), name)
	}
}

func TestNewFileStorage_RequiresDirectory(t *testing.T) {
	_, err := NewFileStorage("")
	assert.Error(t, err)
}
