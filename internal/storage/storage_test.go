package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-roster-service/internal/storage"
)

func TestStorages_GetSetRemove(t *testing.T) {
	boltStore, err := storage.NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	stores := map[string]storage.SessionStorage{
		"memory": storage.NewMemory(),
		"bolt":   boltStore,
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			// Отсутствующий ключ — nil без ошибки
			v, err := st.Get("missing")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, st.Set("currentUser", []byte(`{"isAuthenticated":true}`)))

			v, err = st.Get("currentUser")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"isAuthenticated":true}`), v)

			// Перезапись
			require.NoError(t, st.Set("currentUser", []byte(`{}`)))
			v, err = st.Get("currentUser")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{}`), v)

			require.NoError(t, st.Remove("currentUser"))
			v, err = st.Get("currentUser")
			require.NoError(t, err)
			assert.Nil(t, v)

			// Повторное удаление — не ошибка
			assert.NoError(t, st.Remove("currentUser"))
		})
	}
}

func TestBolt_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	st, err := storage.NewBolt(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("currentUser", []byte("persisted")))
	require.NoError(t, st.Close())

	st, err = storage.NewBolt(path)
	require.NoError(t, err)
	defer st.Close()

	v, err := st.Get("currentUser")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), v)
}
