package i18n_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := i18n.NewMemoryStore()

	_, err := store.Get(ctx, i18n.LangKey)
	require.ErrorIs(t, err, i18n.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, i18n.LangKey, "en_US"))
	v, err := store.Get(ctx, i18n.LangKey)
	require.NoError(t, err)
	require.Equal(t, "en_US", v)
}

func TestCurrentLanguage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, stored := range map[string]*string{
		"missing":   nil,
		"undefined": ptr("undefined"),
		"empty":     ptr(""),
	} {
		t.Run(name+" value is replaced by the fallback", func(t *testing.T) {
			t.Parallel()
			store := i18n.NewMemoryStore()
			if stored != nil {
				require.NoError(t, store.Set(ctx, i18n.LangKey, *stored))
			}

			lang, err := i18n.CurrentLanguage(ctx, store, "en_US")
			require.NoError(t, err)
			require.Equal(t, "en_US", lang)

			persisted, err := store.Get(ctx, i18n.LangKey)
			require.NoError(t, err)
			require.Equal(t, "en_US", persisted)
		})
	}

	t.Run("returns stored value without validation", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewMemoryStore()
		require.NoError(t, store.Set(ctx, i18n.LangKey, "xx_XX"))

		lang, err := i18n.CurrentLanguage(ctx, store, "en_US")
		require.NoError(t, err)
		require.Equal(t, "xx_XX", lang)
	})

	t.Run("treats read failures as missing", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("unreachable")
		store := &failingStore{getErr: boom}

		lang, err := i18n.CurrentLanguage(ctx, store, "en_US")
		require.ErrorIs(t, err, boom)
		require.Equal(t, "en_US", lang)
		require.Equal(t, []string{"en_US"}, store.sets)
	})

	t.Run("reports write failures", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("read only")
		store := &failingStore{setErr: boom}

		lang, err := i18n.CurrentLanguage(ctx, store, "en_US")
		require.ErrorIs(t, err, boom)
		require.Equal(t, "en_US", lang)
	})
}

func ptr(s string) *string {
	return &s
}
