package i18n

import (
	"context"
	"errors"
	"sync"
)

// LangKey is the store key holding the persisted language code.
const LangKey = "lang"

// undefinedLang is what some hosts persist after stringifying a missing value.
const undefinedLang = "undefined"

// Store persists small string values such as the selected language.
// Implementations must return ErrKeyNotFound from Get when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an in-process Store safe for concurrent use.
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// CurrentLanguage returns the persisted language. When nothing is persisted,
// or the persisted value is the literal "undefined", fallback is written to
// the store and returned. The stored value is not validated against any list
// of supported languages.
//
// The returned language is always usable. A non-nil error reports a store
// failure: a failed read is treated like a missing value, a failed write
// leaves the store untouched.
func CurrentLanguage(ctx context.Context, store Store, fallback string) (string, error) {
	lang, err := store.Get(ctx, LangKey)
	if err == nil && lang != "" && lang != undefinedLang {
		return lang, nil
	}

	var readErr error
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		readErr = err
	}

	if werr := store.Set(ctx, LangKey, fallback); werr != nil {
		return fallback, errors.Join(readErr, werr)
	}
	return fallback, readErr
}
