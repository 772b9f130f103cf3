package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLanguage       = errors.New("i18n: language cannot be empty")
	ErrUnsupportedLanguage = errors.New("i18n: unsupported language")
	ErrInvalidDocument     = errors.New("i18n: invalid translation document")
	ErrNotAnObject         = errors.New("i18n: translation document must be an object")
	ErrAlreadyLoaded       = errors.New("i18n: translation document already loaded")
	ErrNoFetcher           = errors.New("i18n: document fetcher is not configured")
	ErrFetchFailed         = errors.New("i18n: failed to fetch translation document")
	ErrKeyNotFound         = errors.New("i18n: key not found in store")
)

// UnsupportedLanguageError is returned by New when the requested language
// has no entry in the translations index. By the time it is returned the
// fallback language has already been persisted.
type UnsupportedLanguageError struct {
	Lang     string
	Fallback string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("i18n: the language %s is not supported", e.Lang)
}

// Is reports ErrUnsupportedLanguage as a match so callers can use errors.Is.
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// IsUnsupportedLanguage returns true if the error is an UnsupportedLanguageError.
func IsUnsupportedLanguage(err error) bool {
	var ue *UnsupportedLanguageError
	return errors.As(err, &ue)
}
