package i18n

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

// DefaultFallbackLang is used when Config.FallbackLang is empty.
const DefaultFallbackLang = "en_US"

// Config describes a session. It mirrors the options a page passes at startup.
type Config struct {
	// Translations maps a language code to the location of its document.
	Translations map[string]string

	// Lang is the requested language. Empty means the persisted language,
	// or FallbackLang when nothing is persisted.
	Lang string

	// FallbackLang replaces a missing or unsupported language. Default: en_US.
	FallbackLang string

	// IsMetaTranslated enables page metadata population after Load.
	IsMetaTranslated bool
}

// ReloadFunc is called after the persisted language changes. The host is
// expected to reinitialize with the new language (reload the page, redirect,
// rebuild its session).
type ReloadFunc func(ctx context.Context, lang string)

// MetaSetter is called once after a successful Load when page metadata
// translation is enabled.
type MetaSetter func(ctx context.Context, s *Session)

// Session holds the current language and the loaded document for one page load.
// It is owned by a single goroutine; the Store it writes to may be shared.
type Session struct {
	store      Store
	fetcher    Fetcher
	reload     ReloadFunc
	metaSetter MetaSetter
	logger     *slog.Logger
	doc        *Document
	cfg        Config
	lang       string
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets the store holding the persisted language. Default: a fresh MemoryStore.
func WithStore(store Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFetcher sets the document source used by Load.
func WithFetcher(f Fetcher) Option {
	return func(s *Session) {
		s.fetcher = f
	}
}

// WithReloadFunc sets the callback fired by SetLang.
func WithReloadFunc(fn ReloadFunc) Option {
	return func(s *Session) {
		s.reload = fn
	}
}

// WithMetaSetter sets the callback fired after Load when IsMetaTranslated is on.
func WithMetaSetter(fn MetaSetter) Option {
	return func(s *Session) {
		s.metaSetter = fn
	}
}

// WithLogger sets the logger for store failures. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session for cfg.
//
// If the requested language has no entry in cfg.Translations, the fallback
// language is persisted through SetLang (firing the reload callback) and an
// *UnsupportedLanguageError naming the requested language is returned.
// The caller gets no session in that case and should start over.
func New(ctx context.Context, cfg Config, opts ...Option) (*Session, error) {
	if cfg.FallbackLang == "" {
		cfg.FallbackLang = DefaultFallbackLang
	}
	if cfg.Translations == nil {
		cfg.Translations = map[string]string{}
	}

	s := &Session{
		cfg:    cfg,
		store:  NewMemoryStore(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.lang = cfg.Lang
	if s.lang == "" {
		s.lang = s.CurrentLanguage(ctx)
	}

	if _, ok := cfg.Translations[s.lang]; !ok {
		requested := s.lang
		if err := s.SetLang(ctx, cfg.FallbackLang); err != nil {
			s.logger.WarnContext(ctx, "failed to persist fallback language",
				slog.String("lang", cfg.FallbackLang),
				slog.String("error", err.Error()),
			)
		}
		return nil, &UnsupportedLanguageError{Lang: requested, Fallback: cfg.FallbackLang}
	}

	return s, nil
}

// Load fetches the document of the current language. It succeeds at most once;
// later calls return ErrAlreadyLoaded. Fetch and parse errors are returned
// unchanged in meaning and leave the session without a document, in which
// state every lookup echoes its key.
func (s *Session) Load(ctx context.Context) error {
	if s.doc != nil {
		return ErrAlreadyLoaded
	}
	if s.fetcher == nil {
		return ErrNoFetcher
	}

	doc, err := s.fetcher.Fetch(ctx, s.cfg.Translations[s.lang])
	if err != nil {
		return err
	}
	s.doc = doc

	if s.cfg.IsMetaTranslated && s.metaSetter != nil {
		s.metaSetter(ctx, s)
	}
	return nil
}

// T translates a dotted key against the translations subtree.
func (s *Session) T(ctx context.Context, key string) string {
	return s.translate(ctx, key, false)
}

// TMeta translates a dotted key against the whole document.
func (s *Session) TMeta(ctx context.Context, key string) string {
	return s.translate(ctx, key, true)
}

// Resolve returns the raw lookup result for key, branches included.
func (s *Session) Resolve(key string, meta bool) Value {
	return Resolve(s.doc, key, meta)
}

func (s *Session) translate(ctx context.Context, key string, meta bool) string {
	return Translate(s.doc, key, meta, func() string {
		return s.LocalizedLanguage(ctx)
	})
}

// CurrentLanguage reads the persisted language, correcting the store to the
// fallback language when nothing valid is persisted.
func (s *Session) CurrentLanguage(ctx context.Context) string {
	lang, err := CurrentLanguage(ctx, s.store, s.cfg.FallbackLang)
	if err != nil {
		s.logger.WarnContext(ctx, "language store access failed",
			slog.String("error", err.Error()),
		)
	}
	return lang
}

// LocalizedLanguage returns the document's localizedLanguage, or the persisted
// language when the document has none.
func (s *Session) LocalizedLanguage(ctx context.Context) string {
	if s.doc != nil {
		if name := s.doc.LocalizedLanguage(); name != "" {
			return name
		}
	}
	return s.CurrentLanguage(ctx)
}

// SetLang persists lang and fires the reload callback. The session keeps
// its loaded document; the host is expected to start a new session.
func (s *Session) SetLang(ctx context.Context, lang string) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if err := s.store.Set(ctx, LangKey, lang); err != nil {
		return err
	}
	s.lang = lang
	if s.reload != nil {
		s.reload(ctx, lang)
	}
	return nil
}

// PageMeta holds the translated metadata of one page.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
}

// PageMeta resolves titles.<page>, descriptions.<page> and keywords.<page>
// from the document root.
func (s *Session) PageMeta(ctx context.Context, page string) PageMeta {
	return PageMeta{
		Title:       s.TMeta(ctx, "titles."+page),
		Description: s.TMeta(ctx, "descriptions."+page),
		Keywords:    s.TMeta(ctx, "keywords."+page),
	}
}

// Lang returns the session language.
func (s *Session) Lang() string {
	return s.lang
}

// FallbackLang returns the fallback language.
func (s *Session) FallbackLang() string {
	return s.cfg.FallbackLang
}

// Languages returns the supported language codes, sorted.
func (s *Session) Languages() []string {
	return slices.Sorted(maps.Keys(s.cfg.Translations))
}

// IsMetaTranslated reports whether page metadata should be translated.
func (s *Session) IsMetaTranslated() bool {
	return s.cfg.IsMetaTranslated
}

// Loaded reports whether a document has been loaded.
func (s *Session) Loaded() bool {
	return s.doc != nil
}

// Document returns the loaded document, nil before Load.
func (s *Session) Document() *Document {
	return s.doc
}
