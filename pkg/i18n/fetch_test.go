package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

func TestFSFetcher(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fsys := fstest.MapFS{
		"locales/en_US.json": {Data: []byte(`{"language": "en_US", "translations": {"hello": "Hello"}}`)},
		"locales/de_DE.yml":  {Data: []byte("language: de_DE\ntranslations:\n  hello: Hallo\n")},
	}
	f := i18n.NewFSFetcher(fsys)

	t.Run("reads json", func(t *testing.T) {
		t.Parallel()
		doc, err := f.Fetch(ctx, "locales/en_US.json")
		require.NoError(t, err)
		require.Equal(t, "Hello", i18n.Translate(doc, "hello", false, nil))
	})

	t.Run("reads yaml and cleans the location", func(t *testing.T) {
		t.Parallel()
		doc, err := f.Fetch(ctx, "/locales/../locales/de_DE.yml")
		require.NoError(t, err)
		require.Equal(t, "de_DE", doc.Language())
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()
		_, err := f.Fetch(ctx, "locales/fr_FR.json")
		require.ErrorIs(t, err, i18n.ErrFetchFailed)
	})
}

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/i18n/en_US.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"language": "en_US", "translations": {"form": {"placeholder": "Name"}}}`))
		case "/i18n/de_DE.yaml":
			_, _ = w.Write([]byte("language: de_DE\n"))
		case "/i18n/broken.json":
			_, _ = w.Write([]byte(`{"language":`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Run("fetches absolute urls", func(t *testing.T) {
		t.Parallel()
		f := i18n.NewHTTPFetcher(i18n.WithHTTPClient(srv.Client()))
		doc, err := f.Fetch(ctx, srv.URL+"/i18n/en_US.json")
		require.NoError(t, err)
		require.Equal(t, "Name", i18n.Translate(doc, "form.placeholder", false, nil))
	})

	t.Run("resolves relative locations against the base url", func(t *testing.T) {
		t.Parallel()
		base, err := url.Parse(srv.URL + "/i18n/")
		require.NoError(t, err)

		f := i18n.NewHTTPFetcher(i18n.WithHTTPClient(srv.Client()), i18n.WithBaseURL(base))
		doc, err := f.Fetch(ctx, "de_DE.yaml")
		require.NoError(t, err)
		require.Equal(t, "de_DE", doc.Language())
	})

	t.Run("fails on non-2xx", func(t *testing.T) {
		t.Parallel()
		f := i18n.NewHTTPFetcher(i18n.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(ctx, srv.URL+"/i18n/missing.json")
		require.ErrorIs(t, err, i18n.ErrFetchFailed)
	})

	t.Run("fails on malformed documents", func(t *testing.T) {
		t.Parallel()
		f := i18n.NewHTTPFetcher(i18n.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(ctx, srv.URL+"/i18n/broken.json")
		require.ErrorIs(t, err, i18n.ErrInvalidDocument)
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		f := i18n.NewHTTPFetcher(i18n.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(cctx, srv.URL+"/i18n/en_US.json")
		require.ErrorIs(t, err, context.Canceled)
	})
}
