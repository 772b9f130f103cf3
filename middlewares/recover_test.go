package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/middlewares"
	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	})

	t.Run("recovers and responds with 500", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		h := middlewares.Recover(middlewares.WithRecoverLogger(logger.New(logger.WithOutput(&logs))))(panicking)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, logs.String(), "panic recovered")
		require.Contains(t, logs.String(), "stack")
	})

	t.Run("passes the panic to a custom handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := middlewares.Recover(
			middlewares.WithRecoverDisablePrintStack(),
			middlewares.WithRecoverHandler(func(w http.ResponseWriter, _ *http.Request, pe *middlewares.PanicError) {
				got = pe
				w.WriteHeader(http.StatusTeapot)
			}),
		)(panicking)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.True(t, middlewares.IsPanicError(got))
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.Empty(t, pe.Stack)
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("re-panics on abort", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
