package middlewares

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/langstore"
)

// VisitorCookie names the cookie that scopes server-side language storage.
const VisitorCookie = "visitor_id"

const visitorMaxAge = 365 * 24 * 60 * 60

// VisitorID returns the visitor id of r, issuing a new one on w when the
// request has none or an invalid one.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   visitorMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// RedisStore keeps the language in Redis, one key per visitor.
func RedisStore(client redis.UniversalClient, opts ...langstore.RedisOption) StoreFunc {
	return func(w http.ResponseWriter, r *http.Request) (i18n.Store, error) {
		store, err := langstore.NewRedis(client, VisitorID(w, r), opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return store, nil
	}
}
