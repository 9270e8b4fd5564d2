package middleware

import (
	"context"
	"net/http"

	"github.com/xavierca1/dental-crm/internal/entity"
)

type contextKey string

const userKey contextKey = "current-user"

// CurrentUser resolves the caller from the X-User-ID header against the
// user directory and stashes it on the request context. An absent or
// unknown id leaves the context without a user, which every permission
// predicate treats as deny — never as admin.
func CurrentUser(users entity.UserStoreInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-User-ID")
			if id != "" {
				if u, err := users.FindByID(id); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userKey, u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userKey).(*entity.User)
	return u
}
