package route

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"calendarcorp/src-server/utils"
)

type ActorCtxKeyType string

const (
	ActorCtxKey     ActorCtxKeyType = "actor"
	ActorHeaderName string          = "X-Admin-User"
	defaultActor    string          = "admin"
)

// AuthMiddleware lets a request through when it carries the admin bearer
// token. The acting user, taken from the X-Admin-User header, is stored in the
// request context for the audit columns.
func AuthMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		adminToken := as.Config.GetAdminToken()
		if adminToken == "" {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Admin API is disabled"))
			return
		}

		// extract bearer token from header
		token := func() string {
			header := r.Header.Get("Authorization")
			if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
				return ""
			}
			return strings.TrimSpace(header[7:])
		}()
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Bearer token not found"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		actor := utils.CleanupString(r.Header.Get(ActorHeaderName))
		if actor == "" {
			actor = defaultActor
		}
		ctx := context.WithValue(r.Context(), ActorCtxKey, actor)
		next(w, r.WithContext(ctx))
	}
}

func actorFrom(r *http.Request) string {
	if actor, ok := r.Context().Value(ActorCtxKey).(string); ok {
		return actor
	}
	return defaultActor
}
