package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

// SessionAuthnMiddleware resolves the Authorization bearer token to a live
// session and stashes identity in the request context. Unknown and expired
// tokens both answer 401 with the same body.
func SessionAuthnMiddleware(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized,
					"invalid_token", "Missing session token")
				return
			}

			session, user, err := sessions.Authenticate(ctx, token)
			if err != nil {
				if errors.Is(err, service.ErrSessionNotFound) {
					httpx.WriteError(w, http.StatusUnauthorized,
						"invalid_token", "Session is invalid or expired")
					return
				}
				slogx.FromContext(ctx).Error("session authentication failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError,
					"server_error", "Failed to authenticate session")
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserRole, user.Role)
			ctx = context.WithValue(ctx, httpx.CtxKeySessionID, session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin callers. Must run after authn.
func RequireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpx.RoleFromCtx(r.Context()) != domain.RoleAdmin {
				httpx.WriteError(w, http.StatusForbidden,
					"access_denied", "Admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
