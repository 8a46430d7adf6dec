package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyUserRole  ctxKey = "user_role"
	CtxKeySessionID ctxKey = "session_id"
)

// UserIDFromCtx returns the authenticated user id, or "" when anonymous.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the authenticated user's role, or "" when anonymous.
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserRole).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromCtx returns the restored session id, or "" when anonymous.
func SessionIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}
