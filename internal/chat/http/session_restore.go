package http

import (
	"errors"
	"net/http"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type SessionRestoreHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Restore Session Endpoint
//	@Description	Resume a session from its bearer token, returning the identity and the transcript tail in replay order.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	SessionResponse		"user, started_at, messages"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/session [get].
func (h *SessionRestoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	restored, err := h.SessionService.Restore(ctx, bearerToken(r))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_token", "Session is invalid or expired")
			return
		}
		slogx.FromContext(ctx).Error("failed to restore session", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to restore session")
		return
	}

	out := SessionResponse{
		User: UserInfo{
			ID:    restored.User.ID,
			Email: restored.User.Email,
			Role:  restored.User.Role,
		},
		StartedAt: restored.Session.StartedAt,
		Messages:  make([]MessageInfo, 0, len(restored.Messages)),
	}
	for _, m := range restored.Messages {
		out.Messages = append(out.Messages, MessageInfo{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
