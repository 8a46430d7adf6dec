package http

import (
	"net/http"
	"strconv"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type TranscriptHandler struct {
	MessageService *service.MessageService
}

// ServeHTTP godoc
//
//	@Summary		Transcript Endpoint
//	@Description	Return the session's most recent messages in replay (oldest first) order.
//	@Tags			Chat
//	@Produce		json
//	@Param			limit	query		int					false	"Maximum messages to return (default 50)"
//	@Success		200		{object}	TranscriptResponse	"messages"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/chat/transcript [get].
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.MessageService.Transcript(ctx, httpx.SessionIDFromCtx(ctx), limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to fetch transcript", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to fetch transcript")
		return
	}

	out := TranscriptResponse{Messages: make([]MessageInfo, 0, len(messages))}
	for _, m := range messages {
		out.Messages = append(out.Messages, MessageInfo{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
