package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type ChatHandler struct {
	ChatService *service.ChatService
}

// ServeHTTP godoc
//
//	@Summary		Chat Turn Endpoint
//	@Description	Send one user message and receive the assistant's reply. Both sides of the turn are
//	@Description	persisted to the session transcript. Assistant failures are returned as the reply text.
//	@Tags			Chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChatRequest			true	"message"
//	@Success		200		{object}	ChatResponse		"reply, message_id, created_at"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/chat [post].
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	result, err := h.ChatService.Turn(ctx,
		httpx.SessionIDFromCtx(ctx),
		httpx.UserIDFromCtx(ctx),
		req.Message,
	)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "message must not be empty")
			return
		}
		slogx.FromContext(ctx).Error("chat turn failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to process message")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ChatResponse{
		Reply:     result.AssistantMessage.Content,
		MessageID: result.AssistantMessage.ID,
		CreatedAt: result.AssistantMessage.CreatedAt,
	})
}
