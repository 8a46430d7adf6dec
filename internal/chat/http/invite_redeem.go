package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type InviteRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation Endpoint
//	@Description	Redeem an invitation token for an account and a fresh chat session.
//	@Description	An existing account with the same email is logged in; otherwise one is created.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RedeemInviteRequest		true	"invite_token, email, optional client_info"
//	@Success		200		{object}	RedeemInviteResponse	"session_token, user, started_at"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/v1/invites/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RedeemInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON body")
		return
	}

	if req.InviteToken == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "invite_token is required")
		return
	}
	if req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "email is required")
		return
	}

	res, err := h.InviteService.RedeemInvite(ctx, req.InviteToken, req.Email, req.ClientInfo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_grant", "Invite token is invalid or expired")
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_grant", "Invite has already been used")
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Invalid invite redemption parameters")
		default:
			log.Error("failed to redeem invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError,
				"server_error", "Failed to redeem invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RedeemInviteResponse{
		SessionToken: res.Session.ID,
		User: UserInfo{
			ID:    res.User.ID,
			Email: res.User.Email,
			Role:  res.User.Role,
		},
		StartedAt: res.Session.StartedAt,
	})
}
