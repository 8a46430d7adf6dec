package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type InviteMintHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Mint Invitation Endpoint
//	@Description	Create a new single-use invite token. The plaintext token appears only in this response.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MintInviteRequest	true	"optional email binding and ttl_hours"
//	@Success		201		{object}	MintInviteResponse	"invite_id, invite_token, expires_at"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/mint [post].
func (h *InviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req MintInviteRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Invalid JSON body")
			return
		}
	}

	minted, err := h.InviteService.MintInvite(ctx,
		req.Email,
		httpx.UserIDFromCtx(ctx),
		time.Duration(req.TTLHours)*time.Hour,
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInviteRequest) {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "Invalid invite parameters")
			return
		}
		log.Error("failed to mint invite", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to mint invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MintInviteResponse{
		InviteID:    minted.Invite.ID,
		InviteToken: minted.Token,
		ExpiresAt:   minted.Invite.ExpiresAt,
	})
}
