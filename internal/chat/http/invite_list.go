package http

import (
	"net/http"
	"strconv"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List recent invites, newest first. Token fingerprints are never returned.
//	@Tags			Invitations
//	@Produce		json
//	@Param			limit	query		int					false	"Maximum invites to return (default 50)"
//	@Success		200		{object}	ListInvitesResponse	"invites"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	invites, err := h.InviteService.ListInvites(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invites", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to list invites")
		return
	}

	out := ListInvitesResponse{Invites: make([]InviteInfo, 0, len(invites))}
	for _, inv := range invites {
		out.Invites = append(out.Invites, InviteInfo{
			ID:        inv.ID,
			Email:     inv.Email,
			IssuedBy:  inv.IssuedBy,
			ExpiresAt: inv.ExpiresAt,
			UsedAt:    inv.UsedAt,
			UsedBy:    inv.UsedBy,
			CreatedAt: inv.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
