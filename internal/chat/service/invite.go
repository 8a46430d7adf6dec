// Package service implements the business logic for the chat gateway:
// invite minting and redemption, session restoration, transcript
// persistence, the chat turn pipeline, and background housekeeping.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/internal/chat/store"
	"github.com/quokkaworks/chatgate/pkg/cryptox"
	"github.com/quokkaworks/chatgate/pkg/idx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInviteNotFound       = errors.New("invite not found or expired")
	ErrInviteAlreadyUsed    = errors.New("invite has already been used")
)

// DefaultInviteTTL is how long a freshly minted invite stays redeemable.
const DefaultInviteTTL = 7 * 24 * time.Hour

// MintedInvite pairs the stored record with the one-time plaintext token.
// The token is never persisted; this is the only moment it exists.
type MintedInvite struct {
	Invite domain.Invite
	Token  string
}

// RedeemedSession is the result of a successful invite redemption: the
// resolved account and a fresh session whose id is the bearer token.
type RedeemedSession struct {
	User    domain.User
	Session domain.Session
}

type InviteService struct {
	Store store.Store
}

// MintInvite creates a new single-use invite, optionally bound to an email
// for bookkeeping. Only admins reach this path; the handler enforces that.
func (s *InviteService) MintInvite(
	ctx context.Context,
	email string,
	issuedBy string,
	ttl time.Duration,
) (MintedInvite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate TTL, defaulting when unset.
	if ttl == 0 {
		ttl = DefaultInviteTTL
	}
	if ttl < 0 {
		log.Warn("attempted to mint invite with negative ttl",
			slog.Duration("ttl", ttl),
		)
		return MintedInvite{}, ErrInvalidInviteRequest
	}

	// 2. Generate the random token.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return MintedInvite{}, err
	}

	// 3. Fingerprint and store; the database never holds the plaintext.
	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        idx.New().String(),
		Email:     email,
		TokenHash: cryptox.FingerprintToken(token),
		IssuedBy:  issuedBy,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return MintedInvite{}, err
	}

	log.Info("invite minted",
		slog.String("invite_id", invite.ID),
		slog.String("issued_by", issuedBy),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return MintedInvite{Invite: invite, Token: token}, nil
}

// RedeemInvite exchanges a valid invite token for an account and a new
// session. The whole exchange runs in one transaction with a conditional
// mark-used so concurrent redemptions of the same token cannot both win.
//
// Account resolution: an existing user with the given email is logged in;
// otherwise a new account is created. The first account ever created is
// promoted to admin.
func (s *InviteService) RedeemInvite(
	ctx context.Context,
	token string,
	email string,
	clientInfo string,
) (RedeemedSession, error) {
	log := slogx.FromContext(ctx)

	if token == "" || email == "" {
		return RedeemedSession{}, ErrInvalidInviteRequest
	}

	fingerprint := cryptox.FingerprintToken(token)
	now := time.Now().UTC()

	var result RedeemedSession
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Look up an unused, unexpired invite by fingerprint.
		invite, err := tx.Invites().GetActiveInviteByTokenHash(ctx, fingerprint, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("invite redemption with unknown or expired token")
				return ErrInviteNotFound
			}
			log.Error("failed to fetch invite", slog.Any("error", err))
			return err
		}

		// 2. Resolve the account: existing email logs in, otherwise create.
		user, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			if err := tx.Users().TouchLastLogin(ctx, user.ID, now); err != nil {
				log.Error("failed to touch last login",
					slog.String("user_id", user.ID),
					slog.Any("error", err),
				)
				return err
			}
			user.LastLoginAt = now

		case errors.Is(err, store.ErrNotFound):
			role := domain.RoleMember
			adminExists, err := tx.Users().AdminExists(ctx)
			if err != nil {
				log.Error("failed to check for admin", slog.Any("error", err))
				return err
			}
			if !adminExists {
				role = domain.RoleAdmin
			}

			user = domain.User{
				ID:          idx.New().String(),
				Email:       email,
				Role:        role,
				CreatedAt:   now,
				LastLoginAt: now,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				log.Error("failed to create user", slog.Any("error", err))
				return err
			}

		default:
			log.Error("failed to fetch user", slog.Any("error", err))
			return err
		}

		// 3. Consume the invite. The update is conditional on used_at still
		// being NULL; losing the race surfaces as already-used.
		if err := tx.Invites().MarkInviteUsed(ctx, invite.ID, user.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("invite consumed concurrently",
					slog.String("invite_id", invite.ID),
				)
				return ErrInviteAlreadyUsed
			}
			log.Error("failed to mark invite used",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
			return err
		}

		// 4. Open the session. Its id is the opaque bearer token.
		session := domain.Session{
			ID:           idx.New().String(),
			UserID:       user.ID,
			StartedAt:    now,
			LastActiveAt: now,
			ClientInfo:   clientInfo,
		}
		if err := tx.Sessions().CreateSession(ctx, session); err != nil {
			log.Error("failed to create session",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return err
		}

		result = RedeemedSession{User: user, Session: session}
		return nil
	})
	if err != nil {
		return RedeemedSession{}, err
	}

	log.Info("invite redeemed",
		slog.String("user_id", result.User.ID),
		slog.String("role", result.User.Role),
	)

	return result, nil
}

// ListInvites returns the most recent invites for the admin surface.
func (s *InviteService) ListInvites(ctx context.Context, limit int) ([]domain.Invite, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Store.Invites().ListInvites(ctx, limit)
}
