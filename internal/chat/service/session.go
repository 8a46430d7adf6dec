package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/internal/chat/store"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// DefaultSessionIdleWindow is how long a session survives without activity.
const DefaultSessionIdleWindow = 7 * 24 * time.Hour

// RestoredSession is a resumed session with its owner and the transcript
// tail in replay (ascending) order.
type RestoredSession struct {
	Session  domain.Session
	User     domain.User
	Messages []domain.Message
}

type SessionService struct {
	Store store.Store

	// IdleWindow overrides the idle expiry when non-zero.
	IdleWindow time.Duration

	// HistoryLimit caps how many messages Restore replays. Zero means the
	// default of 50.
	HistoryLimit int
}

func (s *SessionService) idleWindow() time.Duration {
	if s.IdleWindow > 0 {
		return s.IdleWindow
	}
	return DefaultSessionIdleWindow
}

func (s *SessionService) historyLimit() int {
	if s.HistoryLimit > 0 {
		return s.HistoryLimit
	}
	return 50
}

// Authenticate resolves a bearer token (the session id) to a live session
// and its owner. Expired and unknown tokens are indistinguishable to the
// caller.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Session, domain.User, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Session{}, domain.User{}, ErrSessionNotFound
	}

	now := time.Now().UTC()

	// 1. Load the session.
	session, err := s.Store.Sessions().GetSessionByID(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, domain.User{}, ErrSessionNotFound
		}
		log.Error("failed to fetch session", slog.Any("error", err))
		return domain.Session{}, domain.User{}, err
	}

	// 2. Reject idle-expired sessions. Housekeeping deletes them eventually,
	// but correctness cannot wait for the sweep.
	if session.Expired(now, s.idleWindow()) {
		log.Info("rejected idle-expired session",
			slog.String("session_id", session.ID),
			slog.Time("last_active_at", session.IdleSince()),
		)
		return domain.Session{}, domain.User{}, ErrSessionNotFound
	}

	// 3. Load the owner.
	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Orphaned session; treat as expired.
			return domain.Session{}, domain.User{}, ErrSessionNotFound
		}
		log.Error("failed to fetch session owner", slog.Any("error", err))
		return domain.Session{}, domain.User{}, err
	}

	return session, user, nil
}

// Restore resumes a session from its bearer token, replaying the transcript
// tail alongside the authenticated identity.
func (s *SessionService) Restore(ctx context.Context, token string) (RestoredSession, error) {
	log := slogx.FromContext(ctx)

	session, user, err := s.Authenticate(ctx, token)
	if err != nil {
		return RestoredSession{}, err
	}

	// Replay the transcript tail: fetch newest first, then reverse so the
	// caller renders oldest to newest.
	recent, err := s.Store.Messages().ListRecentMessages(ctx, session.ID, s.historyLimit())
	if err != nil {
		log.Error("failed to fetch transcript", slog.Any("error", err))
		return RestoredSession{}, err
	}
	messages := make([]domain.Message, len(recent))
	for i, m := range recent {
		messages[len(recent)-1-i] = m
	}

	return RestoredSession{Session: session, User: user, Messages: messages}, nil
}

// Touch bumps the session's activity timestamp. Failure is logged but never
// fails the caller's operation; a stale timestamp only shortens the idle
// window, it cannot corrupt anything.
func (s *SessionService) Touch(ctx context.Context, sessionID string) {
	if err := s.Store.Sessions().TouchSession(ctx, sessionID, time.Now().UTC()); err != nil {
		slogx.FromContext(ctx).Warn("failed to touch session",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}
