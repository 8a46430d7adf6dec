package store

import (
	"context"
	"errors"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// a hosted Postgres later) implement this. Sub-repositories are exposed as
// methods to keep concerns tidy and to stop callers from accidentally
// nesting transactions.
type Store interface {
	Users() Users
	Invites() Invites
	Sessions() Sessions
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations like invite redemption.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during invite redemption to resolve an
	// existing account. Emails compare case-sensitively, as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// TouchLastLogin sets last_login_at; called on every successful redemption
	// for an existing account.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	// AdminExists reports whether any user currently holds the admin role.
	AdminExists(ctx context.Context) (bool, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the SHA-256 fingerprint
	// of the opaque invite token).
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetActiveInviteByTokenHash returns a not-used, not-expired invite by hash.
	GetActiveInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error)

	// MarkInviteUsed sets used_at/used_by conditionally on the invite still
	// being unused. Returns ErrNotFound when another redemption won the race,
	// which callers surface as an already-used invite.
	MarkInviteUsed(ctx context.Context, inviteID, usedByUserID string, at time.Time) error

	// ListInvites returns up to limit invites, newest first.
	ListInvites(ctx context.Context, limit int) ([]domain.Invite, error)

	// DeleteExpiredInvites is housekeeping.
	DeleteExpiredInvites(ctx context.Context, now time.Time) error
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID loads a session regardless of idleness; expiry is the
	// session manager's call.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// TouchSession bumps last_active_at.
	TouchSession(ctx context.Context, id string, at time.Time) error

	// DeleteIdleSessions removes sessions whose last activity predates cutoff.
	DeleteIdleSessions(ctx context.Context, cutoff time.Time) error
}

type Messages interface {
	// CreateMessage persists one immutable transcript entry.
	CreateMessage(ctx context.Context, m domain.Message) error

	// ListRecentMessages returns up to limit messages for a session ordered
	// newest first; callers reverse for replay.
	ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)
}
