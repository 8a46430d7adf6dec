package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/internal/chat/store"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, email, token_hash, issued_by, expires_at, used_at, used_by, created_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, email, token_hash, issued_by, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, mapStringNull(inv.Email), inv.TokenHash, mapStringNull(inv.IssuedBy),
		inv.ExpiresAt, inv.CreatedAt)
	return err
}

func (r *invitesRepo) GetActiveInviteByTokenHash(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites
		 WHERE token_hash = ? AND used_at IS NULL AND expires_at > ?`,
		hash, now)
	return scanInvite(row.Scan)
}

// MarkInviteUsed is a conditional update: the WHERE used_at IS NULL guard
// means that of two concurrent redemptions only one observes a row change,
// closing the read-then-write race on single-use tokens.
func (r *invitesRepo) MarkInviteUsed(
	ctx context.Context,
	inviteID, usedByUserID string,
	at time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET used_at = ?, used_by = ? WHERE id = ? AND used_at IS NULL`,
		at, mapStringNull(usedByUserID), inviteID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) ListInvites(ctx context.Context, limit int) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE expires_at <= ?`, now)
	return err
}

func scanInvite(scan func(dest ...any) error) (domain.Invite, error) {
	var (
		inv      domain.Invite
		email    sql.NullString
		issuedBy sql.NullString
		usedAt   sql.NullTime
		usedBy   sql.NullString
	)
	err := scan(&inv.ID, &email, &inv.TokenHash, &issuedBy, &inv.ExpiresAt, &usedAt, &usedBy, &inv.CreatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Email = mapNullString(email)
	inv.IssuedBy = mapNullString(issuedBy)
	inv.UsedAt = mapNullTimePtr(usedAt)
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}
