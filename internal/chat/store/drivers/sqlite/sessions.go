package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, started_at, last_active_at, client_info)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.StartedAt, s.LastActiveAt, mapStringNull(s.ClientInfo))
	return err
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var (
		s          domain.Session
		clientInfo sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, started_at, last_active_at, client_info FROM sessions WHERE id = ?`,
		id).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.LastActiveAt, &clientInfo)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.ClientInfo = mapNullString(clientInfo)
	return s, nil
}

func (r *sessionsRepo) TouchSession(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_active_at = ? WHERE id = ?`, at, id)
	return err
}

func (r *sessionsRepo) DeleteIdleSessions(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE last_active_at < ?`, cutoff)
	return err
}
