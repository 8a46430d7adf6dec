package sqlite

import (
	"context"
	"database/sql"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, user_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.SessionID, mapOptionalString(m.UserID), m.Role, m.Content, m.CreatedAt)
	return err
}

func (r *messagesRepo) ListRecentMessages(
	ctx context.Context,
	sessionID string,
	limit int,
) ([]domain.Message, error) {
	// The id tiebreak keeps same-timestamp turns stable; ids are ULIDs so
	// lexical order tracks insertion order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, role, content, created_at FROM messages
		 WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var (
			m      domain.Message
			userID sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &userID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.UserID = mapNullStringPtr(userID)
		out = append(out, m)
	}
	return out, rows.Err()
}
