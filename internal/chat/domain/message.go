package domain

import "time"

// Message roles. Assistant-authored messages carry no user id.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one immutable transcript entry. Messages are never updated or
// deleted; replay order is created_at ascending.
type Message struct {
	ID        string
	SessionID string
	UserID    *string // nil for assistant-authored messages
	Role      string
	Content   string
	CreatedAt time.Time
}
