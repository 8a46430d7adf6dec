package service

import (
	"context"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/internal/chat/store"
	"github.com/quokkaworks/chatgate/pkg/idx"
)

type MessageService struct {
	Store store.Store
}

// Append persists one transcript entry. userID is nil for assistant turns.
func (s *MessageService) Append(
	ctx context.Context,
	sessionID string,
	userID *string,
	role string,
	content string,
) (domain.Message, error) {
	msg := domain.Message{
		ID:        idx.New().String(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Messages().CreateMessage(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// Transcript returns up to limit messages for a session in replay order
// (oldest first). The store hands back newest first; we reverse here so the
// truncation keeps the most recent entries.
func (s *MessageService) Transcript(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	recent, err := s.Store.Messages().ListRecentMessages(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, len(recent))
	for i, m := range recent {
		messages[len(recent)-1-i] = m
	}
	return messages, nil
}
