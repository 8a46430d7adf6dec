package service

import (
	"context"
	"log/slog"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

// Asker is the outbound assistant surface ChatService depends on. The real
// client lives in pkg/assistant; tests substitute a stub.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// TurnResult carries both halves of a completed chat turn.
type TurnResult struct {
	UserMessage      domain.Message
	AssistantMessage domain.Message
}

// ChatService runs the chat turn pipeline: persist the user's message, ask
// the assistant, persist the reply, bump session activity.
type ChatService struct {
	Assistant Asker
	Messages  *MessageService
	Sessions  *SessionService
}

// Turn processes one user message end to end.
//
// Persistence is soft-fail on both sides: a transcript write error is logged
// and the turn continues, because losing a history row is better than losing
// the live answer. An assistant failure, by contrast, becomes the reply text
// so the user sees what happened; it is still recorded in the transcript.
func (s *ChatService) Turn(
	ctx context.Context,
	sessionID string,
	userID string,
	query string,
) (TurnResult, error) {
	log := slogx.FromContext(ctx)

	if query == "" {
		return TurnResult{}, ErrEmptyQuery
	}

	var result TurnResult

	// 1. Record the user's side of the turn.
	userMsg, err := s.Messages.Append(ctx, sessionID, &userID, domain.MessageRoleUser, query)
	if err != nil {
		log.Warn("failed to persist user message",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	} else {
		result.UserMessage = userMsg
	}

	// 2. Ask the assistant. Errors surface as the reply so the interactive
	// caller is never left with silence.
	reply, err := s.Assistant.Ask(ctx, query)
	if err != nil {
		log.Error("assistant request failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
		reply = "Error: " + err.Error()
	}

	// 3. Record the assistant's side.
	assistantMsg, err := s.Messages.Append(ctx, sessionID, nil, domain.MessageRoleAssistant, reply)
	if err != nil {
		log.Warn("failed to persist assistant message",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
		assistantMsg = domain.Message{
			SessionID: sessionID,
			Role:      domain.MessageRoleAssistant,
			Content:   reply,
		}
	}
	result.AssistantMessage = assistantMsg

	// 4. Activity bump, best effort.
	s.Sessions.Touch(ctx, sessionID)

	return result, nil
}
