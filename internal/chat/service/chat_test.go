package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quokkaworks/chatgate/internal/chat/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubAsker scripts the assistant without any network.
type stubAsker struct {
	reply string
	err   error

	gotQuery string
	calls    int
}

func (s *stubAsker) Ask(_ context.Context, query string) (string, error) {
	s.calls++
	s.gotQuery = query
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newChatService(t *testing.T) (*ChatService, *stubAsker, domain.User, domain.Session) {
	t.Helper()

	st := newTestStore(t)
	user, session := seedSession(t, st, time.Now().UTC())

	asker := &stubAsker{reply: "the answer"}
	svc := &ChatService{
		Assistant: asker,
		Messages:  &MessageService{Store: st},
		Sessions:  &SessionService{Store: st},
	}
	return svc, asker, user, session
}

func TestChatTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("persists both sides of the turn", func(t *testing.T) {
		svc, asker, user, session := newChatService(t)

		res, err := svc.Turn(ctx, session.ID, user.ID, "what is the time?")
		require.NoError(t, err)
		require.Equal(t, "what is the time?", asker.gotQuery)
		require.Equal(t, "the answer", res.AssistantMessage.Content)
		require.Equal(t, domain.MessageRoleAssistant, res.AssistantMessage.Role)

		transcript, err := svc.Messages.Transcript(ctx, session.ID, 10)
		require.NoError(t, err)
		require.Len(t, transcript, 2)
		require.Equal(t, domain.MessageRoleUser, transcript[0].Role)
		require.Equal(t, "what is the time?", transcript[0].Content)
		require.Equal(t, user.ID, *transcript[0].UserID)
		require.Equal(t, domain.MessageRoleAssistant, transcript[1].Role)
		require.Nil(t, transcript[1].UserID)
	})

	t.Run("assistant failure becomes the reply and is recorded", func(t *testing.T) {
		svc, asker, user, session := newChatService(t)
		asker.err = errors.New("run ended with status: failed")

		res, err := svc.Turn(ctx, session.ID, user.ID, "hello")
		require.NoError(t, err)
		require.Contains(t, res.AssistantMessage.Content, "Error:")
		require.Contains(t, res.AssistantMessage.Content, "failed")

		transcript, err := svc.Messages.Transcript(ctx, session.ID, 10)
		require.NoError(t, err)
		require.Len(t, transcript, 2)
		require.Contains(t, transcript[1].Content, "Error:")
	})

	t.Run("empty query rejected without calling the assistant", func(t *testing.T) {
		svc, asker, user, session := newChatService(t)

		_, err := svc.Turn(ctx, session.ID, user.ID, "")
		require.ErrorIs(t, err, ErrEmptyQuery)
		require.Zero(t, asker.calls)
	})

	t.Run("turn bumps session activity", func(t *testing.T) {
		svc, _, user, session := newChatService(t)

		before, err := svc.Sessions.Store.Sessions().GetSessionByID(ctx, session.ID)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = svc.Turn(ctx, session.ID, user.ID, "bump")
		require.NoError(t, err)

		after, err := svc.Sessions.Store.Sessions().GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		require.True(t, after.LastActiveAt.After(before.LastActiveAt))
	})
}
