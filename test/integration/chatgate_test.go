package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chathttp "github.com/quokkaworks/chatgate/internal/chat/http"
	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/internal/chat/store/drivers/sqlite"
	"github.com/quokkaworks/chatgate/pkg/assistant"
)

// newFakeAssistant stands in for the hosted assistant API: every run
// completes immediately and the reply echoes the user's message.
func newFakeAssistant(t *testing.T) *httptest.Server {
	t.Helper()

	var lastUserMessage string
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/threads", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "thread_1"})
	})
	mux.HandleFunc("POST /v1/threads/{thread}/messages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		lastUserMessage = body.Content
		writeJSON(t, w, map[string]any{"id": "msg_1"})
	})
	mux.HandleFunc("POST /v1/threads/{thread}/runs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "run_1", "status": "queued"})
	})
	mux.HandleFunc("GET /v1/threads/{thread}/runs/{run}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "run_1", "status": "completed"})
	})
	mux.HandleFunc("GET /v1/threads/{thread}/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"data": []map[string]any{{
			"role": "assistant",
			"content": []map[string]any{{
				"type": "text",
				"text": map[string]any{"value": "echo: " + lastUserMessage},
			}},
		}}})
	})
	mux.HandleFunc("POST /v1/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"text": "transcribed words"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// setupGateway wires the full stack with a real sqlite store and the fake
// assistant, returning the gateway base URL and a pre-minted invite token.
func setupGateway(t *testing.T) (string, string) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	upstream := newFakeAssistant(t)
	client := assistant.NewClient(upstream.URL, "sk-test", "asst_test")
	client.PollInterval = time.Millisecond

	inviteService := &service.InviteService{Store: st}
	sessionService := &service.SessionService{Store: st}
	messageService := &service.MessageService{Store: st}
	chatService := &service.ChatService{
		Assistant: client,
		Messages:  messageService,
		Sessions:  sessionService,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chathttp.NewRouter("test", st, logger, true)
	router.InviteService = inviteService
	router.SessionService = sessionService
	router.MessageService = messageService
	router.ChatService = chatService
	router.Transcriber = client
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	minted, err := inviteService.MintInvite(t.Context(), "", "", time.Hour)
	require.NoError(t, err)

	return srv.URL, minted.Token
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func redeem(t *testing.T, baseURL, inviteToken, email string) (sessionToken, role string) {
	t.Helper()

	resp := postJSON(t, baseURL+"/v1/invites/redeem", "", map[string]string{
		"invite_token": inviteToken,
		"email":        email,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		SessionToken string `json:"session_token"`
		User         struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.SessionToken)
	return out.SessionToken, out.User.Role
}

func TestFullChatFlow(t *testing.T) {
	baseURL, inviteToken := setupGateway(t)

	// Redeem the bootstrap invite; first user becomes admin.
	sessionToken, role := redeem(t, baseURL, inviteToken, "admin@example.com")
	require.Equal(t, "admin", role)

	// The same token cannot be redeemed twice.
	resp := postJSON(t, baseURL+"/v1/invites/redeem", "", map[string]string{
		"invite_token": inviteToken,
		"email":        "other@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Chat turn round trips through the assistant.
	resp = postJSON(t, baseURL+"/v1/chat", sessionToken, map[string]string{
		"message": "hello gateway",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chat struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, resp, &chat)
	require.Equal(t, "echo: hello gateway", chat.Reply)

	// Transcript holds both sides in replay order.
	resp = getWithToken(t, baseURL+"/v1/chat/transcript", sessionToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var transcript struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	decodeBody(t, resp, &transcript)
	require.Len(t, transcript.Messages, 2)
	require.Equal(t, "user", transcript.Messages[0].Role)
	require.Equal(t, "hello gateway", transcript.Messages[0].Content)
	require.Equal(t, "assistant", transcript.Messages[1].Role)

	// Session restore returns identity plus the same transcript.
	resp = getWithToken(t, baseURL+"/v1/session", sessionToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	decodeBody(t, resp, &session)
	require.Equal(t, "admin@example.com", session.User.Email)
	require.Len(t, session.Messages, 2)
}

func TestAdminInviteEndpoints(t *testing.T) {
	baseURL, inviteToken := setupGateway(t)
	adminToken, _ := redeem(t, baseURL, inviteToken, "admin@example.com")

	// Admin mints an invite for a member.
	resp := postJSON(t, baseURL+"/v1/invites/mint", adminToken, map[string]any{
		"email": "member@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var minted struct {
		InviteToken string `json:"invite_token"`
	}
	decodeBody(t, resp, &minted)
	require.NotEmpty(t, minted.InviteToken)

	// The member redeems it and lands with the member role.
	memberToken, role := redeem(t, baseURL, minted.InviteToken, "member@example.com")
	require.Equal(t, "member", role)

	// Members cannot mint or list invites.
	resp = postJSON(t, baseURL+"/v1/invites/mint", memberToken, map[string]any{})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = getWithToken(t, baseURL+"/v1/invites", memberToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin sees both invites, each marked used.
	resp = getWithToken(t, baseURL+"/v1/invites", adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Invites []struct {
			UsedAt *time.Time `json:"used_at"`
		} `json:"invites"`
	}
	decodeBody(t, resp, &list)
	require.Len(t, list.Invites, 2)
	for _, inv := range list.Invites {
		require.NotNil(t, inv.UsedAt)
	}
}

func TestAuthRequired(t *testing.T) {
	baseURL, _ := setupGateway(t)

	// No token.
	resp := postJSON(t, baseURL+"/v1/chat", "", map[string]string{"message": "hi"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage token.
	resp = postJSON(t, baseURL+"/v1/chat", "not-a-session", map[string]string{"message": "hi"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = getWithToken(t, baseURL+"/v1/session", "not-a-session")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTranscribeEndpoint(t *testing.T) {
	baseURL, inviteToken := setupGateway(t)
	sessionToken, _ := redeem(t, baseURL, inviteToken, "admin@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "voice.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("RIFFfakeaudio"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/transcribe", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Text string `json:"text"`
	}
	decodeBody(t, resp, &out)
	require.Equal(t, "transcribed words", out.Text)
}

func TestHealthEndpoints(t *testing.T) {
	baseURL, _ := setupGateway(t)

	resp, err := http.Get(baseURL + "/livez")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &health)
	require.Equal(t, "ok", health.Status)

	resp, err = http.Get(baseURL + "/readyz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ready struct {
		Status string `json:"status"`
		Checks struct {
			Database  string `json:"database"`
			Assistant string `json:"assistant"`
		} `json:"checks"`
	}
	decodeBody(t, resp, &ready)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}
