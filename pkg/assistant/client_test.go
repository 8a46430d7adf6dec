package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkaworks/chatgate/pkg/assistant"
)

// fakeAssistant scripts the remote API: run status follows the statuses
// slice across successive polls, sticking on the last entry.
type fakeAssistant struct {
	statuses  []string
	replyText string

	polls        int32
	messageBody  map[string]any
	runBody      map[string]any
	sawBeta      string
	sawAuth      string
	fetchedMsgs  int32
	messagesData []map[string]any
}

func (f *fakeAssistant) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/threads", func(w http.ResponseWriter, r *http.Request) {
		f.sawBeta = r.Header.Get("OpenAI-Beta")
		f.sawAuth = r.Header.Get("Authorization")
		writeJSON(t, w, map[string]any{"id": "thread_abc"})
	})

	mux.HandleFunc("POST /v1/threads/{thread}/messages", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.messageBody))
		writeJSON(t, w, map[string]any{"id": "msg_user"})
	})

	mux.HandleFunc("POST /v1/threads/{thread}/runs", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.runBody))
		writeJSON(t, w, map[string]any{"id": "run_abc", "status": f.statuses[0]})
	})

	mux.HandleFunc("GET /v1/threads/{thread}/runs/{run}", func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&f.polls, 1)) - 1
		if n >= len(f.statuses) {
			n = len(f.statuses) - 1
		}
		writeJSON(t, w, map[string]any{"id": "run_abc", "status": f.statuses[n]})
	})

	mux.HandleFunc("GET /v1/threads/{thread}/messages", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.fetchedMsgs, 1)
		data := f.messagesData
		if data == nil {
			data = []map[string]any{
				{
					"role": "assistant",
					"content": []map[string]any{
						{"type": "text", "text": map[string]any{"value": f.replyText}},
					},
				},
				{
					"role": "user",
					"content": []map[string]any{
						{"type": "text", "text": map[string]any{"value": "hello"}},
					},
				},
			}
		}
		writeJSON(t, w, map[string]any{"data": data})
	})

	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(srvURL string) *assistant.Client {
	c := assistant.NewClient(srvURL, "sk-test", "asst_test")
	c.PollInterval = time.Millisecond
	c.MaxPollAttempts = 5
	return c
}

func TestAskHappyPath(t *testing.T) {
	fake := &fakeAssistant{
		statuses:  []string{"queued", "in_progress", "completed"},
		replyText: "G'day, how can I help?",
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL)

	reply, err := client.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "G'day, how can I help?", reply)

	// The query lands verbatim as a user message and the run targets the
	// configured assistant.
	assert.Equal(t, "user", fake.messageBody["role"])
	assert.Equal(t, "hello", fake.messageBody["content"])
	assert.Equal(t, "asst_test", fake.runBody["assistant_id"])

	// Every call carries the bearer key and the beta header.
	assert.Equal(t, "Bearer sk-test", fake.sawAuth)
	assert.Equal(t, "assistants=v2", fake.sawBeta)

	assert.EqualValues(t, 3, fake.polls)
}

func TestAskRunFailed(t *testing.T) {
	fake := &fakeAssistant{statuses: []string{"failed"}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Ask(context.Background(), "hello")
	require.Error(t, err)

	var runErr *assistant.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, "failed", runErr.Status)
	assert.Contains(t, err.Error(), "failed")

	// Polling stops on the terminal status and messages are never fetched.
	assert.EqualValues(t, 1, fake.polls)
	assert.EqualValues(t, 0, fake.fetchedMsgs)
}

func TestAskRunTimeout(t *testing.T) {
	fake := &fakeAssistant{statuses: []string{"in_progress"}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL)
	client.MaxPollAttempts = 3

	_, err := client.Ask(context.Background(), "hello")
	require.ErrorIs(t, err, assistant.ErrRunTimeout)
	assert.EqualValues(t, 3, fake.polls)
	assert.EqualValues(t, 0, fake.fetchedMsgs)
}

func TestAskNoAssistantText(t *testing.T) {
	fake := &fakeAssistant{
		statuses: []string{"completed"},
		messagesData: []map[string]any{
			{
				"role": "assistant",
				"content": []map[string]any{
					{"type": "image_file", "text": map[string]any{"value": ""}},
				},
			},
		},
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL)

	reply, err := client.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, assistant.NoResponseText, reply)
}

func TestAskRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Ask(context.Background(), "hello")
	require.Error(t, err)

	var statusErr *assistant.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "create thread", statusErr.Op)
}

func TestAskContextCancelled(t *testing.T) {
	fake := &fakeAssistant{statuses: []string{"in_progress"}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := newTestClient(srv.URL)
	client.PollInterval = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Ask(ctx, "hello")
	require.ErrorIs(t, err, context.Canceled)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "voice.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"turn on the lights"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	text, err := client.Transcribe(context.Background(), []byte("RIFFfake"), "voice.wav")
	require.NoError(t, err)
	assert.Equal(t, "turn on the lights", text)
}

func TestTranscribeRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unsupported format"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Transcribe(context.Background(), []byte("junk"), "voice.ogg")
	require.Error(t, err)

	var statusErr *assistant.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
}
