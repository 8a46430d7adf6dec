package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Transcribe converts recorded audio into text via the speech-to-text
// endpoint. The filename's extension tells the remote service the container
// format, so callers must pass one matching the bytes (e.g. "voice.wav").
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	const op = "transcribe audio"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%s: build form: %w", op, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%s: build form: %w", op, err)
	}
	if err := mw.WriteField("model", c.transcribeModel()); err != nil {
		return "", fmt.Errorf("%s: build form: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: build form: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var t transcription
	if err := json.Unmarshal(raw, &t); err != nil {
		return "", &ShapeError{Op: op, Detail: err.Error()}
	}
	return t.Text, nil
}

func (c *Client) transcribeModel() string {
	if c.TranscribeModel != "" {
		return c.TranscribeModel
	}
	return DefaultTranscribeModel
}
