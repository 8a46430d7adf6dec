package http

import (
	"context"
	"io"
	"net/http"

	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

// maxAudioUpload caps voice clips at 25MB, matching the remote service's
// own upload limit.
const maxAudioUpload = 25 << 20

// Transcriber is the outbound speech-to-text surface; the real client lives
// in pkg/assistant.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type TranscribeHandler struct {
	Transcriber Transcriber
}

// ServeHTTP godoc
//
//	@Summary		Transcribe Audio Endpoint
//	@Description	Convert an uploaded voice clip to text. The transcription is returned to the caller
//	@Description	for review; it is not sent to the assistant or persisted.
//	@Tags			Chat
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file				true	"Audio clip (wav, mp3, m4a, webm)"
//	@Success		200		{object}	TranscribeResponse	"text"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		502		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/transcribe [post].
func (h *TranscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Failed to read uploaded file")
		return
	}
	if len(audio) == 0 {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Uploaded file is empty")
		return
	}

	text, err := h.Transcriber.Transcribe(ctx, audio, header.Filename)
	if err != nil {
		slogx.FromContext(ctx).Error("transcription failed", "err", err)
		httpx.WriteError(w, http.StatusBadGateway,
			"upstream_error", "Failed to transcribe audio")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TranscribeResponse{Text: text})
}
