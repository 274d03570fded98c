package delivery

import (
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_letters/internal/speech"
	"github.com/Vovarama1992/voice_letters/internal/voice"
	json "github.com/goccy/go-json"
)

const (
	fieldAudio     = "audio"
	maxSpeakBody   = 64 << 10
	multipartInMem = 8 << 20
)

type VoiceHandler struct {
	svc            VoiceService
	maxUploadBytes int64
	log            *logger.ZapLogger
}

func NewVoiceHandler(svc VoiceService, maxUploadBytes int64, log *logger.ZapLogger) *VoiceHandler {
	return &VoiceHandler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *VoiceHandler) Voice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartInMem); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "upload too large", Service: "voice", Error: err})
			writeError(w, http.StatusRequestEntityTooLarge, "Audio file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No audio file uploaded")
		return
	}
	// multipart spill files live outside the uploads dir
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(fieldAudio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file uploaded")
		return
	}
	defer file.Close()

	res, err := h.svc.Recognize(r.Context(), voice.Upload{Body: file, Filename: header.Filename})
	if err != nil {
		var ce *voice.ClientInputError
		if errors.As(err, &ce) {
			writeError(w, http.StatusBadRequest, ce.Msg)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "voice pipeline failed", Service: "voice", Error: err})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcribed_text": res.Text,
		"answer":           res.Answer(),
	})
}

type speakRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

func (h *VoiceHandler) Speak(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSpeakBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var req speakRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	sp, err := h.svc.Speak(r.Context(), speech.SynthesisRequest{
		Text:  req.Text,
		Voice: req.Voice,
		Speed: req.Speed,
	})
	if err != nil {
		var ce *voice.ClientInputError
		if errors.As(err, &ce) {
			writeError(w, http.StatusBadRequest, ce.Msg)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "speak failed", Service: "voice", Error: err})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"audio_path": generatedPrefix + sp.FileName,
		"degraded":   sp.Degraded,
	})
}
