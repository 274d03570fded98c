package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultElevenLabsURL = "https://api.elevenlabs.io"

type ElevenLabsSynthesizer struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewElevenLabsSynthesizer(apiKey, voiceID, baseURL string, timeout time.Duration, log *zap.Logger) *ElevenLabsSynthesizer {
	if baseURL == "" {
		baseURL = defaultElevenLabsURL
	}
	return &ElevenLabsSynthesizer{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// TEXT → SPEECH
func (c *ElevenLabsSynthesizer) Synthesize(ctx context.Context, req SynthesisRequest, outPath string) SynthesisResult {
	req = req.withDefaults(c.voiceID)

	if c.apiKey == "" {
		return degrade(c.log, outPath, ErrMissingCredential)
	}

	payload, err := json.Marshal(map[string]any{
		"text":           req.Text,
		"voice_settings": map[string]float64{"speed": req.Speed},
	})
	if err != nil {
		return degrade(c.log, outPath, err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, req.Voice)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return degrade(c.log, outPath, err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return degrade(c.log, outPath, fmt.Errorf("elevenlabs request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return degrade(c.log, outPath, fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, b))
	}

	if _, err := writeAudio(outPath, resp.Body); err != nil {
		return degrade(c.log, outPath, fmt.Errorf("stream speech: %w", err))
	}

	return SynthesisResult{Path: outPath}
}
