package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultDeepgramURL = "https://api.deepgram.com"

type DeepgramRecognizer struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
	log      *zap.Logger
}

func NewDeepgramRecognizer(apiKey, baseURL, language string, client *http.Client, log *zap.Logger) *DeepgramRecognizer {
	if baseURL == "" {
		baseURL = defaultDeepgramURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DeepgramRecognizer{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		client:   client,
		log:      log,
	}
}

func (c *DeepgramRecognizer) Recognize(ctx context.Context, waveformPath string) (RecognitionResult, error) {
	if c.apiKey == "" {
		return RecognitionResult{}, c.fail(ErrMissingCredential)
	}

	f, err := os.Open(waveformPath)
	if err != nil {
		return RecognitionResult{}, c.fail(fmt.Errorf("open waveform: %w", err))
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", "nova-2")
	q.Set("smart_format", "true")
	if c.language != "" {
		q.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/listen?"+q.Encode(), f)
	if err != nil {
		return RecognitionResult{}, c.fail(err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.client.Do(req)
	if err != nil {
		return RecognitionResult{}, c.fail(fmt.Errorf("deepgram request: %w", err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return RecognitionResult{}, c.fail(fmt.Errorf("deepgram status %d: %s", resp.StatusCode, body))
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return RecognitionResult{}, c.fail(fmt.Errorf("decode deepgram: %w", err))
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		c.log.Info("deepgram returned no alternatives")
		return NewRecognitionResult(""), nil
	}

	return NewRecognitionResult(parsed.Results.Channels[0].Alternatives[0].Transcript), nil
}

func (c *DeepgramRecognizer) fail(err error) error {
	return &RecognizerError{Backend: "deepgram", Err: err}
}
