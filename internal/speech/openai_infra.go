package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/voice_letters/internal/audio"
	"github.com/Vovarama1992/voice_letters/internal/workspace"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient returns a client that reports itself unconfigured when
// apiKey is empty. baseURL may be empty.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	if apiKey == "" {
		return &OpenAIClient{}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClient) configured() bool {
	return c != nil && c.client != nil
}

// === STT ===

// WhisperRecognizer normalizes the waveform into a file it owns, sends it to
// the transcription API and deletes that file afterwards.
type WhisperRecognizer struct {
	openai     *OpenAIClient
	language   string
	timeout    time.Duration
	transcoder audio.Transcoder
	scratch    *workspace.Dir
	log        *zap.Logger
}

func NewWhisperRecognizer(
	client *OpenAIClient,
	language string,
	timeout time.Duration,
	transcoder audio.Transcoder,
	scratch *workspace.Dir,
	log *zap.Logger,
) *WhisperRecognizer {
	return &WhisperRecognizer{
		openai:     client,
		language:   language,
		timeout:    timeout,
		transcoder: transcoder,
		scratch:    scratch,
		log:        log,
	}
}

func (r *WhisperRecognizer) Recognize(ctx context.Context, waveformPath string) (RecognitionResult, error) {
	if !r.openai.configured() {
		return RecognitionResult{}, &RecognizerError{Backend: "openai", Err: ErrMissingCredential}
	}

	owned := r.scratch.Path(r.scratch.NewID(), ".wav")
	defer func() {
		if err := workspace.Remove(owned); err != nil {
			r.log.Warn("remove whisper waveform", zap.String("path", owned), zap.Error(err))
		}
	}()

	if err := r.transcoder.Transcode(ctx, waveformPath, owned); err != nil {
		return RecognitionResult{}, &RecognizerError{Backend: "openai", Err: err}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := r.openai.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: owned,
		Language: r.language,
	})
	r.log.Info("whisper done", zap.Duration("took", time.Since(start)), zap.Error(err))
	if err != nil {
		return RecognitionResult{}, &RecognizerError{Backend: "openai", Err: fmt.Errorf("transcription: %w", err)}
	}

	return NewRecognitionResult(resp.Text), nil
}

// === TTS ===

type OpenAISynthesizer struct {
	openai  *OpenAIClient
	timeout time.Duration
	log     *zap.Logger
}

func NewOpenAISynthesizer(client *OpenAIClient, timeout time.Duration, log *zap.Logger) *OpenAISynthesizer {
	return &OpenAISynthesizer{openai: client, timeout: timeout, log: log}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, req SynthesisRequest, outPath string) SynthesisResult {
	req = req.withDefaults(DefaultVoice)

	if !s.openai.configured() {
		return degrade(s.log, outPath, ErrMissingCredential)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.log.Info("tts request",
		zap.String("text", preview(req.Text, 50)),
		zap.String("voice", req.Voice),
		zap.Float64("speed", req.Speed),
	)

	resp, err := s.openai.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          req.Speed,
	})
	if err != nil {
		return degrade(s.log, outPath, fmt.Errorf("openai speech: %w", err))
	}
	defer resp.Close()

	if _, err := writeAudio(outPath, resp); err != nil {
		return degrade(s.log, outPath, fmt.Errorf("stream speech: %w", err))
	}

	return SynthesisResult{Path: outPath}
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
