package speech

import (
	"fmt"
	"net/http"

	"github.com/Vovarama1992/voice_letters/internal/audio"
	"github.com/Vovarama1992/voice_letters/internal/config"
	"github.com/Vovarama1992/voice_letters/internal/workspace"
	"go.uber.org/zap"
)

// NewRecognizer picks the recognizer backend named by cfg.Recognizer.
func NewRecognizer(cfg config.Config, transcoder audio.Transcoder, scratch *workspace.Dir, log *zap.Logger) (Recognizer, error) {
	switch cfg.Recognizer {
	case config.RecognizerKeyword:
		return NewKeywordRecognizer(KeywordOptions{
			Bin:       cfg.Sphinx.Bin,
			HMM:       cfg.Sphinx.HMM,
			Dict:      cfg.Sphinx.Dict,
			Keyphrase: cfg.Sphinx.Keyphrase,
			Threshold: cfg.Sphinx.KWSThreshold,
			Timeout:   cfg.Sphinx.Timeout,
		}, log.Named("keyword")), nil

	case config.RecognizerOpenAI:
		if cfg.OpenAIKey == "" {
			log.Warn("OPENAI_API_KEY not set, speech recognition requests will fail")
		}
		return NewWhisperRecognizer(
			NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL),
			cfg.STTLanguage,
			cfg.APITimeout,
			transcoder,
			scratch,
			log.Named("whisper"),
		), nil

	case config.RecognizerDeepgram:
		if cfg.DeepgramKey == "" {
			log.Warn("DEEPGRAM_API_KEY not set, speech recognition requests will fail")
		}
		return NewDeepgramRecognizer(
			cfg.DeepgramKey,
			cfg.DeepgramBaseURL,
			cfg.STTLanguage,
			&http.Client{Timeout: cfg.APITimeout},
			log.Named("deepgram"),
		), nil
	}
	return nil, fmt.Errorf("unknown recognizer %q", cfg.Recognizer)
}

// NewSynthesizer picks the TTS backend named by cfg.Synthesizer.
func NewSynthesizer(cfg config.Config, log *zap.Logger) (Synthesizer, error) {
	switch cfg.Synthesizer {
	case config.SynthesizerOpenAI:
		if cfg.OpenAIKey == "" {
			log.Warn("OPENAI_API_KEY not set, synthesis will return empty placeholder files")
		}
		return NewOpenAISynthesizer(
			NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL),
			cfg.APITimeout,
			log.Named("openai-tts"),
		), nil

	case config.SynthesizerElevenLabs:
		if cfg.ElevenLabsKey == "" {
			log.Warn("ELEVENLABS_API_KEY not set, synthesis will return empty placeholder files")
		}
		return NewElevenLabsSynthesizer(
			cfg.ElevenLabsKey,
			cfg.ElevenLabsVoiceID,
			cfg.ElevenLabsBaseURL,
			cfg.APITimeout,
			log.Named("elevenlabs"),
		), nil
	}
	return nil, fmt.Errorf("unknown synthesizer %q", cfg.Synthesizer)
}
