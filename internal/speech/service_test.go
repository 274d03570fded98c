package speech

import (
	"testing"

	"github.com/Vovarama1992/voice_letters/internal/config"
	"github.com/Vovarama1992/voice_letters/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRecognizer_SelectsBackend(t *testing.T) {
	scratch, err := workspace.Open(t.TempDir())
	require.NoError(t, err)

	cases := map[string]any{
		config.RecognizerKeyword:  &KeywordRecognizer{},
		config.RecognizerOpenAI:   &WhisperRecognizer{},
		config.RecognizerDeepgram: &DeepgramRecognizer{},
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.FromEnv(func(k string) string {
				if k == "RECOGNIZER" {
					return name
				}
				return ""
			})
			require.NoError(t, err)

			r, err := NewRecognizer(cfg, &copyTranscoder{}, scratch, zap.NewNop())
			require.NoError(t, err)
			assert.IsType(t, want, r)
		})
	}

	_, err = NewRecognizer(config.Config{Recognizer: "vosk"}, nil, scratch, zap.NewNop())
	assert.Error(t, err)
}

func TestNewSynthesizer_SelectsBackend(t *testing.T) {
	s, err := NewSynthesizer(config.Config{Synthesizer: config.SynthesizerOpenAI}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &OpenAISynthesizer{}, s)

	s, err = NewSynthesizer(config.Config{Synthesizer: config.SynthesizerElevenLabs}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &ElevenLabsSynthesizer{}, s)

	_, err = NewSynthesizer(config.Config{Synthesizer: "say"}, zap.NewNop())
	assert.Error(t, err)
}
