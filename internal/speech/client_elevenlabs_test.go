package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestElevenLabsSynthesizer(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Text          string             `json:"text"`
		VoiceSettings map[string]float64 `json:"voice_settings"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	s := NewElevenLabsSynthesizer("xi-key", "voice-1", srv.URL, 5*time.Second, zap.NewNop())
	out := filepath.Join(t.TempDir(), "r.mp3")
	res := s.Synthesize(context.Background(), SynthesisRequest{Text: "hi", Speed: 1.1}, out)

	require.False(t, res.Degraded, "%v", res.Reason)
	assert.Equal(t, "/v1/text-to-speech/voice-1", gotPath)
	assert.Equal(t, "hi", gotBody.Text)
	assert.Equal(t, 1.1, gotBody.VoiceSettings["speed"])

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(b))
}

func TestElevenLabsSynthesizer_Degrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	for name, s := range map[string]*ElevenLabsSynthesizer{
		"remote failure": NewElevenLabsSynthesizer("xi-key", "v", srv.URL, time.Second, zap.NewNop()),
		"no credential":  NewElevenLabsSynthesizer("", "v", srv.URL, time.Second, zap.NewNop()),
	} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "r.mp3")
			res := s.Synthesize(context.Background(), SynthesisRequest{Text: "hi"}, out)
			assert.True(t, res.Degraded)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Zero(t, info.Size())
		})
	}

	res := NewElevenLabsSynthesizer("", "v", srv.URL, time.Second, zap.NewNop()).
		Synthesize(context.Background(), SynthesisRequest{Text: "hi"}, filepath.Join(t.TempDir(), "x.mp3"))
	assert.True(t, errors.Is(res.Reason, ErrMissingCredential))
}
