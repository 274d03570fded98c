package voice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/voice_letters/internal/error_notificator"
	"github.com/Vovarama1992/voice_letters/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stalledTelegram answers getMe and never answers sendMessage until released.
func stalledTelegram(t *testing.T) *httptest.Server {
	t.Helper()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"alerts","username":"alerts_bot"}}`))
			return
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"ok":false,"error_code":502,"description":"Bad Gateway"}`))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	return srv
}

func TestRecognize_StalledAlertDoesNotBlockResponse(t *testing.T) {
	srv := stalledTelegram(t)

	tg, err := error_notificator.NewTelegramInfra("123:abc", srv.URL+"/bot%s/%s", []int64{10})
	require.NoError(t, err)

	f := newFixture(t)
	f.rec.err = speech.ErrMissingCredential
	f.svc = NewService(f.uploads, f.generated, f.tr, f.rec, f.syn,
		error_notificator.NewService(tg, zap.NewNop()), zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Recognize(context.Background(), Upload{Body: strings.NewReader("abc")})
		done <- err
	}()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, speech.ErrMissingCredential))
	case <-time.After(2 * time.Second):
		t.Fatal("Recognize blocked on the alert channel")
	}
	f.assertUploadsEmpty(t)
}
