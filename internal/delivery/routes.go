package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Handlers struct {
	Voice   *VoiceHandler
	Session *SessionHandler
	Static  *StaticHandler
}

// NewRouter builds the full HTTP surface. demoPath is the URL the demo clip
// is served at; it matches the audio_path handed out by init and stop.
func NewRouter(h Handlers, demoPath string, ratePerMin int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- api ---
	r.Route("/api", func(ar chi.Router) {
		ar.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(ratePerMin, time.Minute),
		)

		ar.Post("/voice", h.Voice.Voice)
		ar.Post("/speak", h.Voice.Speak)
		ar.Get("/init", h.Session.Init)
		ar.Post("/stop", h.Session.Stop)
	})

	// --- static ---
	r.With(httputil.RecoverMiddleware).Get(demoPath, h.Static.Demo)
	r.With(httputil.RecoverMiddleware).Get(generatedPrefix+"{name}", h.Static.Generated)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	return r
}
