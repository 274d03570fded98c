package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_letters/internal/audio"
	"github.com/Vovarama1992/voice_letters/internal/config"
	"github.com/Vovarama1992/voice_letters/internal/delivery"
	"github.com/Vovarama1992/voice_letters/internal/error_notificator"
	"github.com/Vovarama1992/voice_letters/internal/session"
	"github.com/Vovarama1992/voice_letters/internal/speech"
	"github.com/Vovarama1992/voice_letters/internal/voice"
	"github.com/Vovarama1992/voice_letters/internal/workspace"

	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGING
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// WORKSPACE
	// =========================================================================

	uploads, err := workspace.Open(cfg.UploadDir)
	if err != nil {
		log.Fatalf("uploads dir: %v", err)
	}
	generated, err := workspace.Open(cfg.GeneratedDir)
	if err != nil {
		log.Fatalf("generated dir: %v", err)
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	transcoder := audio.NewFFmpegTranscoder(cfg.FFmpegBin, cfg.TranscodeTimeout, baseLogger.Named("ffmpeg"))

	recognizer, err := speech.NewRecognizer(cfg, transcoder, uploads, baseLogger.Named("recognizer"))
	if err != nil {
		log.Fatalf("recognizer: %v", err)
	}

	synthesizer, err := speech.NewSynthesizer(cfg, baseLogger.Named("synthesizer"))
	if err != nil {
		log.Fatalf("synthesizer: %v", err)
	}

	var errInfra error_notificator.Notificator = error_notificator.NewLogInfra(baseLogger.Named("alerts"))
	if cfg.TelegramAlertToken != "" {
		tg, err := error_notificator.NewTelegramInfra(cfg.TelegramAlertToken, "", cfg.TelegramAlertChats)
		if err != nil {
			log.Printf("[alerts] telegram disabled: %v", err)
		} else {
			errInfra = tg
		}
	}
	notifier := error_notificator.NewService(errInfra, baseLogger.Named("alerts"))

	// =========================================================================
	// SERVICES
	// =========================================================================

	voiceService := voice.NewService(uploads, generated, transcoder, recognizer, synthesizer, notifier, baseLogger.Named("voice"))
	sessionService := session.NewService(cfg.DemoPath)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := delivery.NewRouter(delivery.Handlers{
		Voice:   delivery.NewVoiceHandler(voiceService, cfg.MaxUploadBytes, zl),
		Session: delivery.NewSessionHandler(sessionService),
		Static:  delivery.NewStaticHandler(cfg.DemoFile, cfg.GeneratedDir),
	}, cfg.DemoPath, cfg.RateLimitPerMin)

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		for now := range ticker.C {
			n, err := voiceService.SweepStale(now, cfg.UploadTTL, cfg.GeneratedTTL)
			if err != nil {
				log.Printf("[sweep] error: %v", err)
			}
			if n > 0 {
				log.Printf("[sweep] removed %d stale files", n)
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice_letters",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
