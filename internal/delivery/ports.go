package delivery

import (
	"context"

	"github.com/Vovarama1992/voice_letters/internal/session"
	"github.com/Vovarama1992/voice_letters/internal/speech"
	"github.com/Vovarama1992/voice_letters/internal/voice"
)

type VoiceService interface {
	Recognize(ctx context.Context, in voice.Upload) (voice.Result, error)
	Speak(ctx context.Context, req speech.SynthesisRequest) (voice.Speech, error)
}

type SessionService interface {
	Start() session.Session
	Stop() string
}
