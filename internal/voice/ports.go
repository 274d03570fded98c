package voice

import (
	"context"
	"io"

	"github.com/Vovarama1992/voice_letters/internal/speech"
)

const (
	AnswerDetected = "✓"
	AnswerNothing  = "No letter detected"
)

type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}

// Upload is one inbound audio blob. Filename only contributes its extension.
type Upload struct {
	Body     io.Reader
	Filename string
}

type Result struct {
	Text     string
	Detected bool
}

func (r Result) Answer() string {
	if r.Detected {
		return AnswerDetected
	}
	return AnswerNothing
}

type Speech struct {
	speech.SynthesisResult
	FileName string
}

// ClientInputError marks a request the caller has to fix.
type ClientInputError struct {
	Msg string
}

func (e *ClientInputError) Error() string { return e.Msg }
