package speech

import "context"

const (
	DefaultVoice = "alloy"
	DefaultSpeed = 1.0
)

// Recognizer turns a normalized waveform into text.
type Recognizer interface {
	Recognize(ctx context.Context, waveformPath string) (RecognitionResult, error)
}

// Synthesizer always yields a file at outPath. Failures are reported through
// SynthesisResult.Degraded, never as an error.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest, outPath string) SynthesisResult
}

type RecognitionResult struct {
	Text     string
	Detected bool
}

func NewRecognitionResult(text string) RecognitionResult {
	return RecognitionResult{Text: text, Detected: text != ""}
}

type SynthesisRequest struct {
	Text  string
	Voice string
	Speed float64
}

func (r SynthesisRequest) withDefaults(voice string) SynthesisRequest {
	if r.Voice == "" {
		r.Voice = voice
	}
	if r.Speed == 0 {
		r.Speed = DefaultSpeed
	}
	return r
}

type SynthesisResult struct {
	Path string
	// Degraded means Path holds a zero-byte placeholder instead of audio.
	Degraded bool
	Reason   error
}
