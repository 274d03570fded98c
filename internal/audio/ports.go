package audio

import (
	"context"
	"time"
)

// Target format for everything handed to a recognizer.
const (
	SampleRate = 16000
	Channels   = 1
	BitDepth   = 16
)

type Transcoder interface {
	// Transcode converts inputPath into a mono 16 kHz 16-bit PCM WAV at outputPath,
	// overwriting it if present.
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// WaveInfo describes a decoded WAV header.
type WaveInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	PCM        bool
	Duration   time.Duration
}

// Normalized reports whether the wave matches the recognizer input format.
func (w WaveInfo) Normalized() bool {
	return w.PCM && w.SampleRate == SampleRate && w.Channels == Channels && w.BitDepth == BitDepth
}
