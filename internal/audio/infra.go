package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxDiagnostic = 2048

type FFmpegTranscoder struct {
	bin     string
	timeout time.Duration
	log     *zap.Logger
}

func NewFFmpegTranscoder(bin string, timeout time.Duration, log *zap.Logger) *FFmpegTranscoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegTranscoder{bin: bin, timeout: timeout, log: log}
}

func (t *FFmpegTranscoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return &TranscodeError{Input: inputPath, Err: err}
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, t.bin,
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"-f", "wav",
		outputPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%s timed out after %s", t.bin, t.timeout)
		}
		return &TranscodeError{Input: inputPath, Output: tail(out.String()), Err: err}
	}

	info, err := Inspect(outputPath)
	if err != nil {
		return &TranscodeError{Input: inputPath, Output: tail(out.String()), Err: err}
	}
	if !info.Normalized() {
		return &TranscodeError{
			Input:  inputPath,
			Output: tail(out.String()),
			Err: fmt.Errorf("unexpected output format: %d Hz, %d ch, %d bit, pcm=%t",
				info.SampleRate, info.Channels, info.BitDepth, info.PCM),
		}
	}

	t.log.Debug("transcoded",
		zap.String("input", inputPath),
		zap.Duration("audio", info.Duration),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDiagnostic {
		return s[len(s)-maxDiagnostic:]
	}
	return s
}
