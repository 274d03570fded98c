package speech

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// degrade replaces whatever is at outPath with an empty file.
func degrade(log *zap.Logger, outPath string, reason error) SynthesisResult {
	log.Error("synthesis degraded to placeholder", zap.String("path", outPath), zap.Error(reason))

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		reason = errors.Join(reason, err)
	} else if f, err := os.Create(outPath); err != nil {
		reason = errors.Join(reason, fmt.Errorf("write placeholder: %w", err))
	} else {
		_ = f.Close()
	}

	return SynthesisResult{Path: outPath, Degraded: true, Reason: reason}
}

func writeAudio(outPath string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return 0, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = errors.New("empty audio stream")
	}
	return n, err
}
