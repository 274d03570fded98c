package speech

import (
	"bufio"
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

const maxDecoderLog = 2048

// KeywordRecognizer spots a fixed keyphrase with a pocketsphinx decoder
// process. No language model is loaded.
type KeywordRecognizer struct {
	bin       string
	hmm       string
	dict      string
	keyphrase string
	threshold float64
	timeout   time.Duration
	log       *zap.Logger
}

type KeywordOptions struct {
	Bin       string
	HMM       string
	Dict      string
	Keyphrase string
	Threshold float64
	Timeout   time.Duration
}

func NewKeywordRecognizer(opts KeywordOptions, log *zap.Logger) *KeywordRecognizer {
	if opts.Bin == "" {
		opts.Bin = "pocketsphinx_continuous"
	}
	return &KeywordRecognizer{
		bin:       opts.Bin,
		hmm:       opts.HMM,
		dict:      opts.Dict,
		keyphrase: opts.Keyphrase,
		threshold: opts.Threshold,
		timeout:   opts.Timeout,
		log:       log,
	}
}

func (r *KeywordRecognizer) Recognize(ctx context.Context, waveformPath string) (RecognitionResult, error) {
	if _, err := os.Stat(r.hmm); err != nil {
		return RecognitionResult{}, r.fail(fmt.Errorf("acoustic model: %w", err))
	}
	if _, err := os.Stat(r.dict); err != nil {
		return RecognitionResult{}, r.fail(fmt.Errorf("dictionary: %w", err))
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.bin,
		"-infile", waveformPath,
		"-hmm", r.hmm,
		"-dict", r.dict,
		"-keyphrase", r.keyphrase,
		"-kws_threshold", strconv.FormatFloat(r.threshold, 'g', -1, 64),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("decoder timed out after %s", r.timeout)
		}
		// the decoder logs to stderr; the reason for a failure is at the end
		if msg := logTail(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return RecognitionResult{}, r.fail(err)
	}

	text := joinSpots(stdout.Bytes())
	r.log.Info("keyword decoder output", zap.String("text", text))

	return NewRecognitionResult(text), nil
}

func (r *KeywordRecognizer) fail(err error) error {
	return &RecognizerError{Backend: "keyword", Err: err}
}

func logTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDecoderLog {
		s = s[len(s)-maxDecoderLog:]
	}
	return s
}

// joinSpots concatenates one detection per output line, in order, with no separator.
func joinSpots(out []byte) string {
	var b strings.Builder
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		b.WriteString(strings.TrimSpace(sc.Text()))
	}
	return strings.TrimSpace(b.String())
}
