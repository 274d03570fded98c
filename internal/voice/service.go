package voice

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Vovarama1992/voice_letters/internal/audio"
	"github.com/Vovarama1992/voice_letters/internal/speech"
	"github.com/Vovarama1992/voice_letters/internal/workspace"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const defaultContainer = ".webm"

var extRe = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

type Service struct {
	uploads     *workspace.Dir
	generated   *workspace.Dir
	transcoder  audio.Transcoder
	recognizer  speech.Recognizer
	synthesizer speech.Synthesizer
	notifier    Notifier
	log         *zap.Logger
}

func NewService(
	uploads *workspace.Dir,
	generated *workspace.Dir,
	transcoder audio.Transcoder,
	recognizer speech.Recognizer,
	synthesizer speech.Synthesizer,
	notifier Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		uploads:     uploads,
		generated:   generated,
		transcoder:  transcoder,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		notifier:    notifier,
		log:         log,
	}
}

// Recognize runs upload → transcode → recognize. Both the stored upload and
// its waveform are removed before Recognize returns, whatever the outcome.
func (s *Service) Recognize(ctx context.Context, in Upload) (res Result, err error) {
	if in.Body == nil {
		return Result{}, &ClientInputError{Msg: "No audio file uploaded"}
	}

	id := s.uploads.NewID()
	src := s.uploads.Path(id, containerExt(in.Filename))
	wav := s.uploads.Path(id, ".wav")
	log := s.log.With(zap.String("id", id))

	start := time.Now()
	defer func() {
		if cerr := workspace.Remove(src, wav); cerr != nil {
			log.Warn("cleanup failed", zap.Error(cerr))
		}
		log.Info("voice request done",
			zap.Duration("took", time.Since(start)),
			zap.Bool("ok", err == nil),
		)
		if err != nil {
			// alerting must not hold up the response
			go s.notifier.Notify(context.WithoutCancel(ctx), err, fmt.Sprintf("upload %s", filepath.Base(src)))
		}
	}()

	n, err := s.uploads.Save(src, in.Body)
	if err != nil {
		return Result{}, fmt.Errorf("save upload: %w", err)
	}
	log.Info("upload saved", zap.String("size", humanize.Bytes(uint64(n))))

	if err := s.transcoder.Transcode(ctx, src, wav); err != nil {
		log.Error("transcode failed", zap.Error(err))
		return Result{}, err
	}

	rec, err := s.recognizer.Recognize(ctx, wav)
	if err != nil {
		log.Error("recognize failed", zap.Error(err))
		return Result{}, err
	}

	text := strings.TrimSpace(rec.Text)
	log.Info("recognized", zap.String("text", text))

	return Result{Text: text, Detected: text != ""}, nil
}

// Speak synthesizes req into the generated directory. The only error is a
// ClientInputError; synthesis failures come back as a degraded Speech.
func (s *Service) Speak(ctx context.Context, req speech.SynthesisRequest) (Speech, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Speech{}, &ClientInputError{Msg: "No text provided"}
	}

	out := s.generated.Path(s.generated.NewID(), ".mp3")
	res := s.synthesizer.Synthesize(ctx, req, out)
	if res.Degraded {
		s.log.Warn("speech degraded", zap.String("path", out), zap.Error(res.Reason))
	}

	return Speech{SynthesisResult: res, FileName: filepath.Base(res.Path)}, nil
}

// SweepStale removes upload leftovers older than uploadTTL and synthesized
// files older than generatedTTL.
func (s *Service) SweepStale(now time.Time, uploadTTL, generatedTTL time.Duration) (int, error) {
	a, errA := s.uploads.Sweep(uploadTTL, now)
	b, errB := s.generated.Sweep(generatedTTL, now)
	return a + b, errors.Join(errA, errB)
}

func containerExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extRe.MatchString(ext) {
		return defaultContainer
	}
	if ext == ".wav" {
		// keep the source distinct from the normalized output
		return ".src.wav"
	}
	return ext
}
