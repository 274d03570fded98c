package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RecognizerKeyword  = "keyword"
	RecognizerOpenAI   = "openai"
	RecognizerDeepgram = "deepgram"

	SynthesizerOpenAI     = "openai"
	SynthesizerElevenLabs = "elevenlabs"
)

// Config is read once at startup and passed into constructors.
// Nothing below cmd/ reads the environment directly.
type Config struct {
	Port string

	UploadDir    string
	GeneratedDir string
	DemoFile     string
	DemoPath     string

	UploadTTL     time.Duration
	GeneratedTTL  time.Duration
	SweepInterval time.Duration

	RateLimitPerMin int
	MaxUploadBytes  int64

	FFmpegBin        string
	TranscodeTimeout time.Duration

	Recognizer string
	Sphinx     SphinxConfig

	OpenAIKey     string
	OpenAIBaseURL string
	STTLanguage   string
	APITimeout    time.Duration

	DeepgramKey     string
	DeepgramBaseURL string

	Synthesizer       string
	ElevenLabsKey     string
	ElevenLabsVoiceID string
	ElevenLabsBaseURL string

	TelegramAlertToken string
	TelegramAlertChats []int64
}

type SphinxConfig struct {
	Bin          string
	HMM          string
	Dict         string
	Keyphrase    string
	KWSThreshold float64
	Timeout      time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{get: getenv}

	cfg := Config{
		Port:         e.str("PORT", "5001"),
		UploadDir:    e.str("UPLOAD_DIR", "uploads"),
		GeneratedDir: e.str("GENERATED_DIR", "generated"),
		DemoFile:     e.str("DEMO_FILE", "demo.mp3"),
		DemoPath:     "/demo.mp3",

		UploadTTL:     e.duration("UPLOAD_TTL", 10*time.Minute),
		GeneratedTTL:  e.duration("GENERATED_TTL", 30*time.Minute),
		SweepInterval: e.duration("SWEEP_INTERVAL", 5*time.Minute),

		RateLimitPerMin: e.int("RATE_LIMIT_PER_MIN", 120),
		MaxUploadBytes:  int64(e.int("MAX_UPLOAD_MB", 20)) << 20,

		FFmpegBin:        e.str("FFMPEG_BIN", "ffmpeg"),
		TranscodeTimeout: e.duration("TRANSCODE_TIMEOUT", 30*time.Second),

		Recognizer: strings.ToLower(e.str("RECOGNIZER", RecognizerKeyword)),
		Sphinx: SphinxConfig{
			Bin:          e.str("SPHINX_BIN", "pocketsphinx_continuous"),
			HMM:          e.str("SPHINX_HMM", "/usr/local/share/pocketsphinx/model/en-us/en-us"),
			Dict:         e.str("SPHINX_DICT", "/usr/local/share/pocketsphinx/model/en-us/cmudict-en-us.dict"),
			Keyphrase:    e.str("SPHINX_KEYPHRASE", "a b c d e f g h i j k l m n o p q r s t u v w x y z"),
			KWSThreshold: e.float("SPHINX_KWS_THRESHOLD", 1e-20),
			Timeout:      e.duration("SPHINX_TIMEOUT", 30*time.Second),
		},

		OpenAIKey:     e.get("OPENAI_API_KEY"),
		OpenAIBaseURL: e.get("OPENAI_BASE_URL"),
		STTLanguage:   e.str("STT_LANGUAGE", "en"),
		APITimeout:    e.duration("API_TIMEOUT", 60*time.Second),

		DeepgramKey:     e.get("DEEPGRAM_API_KEY"),
		DeepgramBaseURL: e.get("DEEPGRAM_BASE_URL"),

		Synthesizer:       strings.ToLower(e.str("TTS_PROVIDER", SynthesizerOpenAI)),
		ElevenLabsKey:     e.get("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: e.str("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"),
		ElevenLabsBaseURL: e.get("ELEVENLABS_BASE_URL"),

		TelegramAlertToken: e.get("TELEGRAM_ALERT_TOKEN"),
		TelegramAlertChats: e.ids("TELEGRAM_ALERT_CHATS"),
	}

	if len(e.errs) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(e.errs, "; "))
	}

	switch cfg.Recognizer {
	case RecognizerKeyword, RecognizerOpenAI, RecognizerDeepgram:
	default:
		return Config{}, fmt.Errorf("config: unknown RECOGNIZER %q", cfg.Recognizer)
	}

	switch cfg.Synthesizer {
	case SynthesizerOpenAI, SynthesizerElevenLabs:
	default:
		return Config{}, fmt.Errorf("config: unknown TTS_PROVIDER %q", cfg.Synthesizer)
	}

	return cfg, nil
}

type env struct {
	get  func(string) string
	errs []string
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.errs = append(e.errs, fmt.Sprintf("%s: invalid positive integer %q", key, v))
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		e.errs = append(e.errs, fmt.Sprintf("%s: invalid positive number %q", key, v))
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.errs = append(e.errs, fmt.Sprintf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func (e *env) ids(key string) []int64 {
	v := strings.TrimSpace(e.get(key))
	if v == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			e.errs = append(e.errs, fmt.Sprintf("%s: invalid chat id %q", key, part))
			continue
		}
		out = append(out, id)
	}
	return out
}
