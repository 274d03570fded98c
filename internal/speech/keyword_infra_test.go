package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDecoder records its arguments to $FAKE_SPHINX_ARGS and prints $FAKE_SPHINX_OUT.
// Like the real decoder it logs to stderr, and $FAKE_SPHINX_FAIL is the
// final error line before exiting 1.
func fakeDecoder(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pocketsphinx_continuous")
	script := `#!/bin/sh
echo "$@" > "$FAKE_SPHINX_ARGS"
i=0
while [ $i -lt 100 ]; do
  echo "INFO: cmd_ln.c(696): Parsing command line: padding padding padding" >&2
  i=$((i+1))
done
if [ -n "$FAKE_SPHINX_FAIL" ]; then
  echo "$FAKE_SPHINX_FAIL" >&2
  exit 1
fi
printf "$FAKE_SPHINX_OUT"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func keywordFixture(t *testing.T) (*KeywordRecognizer, string) {
	t.Helper()

	dir := t.TempDir()
	hmm := filepath.Join(dir, "en-us")
	dict := filepath.Join(dir, "cmudict-en-us.dict")
	require.NoError(t, os.Mkdir(hmm, 0755))
	require.NoError(t, os.WriteFile(dict, []byte("a AH\n"), 0644))

	args := filepath.Join(dir, "args.txt")
	t.Setenv("FAKE_SPHINX_ARGS", args)

	r := NewKeywordRecognizer(KeywordOptions{
		Bin:       fakeDecoder(t),
		HMM:       hmm,
		Dict:      dict,
		Keyphrase: "a b c",
		Threshold: 1e-20,
		Timeout:   5 * time.Second,
	}, zap.NewNop())
	return r, args
}

func TestKeywordRecognizer_ConcatenatesSpots(t *testing.T) {
	r, argsFile := keywordFixture(t)
	t.Setenv("FAKE_SPHINX_OUT", `a\n\nb \nc\n`)

	res, err := r.Recognize(context.Background(), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Text)
	assert.True(t, res.Detected)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-infile clip.wav")
	assert.Contains(t, string(args), "-kws_threshold 1e-20")
	assert.Contains(t, string(args), "-keyphrase a b c")
	assert.NotContains(t, string(args), "-lm")
}

func TestKeywordRecognizer_NothingDetected(t *testing.T) {
	r, _ := keywordFixture(t)
	t.Setenv("FAKE_SPHINX_OUT", "")

	res, err := r.Recognize(context.Background(), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
	assert.False(t, res.Detected)
}

func TestKeywordRecognizer_DecoderFailure(t *testing.T) {
	r, _ := keywordFixture(t)
	t.Setenv("FAKE_SPHINX_FAIL", "ERROR: cannot open audio file")

	_, err := r.Recognize(context.Background(), "clip.wav")

	var re *RecognizerError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "keyword", re.Backend)
	assert.Contains(t, err.Error(), "cannot open audio file")
}

func TestKeywordRecognizer_LoadFailureCarriesDecoderLog(t *testing.T) {
	r, argsFile := keywordFixture(t)
	t.Setenv("FAKE_SPHINX_FAIL", `ERROR: "dict.c", line 195: Failed to open dictionary file`)

	_, err := r.Recognize(context.Background(), "clip.wav")

	var re *RecognizerError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, err.Error(), "Failed to open dictionary file")
	assert.LessOrEqual(t, len(err.Error()), maxDecoderLog+200)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.NotContains(t, string(args), "-logfn")
}

func TestKeywordRecognizer_ModelNotLoadable(t *testing.T) {
	r, argsFile := keywordFixture(t)
	r.hmm = filepath.Join(t.TempDir(), "missing-model")

	_, err := r.Recognize(context.Background(), "clip.wav")

	var re *RecognizerError
	require.True(t, errors.As(err, &re))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// decoder never started
	_, statErr := os.Stat(argsFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestKeywordRecognizer_DictNotLoadable(t *testing.T) {
	r, _ := keywordFixture(t)
	r.dict = filepath.Join(t.TempDir(), "missing.dict")

	_, err := r.Recognize(context.Background(), "clip.wav")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "dictionary"))
}

func TestJoinSpots(t *testing.T) {
	assert.Equal(t, "", joinSpots(nil))
	assert.Equal(t, "xyz", joinSpots([]byte("x\ny\r\nz")))
}
