package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, rate, chans, depth, samples int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, depth, chans, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: chans, SampleRate: rate},
		Data:           make([]int, samples*chans),
		SourceBitDepth: depth,
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 200) - 100
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

// fakeFFmpeg writes a shell script that copies $FAKE_FFMPEG_SRC to its last
// argument, or fails with a diagnostic when $FAKE_FFMPEG_FAIL is set.
// $FAKE_FFMPEG_WARN is printed to stderr before copying.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := `#!/bin/sh
for a; do out="$a"; done
if [ -n "$FAKE_FFMPEG_FAIL" ]; then
  echo "Invalid data found when processing input" >&2
  exit 1
fi
if [ -n "$FAKE_FFMPEG_WARN" ]; then
  echo "$FAKE_FFMPEG_WARN" >&2
fi
cp "$FAKE_FFMPEG_SRC" "$out"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}
