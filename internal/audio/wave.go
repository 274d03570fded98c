package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// Inspect reads the header of a WAV file.
func Inspect(path string) (WaveInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WaveInfo{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return WaveInfo{}, fmt.Errorf("read wav header: %w", err)
	}
	if d.NumChans == 0 || d.SampleRate == 0 {
		return WaveInfo{}, fmt.Errorf("not a wav file: %s", path)
	}

	dur, err := d.Duration()
	if err != nil {
		return WaveInfo{}, fmt.Errorf("wav duration: %w", err)
	}

	return WaveInfo{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		PCM:        d.WavAudioFormat == wavFormatPCM,
		Duration:   dur,
	}, nil
}
