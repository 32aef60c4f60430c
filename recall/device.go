package recall

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/neuroverse/neuroverse-cli/internal/stimulus"
)

// Device is the playback/recording capability driving a recall flow. The
// flow only cares about start/stop; progress is tracked by the flow's own
// ticks so a simulated device behaves identically to a real one.
type Device interface {
	StartPlayback(story stimulus.Story) error
	StopPlayback()
	StartRecording(story stimulus.Story) error
	// StopRecording finalizes the capture and returns a handle to the
	// recorded audio.
	StopRecording(at time.Time) (string, error)
}

// audioHandle derives the deterministic name for a captured response.
func audioHandle(storyID string, at time.Time) string {
	return fmt.Sprintf("%s_%d.wav", storyID, at.Unix())
}

// SimDevice is a no-op device used when no audio hardware is involved. The
// stimulus is presented as on-screen text and the "recording" is a named
// placeholder.
type SimDevice struct {
	story stimulus.Story
}

func (d *SimDevice) StartPlayback(story stimulus.Story) error {
	d.story = story
	return nil
}

func (d *SimDevice) StopPlayback() {}

func (d *SimDevice) StartRecording(story stimulus.Story) error {
	d.story = story
	return nil
}

func (d *SimDevice) StopRecording(at time.Time) (string, error) {
	return audioHandle(d.story.ID, at), nil
}

// AudioDevice plays the stimulus audio file through the system speaker.
// Response capture is delegated to the same naming scheme as SimDevice
// since microphone input is out of scope here.
type AudioDevice struct {
	stream beep.StreamSeekCloser
	story  stimulus.Story
}

func (d *AudioDevice) StartPlayback(story stimulus.Story) error {
	d.story = story

	stream, format, err := decodeAudio(story.AudioFile)
	if err != nil {
		return err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	d.stream = stream

	speaker.Play(d.stream)

	return nil
}

func (d *AudioDevice) StopPlayback() {
	if d.stream == nil {
		return
	}

	speaker.Clear()

	_ = d.stream.Close()

	d.stream = nil
}

func (d *AudioDevice) StartRecording(story stimulus.Story) error {
	d.story = story
	return nil
}

func (d *AudioDevice) StopRecording(at time.Time) (string, error) {
	return audioHandle(d.story.ID, at), nil
}

var errInvalidAudioFormat = fmt.Errorf(
	"stimulus audio must be in mp3, ogg, flac, or wav format",
)

// decodeAudio returns an audio stream for the file at path.
func decodeAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, format, err
	}

	switch filepath.Ext(path) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, format, errInvalidAudioFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, format, err
	}

	return stream, format, nil
}

// NewDevice picks the audio device when the story ships a playable file and
// falls back to the simulated one.
func NewDevice(story stimulus.Story) Device {
	if story.AudioFile == "" {
		return &SimDevice{}
	}

	if _, err := os.Stat(story.AudioFile); err != nil {
		return &SimDevice{}
	}

	return &AudioDevice{}
}
