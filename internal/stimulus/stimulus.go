// Package stimulus provides the story catalog presented during recall
// assessments.
package stimulus

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed stories.yaml
var storiesFile embed.FS

var errEmptyCatalog = errors.New("the story catalog contains no stories")

// Story is a single stimulus: the material the user listens to before
// recording their recollection of it.
type Story struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Transcript string `yaml:"transcript"`
	AudioFile  string `yaml:"audio_file,omitempty"`
	// DurationSeconds is the playback length of the stimulus.
	DurationSeconds int `yaml:"duration_seconds"`
}

// Duration returns the playback length as a time.Duration.
func (s Story) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

type catalog struct {
	Stories []Story `yaml:"stories"`
}

// Load parses the embedded story catalog.
func Load() ([]Story, error) {
	b, err := storiesFile.ReadFile("stories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read story catalog: %w", err)
	}

	var c catalog

	err = yaml.Unmarshal(b, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal story catalog: %w", err)
	}

	if len(c.Stories) == 0 {
		return nil, errEmptyCatalog
	}

	return c.Stories, nil
}

// Find returns the story with the given id, or the first story in the
// catalog when id is empty.
func Find(id string) (Story, error) {
	stories, err := Load()
	if err != nil {
		return Story{}, err
	}

	if id == "" {
		return stories[0], nil
	}

	for _, s := range stories {
		if s.ID == id {
			return s, nil
		}
	}

	return Story{}, fmt.Errorf("no story with id %q in the catalog", id)
}
