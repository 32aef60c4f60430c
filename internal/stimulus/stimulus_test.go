package stimulus

import (
	"testing"
	"time"
)

func TestLoadCatalog(t *testing.T) {
	stories, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(stories) == 0 {
		t.Fatal("expected at least one story in the embedded catalog")
	}

	for _, s := range stories {
		if s.ID == "" {
			t.Errorf("story %q has no id", s.Title)
		}

		if s.Transcript == "" {
			t.Errorf("story %q has no transcript", s.ID)
		}

		if s.DurationSeconds <= 0 {
			t.Errorf("story %q has no duration", s.ID)
		}
	}
}

func TestFind(t *testing.T) {
	stories, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty id returns the first story", func(t *testing.T) {
		got, err := Find("")
		if err != nil {
			t.Fatal(err)
		}

		if got.ID != stories[0].ID {
			t.Fatalf("expected %q, got: %q", stories[0].ID, got.ID)
		}
	})

	t.Run("known id", func(t *testing.T) {
		got, err := Find(stories[0].ID)
		if err != nil {
			t.Fatal(err)
		}

		if got.Duration() != time.Duration(got.DurationSeconds)*time.Second {
			t.Fatalf("inconsistent duration for %q", got.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := Find("no_such_story")
		if err == nil {
			t.Fatal("expected an error for an unknown story id")
		}
	})
}
