package models

import "time"

// AssessmentRecord is the output of a completed story recall flow. It is
// persisted locally until it is uploaded to the backend.
type AssessmentRecord struct {
	CreatedAt           time.Time `json:"created_at"`
	ID                  string    `json:"id"`
	StoryID             string    `json:"story_id"`
	AudioPath           string    `json:"audio_path,omitempty"`
	StoryDurationMs     int64     `json:"story_duration_ms"`
	RecordingDurationMs int64     `json:"recording_duration_ms"`
	Completed           bool      `json:"completed"`
	Uploaded            bool      `json:"uploaded"`
}

// TokenPair is the access/refresh credential pair returned by the auth
// endpoints. Both values are always stored and cleared together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsZero reports whether neither token is present.
func (t TokenPair) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}
