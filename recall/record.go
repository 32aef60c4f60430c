package recall

// Phase is one discrete step of the story recall flow. Phases are strictly
// ordered and never revisited within a run.
type Phase string

const (
	PhaseInstructions Phase = "instructions"
	PhaseListening    Phase = "listening"
	PhaseRecording    Phase = "recording"
	PhaseCompleted    Phase = "completed"
)

// Record is the accumulated result of a recall flow. AudioPath stays empty
// and Completed stays false until the recording phase has been explicitly
// stopped.
type Record struct {
	StoryID             string `json:"story_id"`
	AudioPath           string `json:"audio_path,omitempty"`
	StoryDurationMs     int64  `json:"story_duration_ms"`
	RecordingDurationMs int64  `json:"recording_duration_ms"`
	Completed           bool   `json:"completed"`
}
