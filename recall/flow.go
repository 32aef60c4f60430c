// Package recall drives the timed story recall assessment: the user listens
// to a stimulus story, records a retelling, and receives a structured result
// record.
package recall

import (
	"errors"
	"time"

	"github.com/neuroverse/neuroverse-cli/internal/stimulus"
	"github.com/neuroverse/neuroverse-cli/internal/timeutil"
)

// Event signals a phase boundary reached by a tick.
type Event int

const (
	EventNone Event = iota
	// EventPlaybackFinished fires once when playback progress reaches 1.0.
	// The flow stays in the listening phase until BeginRecording is called
	// after the hand-off delay.
	EventPlaybackFinished
	// EventRecordingLimit fires when the recording reaches its maximum
	// duration; the flow has already transitioned to completed.
	EventRecordingLimit
)

var (
	errNotInstructions = errors.New(
		"the flow can only be started from the instructions phase",
	)
	errPlaybackRunning = errors.New(
		"recording cannot begin until playback has finished",
	)
	errNotRecording = errors.New(
		"only an active recording can be stopped",
	)
	errFlowAborted = errors.New("the flow has been aborted")
)

// Config holds the timing parameters of a recall flow.
type Config struct {
	Story stimulus.Story
	// StimulusDuration is the playback length. Zero means the story's own
	// duration.
	StimulusDuration time.Duration
	// MaxRecording caps the response recording.
	MaxRecording time.Duration
	// TickInterval is the wall-clock interval between progress ticks.
	TickInterval time.Duration
	// HandoffDelay is the pause between playback finishing and recording
	// starting.
	HandoffDelay time.Duration
}

const (
	defaultMaxRecording = 2 * time.Minute
	defaultTickInterval = 100 * time.Millisecond
	defaultHandoffDelay = 500 * time.Millisecond
)

func (c *Config) applyDefaults() {
	if c.StimulusDuration <= 0 {
		c.StimulusDuration = c.Story.Duration()
	}

	if c.MaxRecording <= 0 {
		c.MaxRecording = defaultMaxRecording
	}

	if c.TickInterval <= 0 {
		c.TickInterval = defaultTickInterval
	}

	if c.HandoffDelay <= 0 {
		c.HandoffDelay = defaultHandoffDelay
	}
}

// Flow is the linear recall state machine. It owns all mutable state for a
// run and is independent of any UI; callers drive it through Start, Tick,
// BeginRecording, StopRecording, and Abort, all of which are expected to run
// on a single goroutine.
type Flow struct {
	listeningStart   time.Time
	recordingStart   time.Time
	now              func() time.Time
	device           Device
	phase            Phase
	record           Record
	cfg              Config
	playbackProgress float64
	playbackDone     bool
	aborted          bool
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// NewFlow creates a flow in the instructions phase.
func NewFlow(cfg Config, device Device, opts ...Option) *Flow {
	cfg.applyDefaults()

	f := &Flow{
		cfg:    cfg,
		device: device,
		phase:  PhaseInstructions,
		now:    time.Now,
		record: Record{
			StoryID: cfg.Story.ID,
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase {
	return f.phase
}

// Config returns the timing parameters in effect.
func (f *Flow) Config() Config {
	return f.cfg
}

// Progress reports the progress of the active phase in [0, 1].
func (f *Flow) Progress() float64 {
	switch f.phase {
	case PhaseListening:
		return f.playbackProgress
	case PhaseRecording:
		elapsed := f.now().Sub(f.recordingStart)

		progress := elapsed.Seconds() / f.cfg.MaxRecording.Seconds()
		if progress > 1 {
			progress = 1
		}

		return progress
	case PhaseCompleted:
		return 1
	case PhaseInstructions:
	}

	return 0
}

// Start moves the flow from instructions to listening and begins playback.
func (f *Flow) Start() error {
	if f.aborted {
		return errFlowAborted
	}

	if f.phase != PhaseInstructions {
		return errNotInstructions
	}

	err := f.device.StartPlayback(f.cfg.Story)
	if err != nil {
		return err
	}

	f.phase = PhaseListening
	f.listeningStart = f.now()

	return nil
}

// Tick advances the active phase by one timer interval. Ticks for retired
// phases must not be delivered; the TUI guarantees this by tagging each
// scheduled tick with the phase it belongs to.
func (f *Flow) Tick() Event {
	if f.aborted {
		return EventNone
	}

	switch f.phase {
	case PhaseListening:
		return f.tickListening()
	case PhaseRecording:
		return f.tickRecording()
	case PhaseInstructions, PhaseCompleted:
	}

	return EventNone
}

func (f *Flow) tickListening() Event {
	if f.playbackDone {
		return EventNone
	}

	f.playbackProgress += f.cfg.TickInterval.Seconds() /
		f.cfg.StimulusDuration.Seconds()

	if f.playbackProgress < 1 {
		return EventNone
	}

	f.playbackProgress = 1
	f.playbackDone = true
	f.record.StoryDurationMs = timeutil.ToMilliseconds(
		f.now().Sub(f.listeningStart),
	)

	f.device.StopPlayback()

	return EventPlaybackFinished
}

func (f *Flow) tickRecording() Event {
	if f.now().Sub(f.recordingStart) < f.cfg.MaxRecording {
		return EventNone
	}

	// reaching the cap stops the recording exactly like a user action
	err := f.StopRecording()
	if err != nil {
		return EventNone
	}

	return EventRecordingLimit
}

// BeginRecording moves the flow from listening to recording once playback
// has finished. The caller interposes the hand-off delay before invoking it.
func (f *Flow) BeginRecording() error {
	if f.aborted {
		return errFlowAborted
	}

	if f.phase != PhaseListening || !f.playbackDone {
		return errPlaybackRunning
	}

	err := f.device.StartRecording(f.cfg.Story)
	if err != nil {
		return err
	}

	f.phase = PhaseRecording
	f.recordingStart = f.now()

	return nil
}

// StopRecording finalizes the recording and completes the flow. It is
// triggered by user action or by the recording reaching its maximum
// duration.
func (f *Flow) StopRecording() error {
	if f.aborted {
		return errFlowAborted
	}

	if f.phase != PhaseRecording {
		return errNotRecording
	}

	stoppedAt := f.now()

	handle, err := f.device.StopRecording(stoppedAt)
	if err != nil {
		return err
	}

	f.record.RecordingDurationMs = timeutil.ToMilliseconds(
		stoppedAt.Sub(f.recordingStart),
	)
	f.record.AudioPath = handle
	f.record.Completed = true
	f.phase = PhaseCompleted

	return nil
}

// Abort discards all accumulated state. The flow yields no result
// afterwards.
func (f *Flow) Abort() {
	if f.phase == PhaseCompleted {
		return
	}

	f.device.StopPlayback()

	// an active capture must not be left running; the handle is discarded
	if f.phase == PhaseRecording {
		_, _ = f.device.StopRecording(f.now())
	}

	f.aborted = true
	f.record = Record{StoryID: f.cfg.Story.ID}
}

// Aborted reports whether the flow was abandoned.
func (f *Flow) Aborted() bool {
	return f.aborted
}

// Result hands the accumulated record to the caller. ok is false until the
// flow has completed, and always false after an abort.
func (f *Flow) Result() (rec Record, ok bool) {
	if f.aborted || f.phase != PhaseCompleted {
		return Record{}, false
	}

	return f.record, true
}
