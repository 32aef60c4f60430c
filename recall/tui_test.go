package recall

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// completedModel drives a flow through to the completed phase and wraps it
// in a model, as if the user had just finished retelling the story.
func completedModel(t *testing.T) *Model {
	t.Helper()

	flow, _, clock := newTestFlow(t, Config{
		StimulusDuration: 1 * time.Second,
		MaxRecording:     5 * time.Second,
		TickInterval:     100 * time.Millisecond,
	})

	if err := flow.Start(); err != nil {
		t.Fatal(err)
	}

	tickUntil(t, flow, clock, EventPlaybackFinished, 20)

	if err := flow.BeginRecording(); err != nil {
		t.Fatal(err)
	}

	clock.advance(2 * time.Second)

	if err := flow.StopRecording(); err != nil {
		t.Fatal(err)
	}

	return NewModel(flow, false)
}

func TestModelEnterConfirmsCompletedResult(t *testing.T) {
	m := completedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model, ok := updated.(*Model)
	if !ok {
		t.Fatal("unexpected model type")
	}

	rec, ok := model.Result()
	if !ok {
		t.Fatal("expected a result after the enter confirmation")
	}

	if !rec.Completed {
		t.Fatal("expected a completed record")
	}
}

func TestModelCtrlCDiscardsCompletedResult(t *testing.T) {
	m := completedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	model, ok := updated.(*Model)
	if !ok {
		t.Fatal("unexpected model type")
	}

	if _, ok := model.Result(); ok {
		t.Fatal("ctrl+c must discard the record even after completion")
	}

	if got := model.View(); got != "" {
		t.Fatalf("expected an empty view after discarding, got: %q", got)
	}
}

func TestModelCtrlCAbortsActiveFlow(t *testing.T) {
	flow, device, _ := newTestFlow(t, Config{
		StimulusDuration: 1 * time.Second,
		TickInterval:     100 * time.Millisecond,
	})

	if err := flow.Start(); err != nil {
		t.Fatal(err)
	}

	m := NewModel(flow, false)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	model, ok := updated.(*Model)
	if !ok {
		t.Fatal("unexpected model type")
	}

	if !flow.Aborted() {
		t.Fatal("expected the flow to be aborted")
	}

	if device.playbackStopped == 0 {
		t.Fatal("expected playback to be stopped")
	}

	if _, ok := model.Result(); ok {
		t.Fatal("an aborted run must not yield a result")
	}
}
