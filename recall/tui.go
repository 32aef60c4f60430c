package recall

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"
	"github.com/gen2brain/beeep"
)

const (
	padding  = 2
	maxWidth = 80
)

// tickMsg carries the phase it was scheduled for so ticks belonging to a
// retired phase are dropped, keeping a single logical timer active.
type tickMsg struct {
	phase Phase
}

// handoffMsg fires after the fixed delay between playback and recording.
type handoffMsg struct{}

// Model renders a recall flow and translates terminal events into flow
// transitions. All state lives in the flow itself.
type Model struct {
	flow        *Flow
	confirmForm *huh.Form
	err         error
	progress    progress.Model
	help        help.Model
	keymap      keymap
	confirmExit bool
	discarded   bool
	notify      bool
}

// NewModel wraps a flow for interactive use.
func NewModel(flow *Flow, notify bool) *Model {
	return &Model{
		flow:     flow,
		notify:   notify,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		keymap:   defaultKeymap,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// tickCmd schedules the next progress tick, tagged with the current phase.
func (m *Model) tickCmd() tea.Cmd {
	phase := m.flow.Phase()

	return tea.Tick(m.flow.Config().TickInterval, func(time.Time) tea.Msg {
		return tickMsg{phase: phase}
	})
}

func (m *Model) handoffCmd() tea.Cmd {
	return tea.Tick(m.flow.Config().HandoffDelay, func(time.Time) tea.Msg {
		return handoffMsg{}
	})
}

func (m *Model) notifyUser(title, msg string) {
	if !m.notify {
		return
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		slog.Warn("unable to display notification", "error", err)
	}
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	// stale tick from a retired phase
	if msg.phase != m.flow.Phase() {
		return m, nil
	}

	switch m.flow.Tick() {
	case EventPlaybackFinished:
		return m, m.handoffCmd()

	case EventRecordingLimit:
		m.notifyUser(
			"Story recall complete",
			"The maximum recording time was reached.",
		)

		return m, nil

	case EventNone:
	}

	return m, m.tickCmd()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.quit):
		// only the enter confirmation hands the record over, so ctrl+c
		// discards even after the flow has completed
		m.discarded = true
		m.flow.Abort()

		return m, tea.Batch(tea.ClearScreen, tea.Quit)

	case key.Matches(msg, m.keymap.esc):
		if m.flow.Phase() == PhaseCompleted {
			return m, nil
		}

		m.confirmForm = exitConfirmForm(&m.confirmExit)

		return m, m.confirmForm.Init()

	// stop includes the enter key, so it must be matched first
	case key.Matches(msg, m.keymap.stop) &&
		m.flow.Phase() == PhaseRecording:
		err := m.flow.StopRecording()
		if err != nil {
			return m, nil
		}

		m.notifyUser(
			"Story recall complete",
			"Your retelling has been captured.",
		)

		return m, nil

	case key.Matches(msg, m.keymap.enter):
		switch m.flow.Phase() {
		case PhaseInstructions:
			err := m.flow.Start()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}

			return m, m.tickCmd()

		case PhaseCompleted:
			// explicit confirmation hands the record to the caller
			return m, tea.Batch(tea.ClearScreen, tea.Quit)

		case PhaseListening, PhaseRecording:
		}
	}

	return m, nil
}

func exitConfirmForm(value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Exit the test?").
				Description("Your progress will be discarded.").
				Affirmative("Yes, exit").
				Negative("No, continue").
				Value(value),
		),
	)
}

func (m *Model) updateConfirmForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	slog.Debug(spew.Sdump(msg))

	form, cmd := m.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.confirmForm = nil

	if m.confirmExit {
		m.discarded = true
		m.flow.Abort()

		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// the timers keep running while the exit prompt is shown
		return m.handleTick(msg)

	case handoffMsg:
		err := m.flow.BeginRecording()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}

		m.notifyUser(
			"Recording started",
			"Retell the story in your own words.",
		)

		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case tea.KeyMsg:
		if m.confirmForm != nil {
			return m.updateConfirmForm(msg)
		}

		return m.handleKey(msg)
	}

	if m.confirmForm != nil {
		return m.updateConfirmForm(msg)
	}

	return m, nil
}

// Err reports a device failure that terminated the flow early.
func (m *Model) Err() error {
	return m.err
}

// Result exposes the flow's record after the program exits. A discarded run
// yields nothing even when the flow itself completed.
func (m *Model) Result() (Record, bool) {
	if m.discarded {
		return Record{}, false
	}

	return m.flow.Result()
}
