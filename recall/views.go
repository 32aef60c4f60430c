package recall

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/neuroverse/neuroverse-cli/internal/timeutil"
)

var (
	baseStyle      = lipgloss.NewStyle().Padding(1, padding)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	secondaryStyle = lipgloss.NewStyle().Faint(true)
	phaseStyle     = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
)

func (m *Model) instructionsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Story Recall Test"))
	s.WriteString("\n\n")
	s.WriteString(secondaryStyle.Render(
		"You will hear a short story. Listen carefully: when it ends, you\n" +
			"will be asked to retell it in your own words from memory.",
	))
	s.WriteString("\n\n")
	s.WriteString("Story: " + m.flow.Config().Story.Title)
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keymap.enter,
		m.keymap.esc,
	}))

	return s.String()
}

func (m *Model) listeningView() string {
	var s strings.Builder

	elapsed := time.Duration(
		m.flow.Progress() * m.flow.Config().StimulusDuration.Seconds(),
	) * time.Second

	s.WriteString(phaseStyle.Render("[Listening]"))
	s.WriteString(" " + m.flow.Config().Story.Title)
	s.WriteString("\n\n")
	s.WriteString(titleStyle.Render(timeutil.FormatClock(elapsed)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.flow.Progress()))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keymap.esc,
	}))

	return s.String()
}

func (m *Model) recordingView() string {
	var s strings.Builder

	maxRec := m.flow.Config().MaxRecording
	remaining := time.Duration(
		(1 - m.flow.Progress()) * maxRec.Seconds(),
	) * time.Second

	s.WriteString(phaseStyle.Render("[Recording]"))
	s.WriteString(secondaryStyle.Render(
		" Retell the story in your own words",
	))
	s.WriteString("\n\n")
	s.WriteString(titleStyle.Render(timeutil.FormatClock(remaining)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.flow.Progress()))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keymap.stop,
		m.keymap.esc,
	}))

	return s.String()
}

func (m *Model) completedView() string {
	var s strings.Builder

	rec, ok := m.flow.Result()
	if !ok {
		return ""
	}

	s.WriteString(titleStyle.Render("Test complete"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf(
		"Story playback: %s\n",
		timeutil.FormatClock(time.Duration(rec.StoryDurationMs)*time.Millisecond),
	))
	s.WriteString(fmt.Sprintf(
		"Your retelling: %s\n",
		timeutil.FormatClock(time.Duration(rec.RecordingDurationMs)*time.Millisecond),
	))
	s.WriteString(secondaryStyle.Render("Audio: " + rec.AudioPath))
	s.WriteString("\n\n")
	s.WriteString("Press ENTER to save your result")

	return s.String()
}

func (m *Model) View() string {
	if m.discarded || m.flow.Aborted() {
		return ""
	}

	var view string

	switch m.flow.Phase() {
	case PhaseInstructions:
		view = m.instructionsView()
	case PhaseListening:
		view = m.listeningView()
	case PhaseRecording:
		view = m.recordingView()
	case PhaseCompleted:
		view = m.completedView()
	}

	if m.confirmForm != nil {
		view += "\n\n" + m.confirmForm.View()
	}

	return baseStyle.Render(view)
}
