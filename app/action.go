package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/neuroverse/neuroverse-cli/api"
	"github.com/neuroverse/neuroverse-cli/config"
	"github.com/neuroverse/neuroverse-cli/internal/models"
	"github.com/neuroverse/neuroverse-cli/internal/session"
	"github.com/neuroverse/neuroverse-cli/internal/stimulus"
	"github.com/neuroverse/neuroverse-cli/internal/timeutil"
	"github.com/neuroverse/neuroverse-cli/internal/ui"
	"github.com/neuroverse/neuroverse-cli/recall"
	"github.com/neuroverse/neuroverse-cli/store"
)

const (
	envNoColor   = "NO_COLOR"
	envNVNoColor = "NEUROVERSE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// clientHelper wires up the store, session, and API client from the
// application config.
func clientHelper(ctx *cli.Context) (*api.Client, store.DB, error) {
	cfg := config.App(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.New(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return api.New(cfg.ServerURL, sess), db, nil
}

// resultErr converts a failed API result into an error for the CLI runner.
func resultErr(result api.Result) error {
	return errors.New(result.Error)
}

// printJSON renders the raw response data of a successful result.
func printJSON(result api.Result) error {
	var out any

	err := result.Decode(&out)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	pterm.Println(string(b))

	return nil
}

// runAfterTestCmd executes the configured post-test hook command.
func runAfterTestCmd(afterTestCmd string) error {
	if afterTestCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(afterTestCmd)
	if err != nil {
		return fmt.Errorf("unable to parse after_test_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// defaultAction runs the story recall test and saves the result locally.
func defaultAction(ctx *cli.Context) error {
	cfg := config.App(ctx)

	story, err := stimulus.Find(cfg.StoryID)
	if err != nil {
		return err
	}

	flow := recall.NewFlow(
		recall.Config{
			Story:        story,
			MaxRecording: cfg.MaxRecording,
			TickInterval: cfg.TickInterval,
			HandoffDelay: cfg.HandoffDelay,
		},
		recall.NewDevice(story),
	)

	model := recall.NewModel(flow, cfg.Notify)

	p := tea.NewProgram(model)

	out, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := out.(*recall.Model)
	if !ok {
		return nil
	}

	if m.Err() != nil {
		return m.Err()
	}

	rec, ok := m.Result()
	if !ok {
		pterm.Info.Println("Test exited. No result was saved.")
		return nil
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	record := &models.AssessmentRecord{
		ID:                  uuid.NewString(),
		CreatedAt:           time.Now(),
		StoryID:             rec.StoryID,
		StoryDurationMs:     rec.StoryDurationMs,
		RecordingDurationMs: rec.RecordingDurationMs,
		AudioPath:           rec.AudioPath,
		Completed:           rec.Completed,
	}

	err = db.SaveAssessment(record)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Result saved. Run %s to upload it to your account.",
		ui.Cyan("neuroverse results --upload"),
	)

	return runAfterTestCmd(cfg.AfterTestCmd)
}

// resultsAction lists locally saved assessment records and optionally
// uploads those still pending.
func resultsAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("upload") {
		return uploadResults(ctx, client, db)
	}

	recs, err := db.ListAssessments()
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(recs)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(recs) == 0 {
		pterm.Info.Println("No assessment results yet. Run a test first.")
		return nil
	}

	tableBody := make([][]string, len(recs))

	for i, rec := range recs {
		uploaded := "pending"
		if rec.Uploaded {
			uploaded = "uploaded"
		}

		tableBody[i] = []string{
			rec.ID,
			rec.CreatedAt.Format("Jan 02, 2006 03:04:05 PM"),
			ui.Magenta(rec.StoryID),
			timeutil.FormatClock(
				time.Duration(rec.StoryDurationMs) * time.Millisecond,
			),
			timeutil.FormatClock(
				time.Duration(rec.RecordingDurationMs) * time.Millisecond,
			),
			uploaded,
		}
	}

	tableBody = append([][]string{
		{"ID", "DATE", "STORY", "PLAYBACK", "RETELLING", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

// uploadResults pushes each pending record through the test-session
// endpoints: create, start, attach the recall item, complete.
func uploadResults(ctx *cli.Context, client *api.Client, db store.DB) error {
	recs, err := db.ListAssessments()
	if err != nil {
		return err
	}

	var uploaded int

	for _, rec := range recs {
		if rec.Uploaded {
			continue
		}

		result := client.CreateTestSession(ctx.Context, "speech")
		if !result.Success {
			return resultErr(result)
		}

		var sess api.TestSessionResponse

		err = result.Decode(&sess)
		if err != nil {
			return err
		}

		result = client.StartTestSession(ctx.Context, sess.ID)
		if !result.Success {
			return resultErr(result)
		}

		result = client.AddTestItem(ctx.Context, sess.ID, api.TestItemParams{
			ItemName: "story_recall",
			ItemType: "speech",
			Data: map[string]any{
				"story_id":              rec.StoryID,
				"audio_path":            rec.AudioPath,
				"duration_seconds":      float64(rec.RecordingDurationMs) / 1000,
				"story_duration_ms":     rec.StoryDurationMs,
				"recording_duration_ms": rec.RecordingDurationMs,
			},
		})
		if !result.Success {
			return resultErr(result)
		}

		result = client.CompleteTestSession(ctx.Context, sess.ID)
		if !result.Success {
			return resultErr(result)
		}

		rec.Uploaded = true

		err = db.SaveAssessment(rec)
		if err != nil {
			return err
		}

		uploaded++
	}

	if uploaded == 0 {
		pterm.Info.Println("Nothing to upload.")
	} else {
		pterm.Success.Printfln("Uploaded %d result(s).", uploaded)
	}

	return nil
}

func resultsDeleteAction(ctx *cli.Context) error {
	ids := ctx.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one result id is required")
	}

	cfg := config.App(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	for _, id := range ids {
		_, err = db.GetAssessment(id)
		if err != nil {
			return err
		}
	}

	err = db.DeleteAssessments(ids)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted %d result(s).", len(ids))

	return nil
}

// statusAction reports the login state and backend availability.
func statusAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	cfg := config.App(ctx)

	pterm.Info.Printfln("Server: %s", ui.Blue(cfg.ServerURL))

	sess := client.Session()

	if sess.IsLoggedIn() {
		line := "Logged in"

		if expiry, ok := sess.ExpiresAt(); ok {
			line = fmt.Sprintf(
				"Logged in (access token expires %s)",
				expiry.Format("Jan 02, 2006 03:04:05 PM"),
			)
		}

		pterm.Success.Println(line)
	} else {
		pterm.Info.Println("Not logged in")
	}

	spinner, _ := pterm.DefaultSpinner.Start("Checking backend...")

	result := client.Health(ctx.Context)
	if result.Success {
		spinner.Success("Backend is reachable")
	} else {
		spinner.Fail(result.Error)
	}

	return nil
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.App(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envNVNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	cfg := config.App(ctx)

	ui.DarkTheme = cfg.DarkTheme

	slog.SetDefault(slog.New(slog.NewJSONHandler(
		&lumberjack.Logger{
			Filename:   cfg.PathToLog,
			MaxSize:    5,
			MaxBackups: 2,
		},
		nil,
	)))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting neuroverse")

	return nil
}
