package app

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/neuroverse/neuroverse-cli/api"
	"github.com/neuroverse/neuroverse-cli/internal/ui"
)

var errInvalidID = errors.New("a numeric id argument is required")

// idArg parses the first positional argument as a numeric identifier.
func idArg(ctx *cli.Context) (int, error) {
	arg := ctx.Args().First()
	if arg == "" {
		return 0, errInvalidID
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errInvalidID
	}

	return id, nil
}

// parseSince interprets natural-language time expressions such as
// "2 weeks ago" or "last monday".
func parseSince(str string) (time.Time, error) {
	d, err := dateparser.Parse(nil, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse time value: %s", str)
	}

	return d.Time, nil
}

func profileShowAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.CurrentUser(ctx.Context)
	if !result.Success {
		return resultErr(result)
	}

	var user api.UserResponse

	err = result.Decode(&user)
	if err != nil {
		return err
	}

	verified := ui.Red("no")
	if user.IsVerified {
		verified = ui.Green("yes")
	}

	ui.PrintTable([][]string{
		{"NAME", ui.Highlight(
			fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		)},
		{"EMAIL", user.Email},
		{"PHONE", user.Phone},
		{"DATE OF BIRTH", user.DateOfBirth},
		{"GENDER", user.Gender},
		{"VERIFIED", verified},
		{"COGNITIVE SCORE", fmt.Sprintf("%.1f", user.CognitiveScore)},
		{"SPEECH SCORE", fmt.Sprintf("%.1f", user.SpeechScore)},
	}, os.Stdout)

	return nil
}

func profileUpdateAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	params := api.UpdateProfileParams{
		FirstName:   optStr(ctx.String("first-name")),
		LastName:    optStr(ctx.String("last-name")),
		Phone:       optStr(ctx.String("phone")),
		DateOfBirth: optStr(ctx.String("dob")),
		Gender:      optStr(ctx.String("gender")),
	}

	result := client.UpdateProfile(ctx.Context, params)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Profile updated.")

	return nil
}

func profileImageAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return errors.New("a path to an image file is required")
	}

	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.UploadProfileImage(ctx.Context, path)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Profile image uploaded.")

	return nil
}

func wellnessTodayAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.TodayWellnessEntry(ctx.Context)
	if !result.Success {
		return resultErr(result)
	}

	return printJSON(result)
}

func wellnessLogAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	var params api.WellnessEntryParams

	if ctx.IsSet("sleep") {
		v := ctx.Float64("sleep")
		params.SleepHours = &v
	}

	if ctx.IsSet("mood") {
		params.Mood = optStr(ctx.String("mood"))
	}

	if ctx.IsSet("stress") {
		v := ctx.Int("stress")
		params.StressLevel = &v
	}

	if ctx.IsSet("screen-time") {
		v := ctx.Float64("screen-time")
		params.ScreenTimeHours = &v
	}

	if ctx.IsSet("activity") {
		v := ctx.Int("activity")
		params.PhysicalActivityMinutes = &v
	}

	if ctx.IsSet("notes") {
		params.Notes = optStr(ctx.String("notes"))
	}

	result := client.CreateWellnessEntry(ctx.Context, params)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Wellness entry recorded.")

	return nil
}

func wellnessHistoryAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	days := 30

	if since := ctx.String("since"); since != "" {
		start, err := parseSince(since)
		if err != nil {
			return err
		}

		days = int(time.Since(start).Hours()/24) + 1
	}

	result := client.WellnessHistory(ctx.Context, days, ctx.Int("limit"))
	if !result.Success {
		return resultErr(result)
	}

	return printJSON(result)
}

func sessionsListAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.ListTestSessions(ctx.Context, api.ListTestSessionsParams{
		Category: optStr(ctx.String("category")),
		Status:   optStr(ctx.String("status")),
		Limit:    ctx.Int("limit"),
	})
	if !result.Success {
		return resultErr(result)
	}

	var sessions []api.TestSessionResponse

	err = result.Decode(&sessions)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		pterm.Info.Println("No test sessions found.")
		return nil
	}

	tableBody := make([][]string, len(sessions))

	for i, s := range sessions {
		tableBody[i] = []string{
			strconv.Itoa(s.ID),
			s.Category,
			s.Status,
			strconv.Itoa(s.ItemsCount),
			s.CreatedAt,
		}
	}

	tableBody = append([][]string{
		{"ID", "CATEGORY", "STATUS", "ITEMS", "CREATED"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

func sessionsCancelAction(ctx *cli.Context) error {
	id, err := idArg(ctx)
	if err != nil {
		return err
	}

	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.CancelTestSession(ctx.Context, id)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Printfln("Session %d cancelled.", id)

	return nil
}

func reportsListAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.ListReports(ctx.Context, ctx.Int("limit"), 0)
	if !result.Success {
		return resultErr(result)
	}

	var reports []api.ReportResponse

	err = result.Decode(&reports)
	if err != nil {
		return err
	}

	if since := ctx.String("since"); since != "" {
		start, err := parseSince(since)
		if err != nil {
			return err
		}

		filtered := reports[:0]

		for _, r := range reports {
			created, err := time.Parse(time.RFC3339, r.CreatedAt)
			if err != nil || !created.Before(start) {
				filtered = append(filtered, r)
			}
		}

		reports = filtered
	}

	if len(reports) == 0 {
		pterm.Info.Println("No reports yet. Run 'neuroverse reports create'.")
		return nil
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return natural.Less(reports[i].Title, reports[j].Title)
	})

	tableBody := make([][]string, len(reports))

	for i, r := range reports {
		tableBody[i] = []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.ReportType,
			fmt.Sprintf("%.1f", r.ADRiskScore),
			fmt.Sprintf("%.1f", r.PDRiskScore),
			r.CreatedAt,
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "TYPE", "AD RISK", "PD RISK", "CREATED"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

func reportsCreateAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	params := api.CreateReportParams{
		Title:           optStr(ctx.String("title")),
		Category:        optStr(ctx.String("category")),
		IncludeWellness: true,
	}

	if since := ctx.String("since"); since != "" {
		start, err := parseSince(since)
		if err != nil {
			return err
		}

		params.DateRangeStart = optStr(start.Format("2006-01-02"))
	}

	result := client.CreateReport(ctx.Context, params)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Report requested. It will appear in 'neuroverse reports' shortly.")

	return nil
}

func reportsDeleteAction(ctx *cli.Context) error {
	id, err := idArg(ctx)
	if err != nil {
		return err
	}

	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.DeleteReport(ctx.Context, id)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Printfln("Report %d deleted.", id)

	return nil
}

func feedbackSendAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	message, err := promptIfEmpty(ctx.String("message"), "Your feedback")
	if err != nil {
		return err
	}

	params := api.FeedbackParams{
		Category:   ctx.String("type"),
		Message:    message,
		AppVersion: optStr(ctx.App.Version),
	}

	if ctx.IsSet("rating") {
		v := ctx.Int("rating")
		params.Rating = &v
	}

	result := client.SubmitFeedback(ctx.Context, params)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Thanks for your feedback!")

	return nil
}

func feedbackListAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.ListFeedback(ctx.Context, 1, ctx.Int("limit"))
	if !result.Success {
		return resultErr(result)
	}

	return printJSON(result)
}

func feedbackDeleteAction(ctx *cli.Context) error {
	id, err := idArg(ctx)
	if err != nil {
		return err
	}

	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	result := client.DeleteFeedback(ctx.Context, id)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Printfln("Feedback %d deleted.", id)

	return nil
}
