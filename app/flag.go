package app

import "github.com/urfave/cli/v2"

var (
	serverFlag = &cli.StringFlag{
		Name:  "server",
		Usage: "Override the NeuroVerse backend URL",
	}

	storyFlag = &cli.StringFlag{
		Name:  "story",
		Usage: "Select the stimulus story for the recall test by its id",
	}

	maxRecordingFlag = &cli.UintFlag{
		Name:    "max-recording",
		Aliases: []string{"m"},
		Usage:   "Maximum recording duration in seconds (default: 120)",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification shown when recording starts and ends",
	}

	afterTestCmdFlag = &cli.StringFlag{
		Name:  "after-test-cmd",
		Usage: "Execute an arbitrary command after a completed test",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	emailFlag = &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "The email address of your NeuroVerse account",
	}

	otpFlag = &cli.StringFlag{
		Name:  "otp",
		Usage: "The one-time code sent to your email",
	}

	resendFlag = &cli.BoolFlag{
		Name:  "resend",
		Usage: "Request a fresh OTP instead of verifying",
	}

	firstNameFlag = &cli.StringFlag{
		Name:  "first-name",
		Usage: "Your first name",
	}

	lastNameFlag = &cli.StringFlag{
		Name:  "last-name",
		Usage: "Your last name",
	}

	phoneFlag = &cli.StringFlag{
		Name:  "phone",
		Usage: "Your phone number",
	}

	dobFlag = &cli.StringFlag{
		Name:  "dob",
		Usage: "Your date of birth (YYYY-MM-DD)",
	}

	genderFlag = &cli.StringFlag{
		Name:  "gender",
		Usage: "One of: male, female, other",
	}

	sleepFlag = &cli.Float64Flag{
		Name:  "sleep",
		Usage: "Hours slept last night",
	}

	moodFlag = &cli.StringFlag{
		Name:  "mood",
		Usage: "One of: very_bad, bad, neutral, good, very_good",
	}

	stressFlag = &cli.IntFlag{
		Name:  "stress",
		Usage: "Stress level from 1 (calm) to 10 (overwhelmed)",
	}

	screenTimeFlag = &cli.Float64Flag{
		Name:  "screen-time",
		Usage: "Hours of screen time today",
	}

	activityFlag = &cli.IntFlag{
		Name:  "activity",
		Usage: "Minutes of physical activity today",
	}

	notesFlag = &cli.StringFlag{
		Name:  "notes",
		Usage: "Free-form notes for the entry",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Limit results to entries after this time (e.g. '2 weeks ago')",
	}

	limitFlag = &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of entries to return",
	}

	categoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Filter by test category (e.g. cognitive, speech, motor)",
	}

	statusFlag = &cli.StringFlag{
		Name:  "status",
		Usage: "Filter by session status (e.g. created, in_progress, completed)",
	}

	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "Title for the generated report",
	}

	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "The feedback message",
	}

	feedbackCategoryFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Feedback category: general, bug_report, feature_request, ui_ux, test_quality, performance, other",
	}

	ratingFlag = &cli.IntFlag{
		Name:  "rating",
		Usage: "Rating from 1 to 5 stars",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print results in JSON format",
	}

	uploadFlag = &cli.BoolFlag{
		Name:  "upload",
		Usage: "Upload pending results to the backend",
	}
)
