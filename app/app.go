// Package app defines the NeuroVerse command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/neuroverse/neuroverse-cli/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the NeuroVerse app instance.
func Get() *cli.App {
	nvApp := &cli.App{
		Name: "neuroverse",
		Usage: `
		NeuroVerse is the command-line companion for the NeuroVerse
		neurological health-screening platform. It runs timed cognitive
		assessments locally and syncs results, wellness data, and reports
		with your NeuroVerse account.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Create a new NeuroVerse account",
				Action: registerAction,
				Flags: []cli.Flag{
					emailFlag,
					firstNameFlag,
					lastNameFlag,
					phoneFlag,
					dobFlag,
					genderFlag,
				},
			},
			{
				Name:   "verify",
				Usage:  "Verify your email with the OTP sent to it",
				Action: verifyAction,
				Flags:  []cli.Flag{emailFlag, otpFlag, resendFlag},
			},
			{
				Name:   "login",
				Usage:  "Log in to your NeuroVerse account",
				Action: loginAction,
				Flags:  []cli.Flag{emailFlag},
			},
			{
				Name:   "logout",
				Usage:  "Log out and clear the local session",
				Action: logoutAction,
			},
			{
				Name:   "forgot-password",
				Usage:  "Request a password reset OTP",
				Action: forgotPasswordAction,
				Flags:  []cli.Flag{emailFlag},
			},
			{
				Name:   "reset-password",
				Usage:  "Reset your password with the OTP sent to your email",
				Action: resetPasswordAction,
				Flags:  []cli.Flag{emailFlag, otpFlag},
			},
			{
				Name:   "profile",
				Usage:  "View or update your profile",
				Action: profileShowAction,
				Subcommands: []*cli.Command{
					{
						Name:   "update",
						Usage:  "Update profile fields",
						Action: profileUpdateAction,
						Flags: []cli.Flag{
							firstNameFlag,
							lastNameFlag,
							phoneFlag,
							dobFlag,
							genderFlag,
						},
					},
					{
						Name:      "image",
						Usage:     "Upload a profile image",
						Action:    profileImageAction,
						ArgsUsage: "<path to image>",
					},
				},
			},
			{
				Name:   "wellness",
				Usage:  "Track daily wellness data",
				Action: wellnessTodayAction,
				Subcommands: []*cli.Command{
					{
						Name:   "log",
						Usage:  "Record today's wellness entry",
						Action: wellnessLogAction,
						Flags: []cli.Flag{
							sleepFlag,
							moodFlag,
							stressFlag,
							screenTimeFlag,
							activityFlag,
							notesFlag,
						},
					},
					{
						Name:   "history",
						Usage:  "List recent wellness entries",
						Action: wellnessHistoryAction,
						Flags:  []cli.Flag{sinceFlag, limitFlag},
					},
				},
			},
			{
				Name:   "sessions",
				Usage:  "List or cancel remote test sessions",
				Action: sessionsListAction,
				Flags:  []cli.Flag{categoryFlag, statusFlag, limitFlag},
				Subcommands: []*cli.Command{
					{
						Name:      "cancel",
						Usage:     "Cancel an unfinished test session",
						Action:    sessionsCancelAction,
						ArgsUsage: "<session id>",
					},
				},
			},
			{
				Name:   "reports",
				Usage:  "Manage assessment reports",
				Action: reportsListAction,
				Flags:  []cli.Flag{limitFlag, sinceFlag},
				Subcommands: []*cli.Command{
					{
						Name:   "create",
						Usage:  "Request generation of a new report",
						Action: reportsCreateAction,
						Flags:  []cli.Flag{titleFlag, categoryFlag, sinceFlag},
					},
					{
						Name:      "delete",
						Usage:     "Delete a report",
						Action:    reportsDeleteAction,
						ArgsUsage: "<report id>",
					},
				},
			},
			{
				Name:   "feedback",
				Usage:  "Send feedback to the NeuroVerse team",
				Action: feedbackSendAction,
				Flags: []cli.Flag{
					messageFlag,
					feedbackCategoryFlag,
					ratingFlag,
				},
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List your submitted feedback",
						Action: feedbackListAction,
						Flags:  []cli.Flag{limitFlag},
					},
					{
						Name:      "delete",
						Usage:     "Delete one of your feedback submissions",
						Action:    feedbackDeleteAction,
						ArgsUsage: "<feedback id>",
					},
				},
			},
			{
				Name:   "results",
				Usage:  "List locally saved assessment results",
				Action: resultsAction,
				Flags:  []cli.Flag{jsonFlag, uploadFlag},
				Subcommands: []*cli.Command{
					{
						Name:      "delete",
						Usage:     "Delete locally saved results",
						Action:    resultsDeleteAction,
						ArgsUsage: "<result id>...",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show session and backend status",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			serverFlag,
			storyFlag,
			maxRecordingFlag,
			disableNotificationFlag,
			afterTestCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return nvApp
}
