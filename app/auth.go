package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/neuroverse/neuroverse-cli/api"
)

// promptIfEmpty returns val, prompting the user with label when it is empty.
func promptIfEmpty(val, label string) (string, error) {
	if val != "" {
		return val, nil
	}

	return pterm.DefaultInteractiveTextInput.Show(label)
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show(label)
}

// optStr returns a pointer to s, or nil when s is empty. Used to build
// request params whose empty fields must be omitted.
func optStr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func registerAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	email, err := promptIfEmpty(ctx.String("email"), "Email")
	if err != nil {
		return err
	}

	firstName, err := promptIfEmpty(ctx.String("first-name"), "First name")
	if err != nil {
		return err
	}

	lastName, err := promptIfEmpty(ctx.String("last-name"), "Last name")
	if err != nil {
		return err
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	result := client.Register(ctx.Context, api.RegisterParams{
		Email:       email,
		Password:    password,
		FirstName:   firstName,
		LastName:    lastName,
		Phone:       optStr(ctx.String("phone")),
		DateOfBirth: optStr(ctx.String("dob")),
		Gender:      optStr(ctx.String("gender")),
	})
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Printfln(
		"Account created. Check %s for a verification code, then run %s.",
		email,
		"neuroverse verify",
	)

	return nil
}

func verifyAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	email, err := promptIfEmpty(ctx.String("email"), "Email")
	if err != nil {
		return err
	}

	if ctx.Bool("resend") {
		result := client.ResendOTP(ctx.Context, email)
		if !result.Success {
			return resultErr(result)
		}

		pterm.Success.Printfln("A new code is on its way to %s.", email)

		return nil
	}

	otp, err := promptIfEmpty(ctx.String("otp"), "Verification code")
	if err != nil {
		return err
	}

	result := client.VerifyOTP(ctx.Context, email, otp)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Email verified. You are now logged in.")

	return nil
}

func loginAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	email, err := promptIfEmpty(ctx.String("email"), "Email")
	if err != nil {
		return err
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	result := client.Login(ctx.Context, email, password)
	if !result.Success {
		return resultErr(result)
	}

	var resp api.LoginResponse

	err = result.Decode(&resp)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Welcome back, %s!", resp.User.FirstName)

	return nil
}

func logoutAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	_ = client.Logout(ctx.Context)

	pterm.Success.Println("Logged out.")

	return nil
}

func forgotPasswordAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	email, err := promptIfEmpty(ctx.String("email"), "Email")
	if err != nil {
		return err
	}

	result := client.ForgotPassword(ctx.Context, email)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Printfln(
		"If an account exists for %s, a reset code has been sent to it.",
		email,
	)

	return nil
}

func resetPasswordAction(ctx *cli.Context) error {
	client, db, err := clientHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	email, err := promptIfEmpty(ctx.String("email"), "Email")
	if err != nil {
		return err
	}

	otp, err := promptIfEmpty(ctx.String("otp"), "Reset code")
	if err != nil {
		return err
	}

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}

	result := client.ResetPassword(ctx.Context, email, otp, password)
	if !result.Success {
		return resultErr(result)
	}

	pterm.Success.Println("Password updated. Log in with your new password.")

	return nil
}
