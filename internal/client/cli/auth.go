package cli

import (
	"context"
	"os"
)

// Register prompts for a name, email, and password and creates an account.
// On success the session is established immediately.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, email, password); err != nil {
		printlnFn("Registration failed:", err)
		return err
	}
	printlnFn("Registered and logged in as", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", err)
		return err
	}
	printlnFn("Logged in as", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// ForgotPassword requests a reset token for an email address. Some
// deployments email the token; others return it directly, in which case it
// is shown to the user.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.session.ForgotPassword(ctx, email)
	if err != nil {
		printlnFn("Request failed:", err)
		return err
	}
	if token != "" {
		printlnFn("Reset token:", token)
	} else {
		printlnFn("Check your email for a reset token.")
	}
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Enter the reset token", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.ResetPassword(ctx, token, password); err != nil {
		printlnFn("Reset failed:", err)
		return err
	}
	printlnFn("Password updated. You can log in now.")
	return nil
}
