package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dessertai/internal/client/services"
	"github.com/dmitrijs2005/dessertai/internal/client/session"
)

// report prints the outcome of an account flow.
func (a *App) report(msg string, err error) error {
	if err != nil {
		a.fail(err)
		return err
	}
	a.ok(msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	msg, err := a.account.Login(ctx, services.LoginForm{Email: email, Password: password})
	if err := a.report(msg, err); err != nil {
		return err
	}
	return a.Home(ctx)
}

func (a *App) Signup(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	msg, err := a.account.Signup(ctx, services.SignupForm{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err := a.report(msg, err); err != nil {
		return err
	}
	if a.isLoggedIn() {
		return a.Home(ctx)
	}
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	return a.report(a.account.ForgotPassword(ctx, email))
}

// Reset takes the token from the reset link, as an argument or prompted.
func (a *App) Reset(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		t, err := GetSimpleText(a.reader, "Reset token", a.out)
		if err != nil {
			return err
		}
		token = t
	}
	password, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	return a.report(a.account.ResetPassword(ctx, services.ResetForm{
		Token:           token,
		Password:        password,
		ConfirmPassword: confirm,
	}))
}

func (a *App) Contact(ctx context.Context) error {
	var form services.ContactForm
	var err error
	if form.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if form.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if form.Subject, err = GetSimpleText(a.reader, "Subject", a.out); err != nil {
		return err
	}
	if form.Message, err = GetMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}
	return a.report(a.account.Contact(ctx, form))
}

func (a *App) Logout(ctx context.Context) error {
	msg, err := a.account.Logout(ctx)
	if err := a.report(msg, err); err != nil {
		return err
	}
	return a.Home(ctx)
}

// WhoAmI prints the session and whatever the token claims about it.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		a.fail(err)
		return err
	}
	if !s.Authenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if s.SignedIn() {
		fmt.Fprintln(a.out, "User ID: "+s.UserID.String())
	}

	claims, err := session.ParseClaims(s.Token)
	if err != nil {
		a.log.Debug(ctx, "token is not a jwt", "error", err)
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintln(a.out, "Subject: "+claims.Subject)
	}
	if !claims.IssuedAt.IsZero() {
		fmt.Fprintln(a.out, "Token issued: "+claims.IssuedAt.Format(time.RFC3339))
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "Token expires: %s (%s)\n", claims.ExpiresAt.Format(time.RFC3339), state)
	}
	return nil
}

// Stats prints the client's request and reconcile counters.
func (a *App) Stats(ctx context.Context) error {
	snap, err := a.metrics.Snapshot()
	if err != nil {
		a.fail(err)
		return err
	}
	if snap == "" {
		fmt.Fprintln(a.out, "No requests yet.")
		return nil
	}
	fmt.Fprintln(a.out, snap)
	return nil
}
