package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/dessertai/internal/client/gateway"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

// Success messages, shown after the "✅ " marker.
const (
	MsgLoginOK   = "Login successful!"
	MsgSignupOK  = "Signup successful! You can now log in."
	MsgResetOK   = "Password reset successful! You can now log in."
	MsgContactOK = "Thank you for contacting us! We will get back to you soon."
	MsgLogoutOK  = "Logged out."
)

// AccountAPI is the part of the gateway used by account flows.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, username, email, password string) (models.Session, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	Contact(ctx context.Context, form gateway.ContactForm) error
}

// SessionWriter persists or clears credentials.
type SessionWriter interface {
	SignIn(ctx context.Context, s models.Session) error
	SignOut(ctx context.Context) error
}

type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type SignupForm struct {
	Username        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,strongpassword"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

type ResetForm struct {
	Token           string `validate:"required"`
	Password        string `validate:"required,strongpassword"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Subject string
	Message string `validate:"required"`
}

// AccountService defines the account flows behind the REPL forms.
//
// Every method returns either a success message or an error whose
// gateway.UserMessage is fit to show the user.
type AccountService interface {
	Login(ctx context.Context, form LoginForm) (string, error)
	Signup(ctx context.Context, form SignupForm) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, form ResetForm) (string, error)
	Logout(ctx context.Context) (string, error)
	Contact(ctx context.Context, form ContactForm) (string, error)
}

type accountService struct {
	api      AccountAPI
	sessions SessionWriter
	validate *validator.Validate
	log      logging.Logger
}

func NewAccountService(api AccountAPI, sessions SessionWriter, log logging.Logger) AccountService {
	if log == nil {
		log = logging.Discard()
	}
	return &accountService{api: api, sessions: sessions, validate: newValidator(), log: log}
}

func (a *accountService) check(form any) error {
	if err := a.validate.Struct(form); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Login authenticates and persists the returned token and user id.
func (a *accountService) Login(ctx context.Context, form LoginForm) (string, error) {
	if err := a.check(form); err != nil {
		return "", err
	}
	s, err := a.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		return "", err
	}
	if err := a.sessions.SignIn(ctx, s); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return MsgLoginOK, nil
}

// Signup registers a new account. When the server answers with
// credentials the user is signed in right away.
func (a *accountService) Signup(ctx context.Context, form SignupForm) (string, error) {
	if err := a.check(form); err != nil {
		return "", err
	}
	s, err := a.api.Register(ctx, form.Username, form.Email, form.Password)
	if err != nil {
		a.log.Warn(ctx, "signup failed", "error", err)
		return "", err
	}
	if s.Authenticated() {
		if err := a.sessions.SignIn(ctx, s); err != nil {
			return "", fmt.Errorf("signup: %w", err)
		}
	}
	return MsgSignupOK, nil
}

// ForgotPassword returns the server's message verbatim.
func (a *accountService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := a.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}
	msg, err := a.api.ForgotPassword(ctx, email)
	if err != nil {
		a.log.Warn(ctx, "forgot password failed", "error", err)
		return "", err
	}
	return msg, nil
}

func (a *accountService) ResetPassword(ctx context.Context, form ResetForm) (string, error) {
	if err := a.check(form); err != nil {
		return "", err
	}
	if err := a.api.ResetPassword(ctx, form.Token, form.Password); err != nil {
		a.log.Warn(ctx, "reset password failed", "error", err)
		return "", err
	}
	return MsgResetOK, nil
}

// Logout clears both credential keys.
func (a *accountService) Logout(ctx context.Context) (string, error) {
	if err := a.sessions.SignOut(ctx); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	return MsgLogoutOK, nil
}

func (a *accountService) Contact(ctx context.Context, form ContactForm) (string, error) {
	if err := a.check(form); err != nil {
		return "", err
	}
	err := a.api.Contact(ctx, gateway.ContactForm{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		a.log.Warn(ctx, "contact submission failed", "error", err)
		return "", err
	}
	return MsgContactOK, nil
}
