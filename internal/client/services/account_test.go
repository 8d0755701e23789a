package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dessertai/internal/client/gateway"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

// ---- fakes ----

type fakeAPI struct {
	loginSession    models.Session
	registerSession models.Session
	forgotMessage   string
	err             error

	calls       []string
	lastContact gateway.ContactForm
	lastReset   [2]string
}

func (f *fakeAPI) Login(_ context.Context, email, _ string) (models.Session, error) {
	f.calls = append(f.calls, "login:"+email)
	return f.loginSession, f.err
}

func (f *fakeAPI) Register(_ context.Context, username, _, _ string) (models.Session, error) {
	f.calls = append(f.calls, "register:"+username)
	return f.registerSession, f.err
}

func (f *fakeAPI) ForgotPassword(_ context.Context, email string) (string, error) {
	f.calls = append(f.calls, "forgot:"+email)
	return f.forgotMessage, f.err
}

func (f *fakeAPI) ResetPassword(_ context.Context, token, pw string) error {
	f.calls = append(f.calls, "reset")
	f.lastReset = [2]string{token, pw}
	return f.err
}

func (f *fakeAPI) Contact(_ context.Context, form gateway.ContactForm) error {
	f.calls = append(f.calls, "contact")
	f.lastContact = form
	return f.err
}

type fakeSessions struct {
	current   models.Session
	signInErr error
	signOuts  int
}

func (f *fakeSessions) SignIn(_ context.Context, s models.Session) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.current = s
	return nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.signOuts++
	f.current = models.Session{}
	return nil
}

func newService() (AccountService, *fakeAPI, *fakeSessions) {
	api := &fakeAPI{}
	sess := &fakeSessions{}
	return NewAccountService(api, sess, nil), api, sess
}

const goodPassword = "Sweet123!"

// ---- tests ----

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Sweet123!":   true,
		"Aa1@aaaa":    true,
		"Aa1@aaa":     false, // 7 chars
		"sweet123!":   false, // no upper
		"SWEET123!":   false, // no lower
		"Sweetabc!":   false, // no digit
		"Sweet1234":   false, // no special
		"Sweet 123!":  false, // space not allowed
		"Sweet123#":   false, // # not in the allowed set
		"Crème123!":   false,
		"":            false,
		"Ab1$Ab1$Ab1": true,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsStrongPassword(in), in)
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	svc, api, sess := newService()
	api.loginSession = models.Session{Token: "jwt", UserID: "9"}

	msg, err := svc.Login(context.Background(), LoginForm{Email: "ann@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, MsgLoginOK, msg)
	assert.Equal(t, models.Session{Token: "jwt", UserID: "9"}, sess.current)
}

func TestLogin_APIErrorNotPersisted(t *testing.T) {
	svc, api, sess := newService()
	api.err = &gateway.APIError{Status: 401, Message: "Invalid email or password"}

	_, err := svc.Login(context.Background(), LoginForm{Email: "ann@example.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", gateway.UserMessage(err))
	assert.Equal(t, models.Session{}, sess.current)
}

func TestLogin_RequiresFields(t *testing.T) {
	svc, api, _ := newService()
	_, err := svc.Login(context.Background(), LoginForm{Email: "ann@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, api.calls)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name string
		form SignupForm
		want error
	}{
		{"mismatch", SignupForm{Username: "ann", Email: "ann@example.com", Password: goodPassword, ConfirmPassword: "other"}, ErrPasswordMismatch},
		{"mismatch wins over weak", SignupForm{Username: "ann", Email: "ann@example.com", Password: "weak", ConfirmPassword: "weaker"}, ErrPasswordMismatch},
		{"weak", SignupForm{Username: "ann", Email: "ann@example.com", Password: "weakpass", ConfirmPassword: "weakpass"}, ErrWeakPassword},
		{"bad email", SignupForm{Username: "ann", Email: "nope", Password: goodPassword, ConfirmPassword: goodPassword}, ErrInvalidInput},
		{"missing username", SignupForm{Email: "ann@example.com", Password: goodPassword, ConfirmPassword: goodPassword}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, _ := newService()
			_, err := svc.Signup(context.Background(), tt.form)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, api.calls, "no request should be sent")
		})
	}
}

func TestSignup_MessagesAreVerbatim(t *testing.T) {
	assert.Equal(t, "Passwords do not match", gateway.UserMessage(ErrPasswordMismatch))
	assert.Equal(t, "Password must be at least 8 characters long and include uppercase, lowercase, a number, and a special character", gateway.UserMessage(ErrWeakPassword))
}

func TestSignup_OK(t *testing.T) {
	svc, api, sess := newService()
	msg, err := svc.Signup(context.Background(), SignupForm{Username: "ann", Email: "ann@example.com", Password: goodPassword, ConfirmPassword: goodPassword})
	require.NoError(t, err)
	assert.Equal(t, MsgSignupOK, msg)
	assert.Equal(t, []string{"register:ann"}, api.calls)
	assert.Equal(t, models.Session{}, sess.current, "signup without credentials must not sign in")

	api.registerSession = models.Session{Token: "t", UserID: "3"}
	_, err = svc.Signup(context.Background(), SignupForm{Username: "bob", Email: "bob@example.com", Password: goodPassword, ConfirmPassword: goodPassword})
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), sess.current.UserID)
}

func TestForgotPassword(t *testing.T) {
	svc, api, _ := newService()
	api.forgotMessage = "Password reset link sent"
	msg, err := svc.ForgotPassword(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Password reset link sent", msg)

	_, err = svc.ForgotPassword(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResetPassword(t *testing.T) {
	svc, api, _ := newService()
	_, err := svc.ResetPassword(context.Background(), ResetForm{Token: "rt", Password: goodPassword, ConfirmPassword: "x"})
	require.ErrorIs(t, err, ErrPasswordMismatch)

	msg, err := svc.ResetPassword(context.Background(), ResetForm{Token: "rt", Password: goodPassword, ConfirmPassword: goodPassword})
	require.NoError(t, err)
	assert.Equal(t, MsgResetOK, msg)
	assert.Equal(t, [2]string{"rt", goodPassword}, api.lastReset)

	api.err = &gateway.APIError{Status: 400, Message: "Failed to reset password", Fallback: true}
	_, err = svc.ResetPassword(context.Background(), ResetForm{Token: "rt", Password: goodPassword, ConfirmPassword: goodPassword})
	assert.Equal(t, "Failed to reset password", gateway.UserMessage(err))
}

func TestLogout(t *testing.T) {
	svc, _, sess := newService()
	sess.current = models.Session{Token: "t", UserID: "1"}
	msg, err := svc.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MsgLogoutOK, msg)
	assert.Equal(t, 1, sess.signOuts)
	assert.Equal(t, models.Session{}, sess.current)
}

func TestLogin_SignInFailure(t *testing.T) {
	api := &fakeAPI{loginSession: models.Session{Token: "t", UserID: "1"}}
	svc := NewAccountService(api, &fakeSessions{signInErr: errors.New("disk full")}, nil)
	_, err := svc.Login(context.Background(), LoginForm{Email: "ann@example.com", Password: "x"})
	require.ErrorContains(t, err, "disk full")
}

func TestContact(t *testing.T) {
	svc, api, _ := newService()
	_, err := svc.Contact(context.Background(), ContactForm{Name: "Ann", Email: "ann@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)

	msg, err := svc.Contact(context.Background(), ContactForm{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Love it"})
	require.NoError(t, err)
	assert.Equal(t, MsgContactOK, msg)
	assert.Equal(t, gateway.ContactForm{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Love it"}, api.lastContact)
}
