package gateway

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var (
	epRegister = endpoint{"auth.register", "Signup failed"}
	epLogin    = endpoint{"auth.login", "Login failed"}
	epForgot   = endpoint{"auth.forgot", "Request failed"}
	epReset    = endpoint{"auth.reset", "Failed to reset password"}
	epContact  = endpoint{"contact.submit", "Submission failed"}
)

type credentialsResponse struct {
	Token   string    `json:"token"`
	UserID  models.ID `json:"user_id"`
	Message string    `json:"message"`
}

func (r credentialsResponse) session() models.Session {
	return models.Session{Token: r.Token, UserID: r.UserID}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The returned session is empty unless the
// server chose to issue credentials right away.
func (c *Client) Register(ctx context.Context, username, email, password string) (models.Session, error) {
	var out credentialsResponse
	err := c.do(ctx, epRegister, call{
		method: http.MethodPost,
		path:   "/users/register",
		body:   registerRequest{Username: username, Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return models.Session{}, err
	}
	return out.session(), nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var out credentialsResponse
	err := c.do(ctx, epLogin, call{
		method: http.MethodPost,
		path:   "/users/login",
		body:   loginRequest{Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return models.Session{}, err
	}
	return out.session(), nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// ForgotPassword returns the server's message verbatim.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	err := c.do(ctx, epForgot, call{
		method: http.MethodPost,
		path:   "/users/forgot-password",
		body: struct {
			Email string `json:"email"`
		}{email},
		out: &out,
	})
	return out.Message, err
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, epReset, call{
		method: http.MethodPost,
		path:   "/users/reset-password",
		body:   resetRequest{Token: token, NewPassword: newPassword},
	})
}

// ContactForm is the payload of the contact page.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) Contact(ctx context.Context, form ContactForm) error {
	return c.do(ctx, epContact, call{method: http.MethodPost, path: "/contact", body: form})
}
