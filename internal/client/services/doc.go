// Package services contains the account flows of the client: login,
// signup, forgot and reset password, logout and the contact form. Form
// input is checked locally before anything is sent.
package services
