package service

import "context"

// PasswordResetMail carries everything the mail layer needs to deliver a
// reset message: the recipient and the reset URL embedding the token.
type PasswordResetMail struct {
	ToAddress string
	ToName    string
	ResetURL  string
}

// Mailer defines the interface for outbound mail delivery.
type Mailer interface {
	// SendPasswordReset delivers a password-reset message.
	SendPasswordReset(ctx context.Context, mail *PasswordResetMail) error
}
