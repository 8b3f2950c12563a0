// Package mail implements outbound mail delivery over SMTP.
package mail

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"storemap/config"
	"storemap/internal/domain/service"
	"storemap/internal/errors"
)

// smtpMailer is a concrete implementation of the Mailer interface using SMTP.
type smtpMailer struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp settings must be provided")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTP.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTP.Username),
			gomail.WithPassword(cfg.SMTP.Password),
		)
	}

	client, err := gomail.NewClient(cfg.SMTP.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}

	return &smtpMailer{
		client: client,
		from:   cfg.SMTP.From,
		logger: logger,
	}, nil
}

// SendPasswordReset delivers a password-reset message to the given recipient.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, mail *service.PasswordResetMail) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "set mail sender")
	}
	if err := msg.AddToFormat(mail.ToName, mail.ToAddress); err != nil {
		return errors.Wrap(err, "set mail recipient")
	}

	msg.Subject("Password Reset")
	msg.SetBodyString(gomail.TypeTextPlain, passwordResetText(mail.ResetURL))
	msg.AddAlternativeString(gomail.TypeTextHTML, passwordResetHTML(mail.ResetURL))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "send password reset mail")
	}

	m.logger.InfoContext(ctx, "password reset mail sent", slog.String("to", mail.ToAddress))

	return nil
}

func passwordResetText(resetURL string) string {
	return fmt.Sprintf("You requested a password reset.\n\nVisit the link below to choose a new password. The link is valid for one hour.\n\n%s\n\nIf you didn't request this, you can safely ignore this mail.\n", resetURL)
}

func passwordResetHTML(resetURL string) string {
	escaped := html.EscapeString(resetURL)

	return fmt.Sprintf(`<p>You requested a password reset.</p>
<p><a href="%s">Click here to choose a new password</a>. The link is valid for one hour.</p>
<p>If you didn't request this, you can safely ignore this mail.</p>
<p><small>%s</small></p>`, escaped, escaped)
}
