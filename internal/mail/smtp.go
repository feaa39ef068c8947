// Package mail implements the EmailSender collaborator over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/nibbleworks/userbase/pkg/slogx"

	gomail "github.com/go-mail/mail"
)

type Config struct {
	Host string
	Port int
	From string
	User string
	Pass string

	// InsecureSkipVerify disables certificate checks. Dev only.
	InsecureSkipVerify bool
}

// Sender delivers mail through an SMTP relay, negotiating STARTTLS when the
// server offers it.
type Sender struct {
	cfg Config
}

func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, to, toName, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.InsecureSkipVerify, // #nosec G402
	}

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("mail sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

// Noop discards mail. It stands in when no SMTP relay is configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, toName, subject, body string) error {
	slogx.FromContext(ctx).Info("mail delivery disabled, dropping message",
		slog.String("to", to), slog.String("subject", subject))
	return nil
}
