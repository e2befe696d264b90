// Package notify delivers account emails (verification, password reset).
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Message is a plain-text email to a single recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// NoTLS disables STARTTLS, for local relays such as MailHog.
	NoTLS bool
}

// Mailer sends messages over SMTP.
type Mailer struct {
	cfg SMTPConfig

	// messagesSenderOverride receives messages instead of the SMTP server.
	// Not nil in tests only.
	messagesSenderOverride chan<- Message
}

// NewMailer creates a Mailer for cfg.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// NewTestMailer creates a Mailer that hands every message to out.
func NewTestMailer(from string, out chan<- Message) *Mailer {
	return &Mailer{cfg: SMTPConfig{From: from}, messagesSenderOverride: out}
}

func (m *Mailer) build(msg Message) (*mail.Msg, error) {
	if msg.To == "" {
		return nil, errors.New("mail recipient is required")
	}
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)
	mm.SetCharset(mail.CharsetUTF8)
	return mm, nil
}

// Send delivers msg.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm, err := m.build(msg)
	if err != nil {
		return err
	}

	slog.Info("Sending mail", "subject", msg.Subject, "to", msg.To)

	if m.messagesSenderOverride != nil {
		select {
		case m.messagesSenderOverride <- msg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.NoTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	c, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Mail not sent (no SMTP host configured)", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
