// Package notify delivers reminder e-mails
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"
)

// Message is a plain-text e-mail
type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer sends messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the outgoing mail server settings
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to send mail
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send implements Mailer. The SMTP client does not take a context; ctx is
// only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

// NoopMailer drops every message. It is used when SMTP is not configured.
type NoopMailer struct{}

// Send implements Mailer
func (NoopMailer) Send(ctx context.Context, msg Message) error { return nil }

// BillReminder builds the reminder e-mail for a user's due and overdue bills
func BillReminder(to, name, currency string, upcoming, overdue []finance.BillDue) Message {
	var b strings.Builder
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)

	if len(overdue) > 0 {
		b.WriteString("These bills are overdue:\n")
		for _, d := range overdue {
			fmt.Fprintf(&b, "  - %s: %s (%d days late)\n",
				d.Bill.Name, finance.FormatCurrency(d.Bill.Amount, currency), -d.DaysUntilDue)
		}
		b.WriteString("\n")
	}
	if len(upcoming) > 0 {
		b.WriteString("These bills are coming up:\n")
		for _, d := range upcoming {
			when := fmt.Sprintf("in %d days", d.DaysUntilDue)
			switch d.DaysUntilDue {
			case 0:
				when = "today"
			case 1:
				when = "tomorrow"
			}
			fmt.Fprintf(&b, "  - %s: %s due %s\n",
				d.Bill.Name, finance.FormatCurrency(d.Bill.Amount, currency), when)
		}
		b.WriteString("\n")
	}
	b.WriteString("Finwise")

	subject := "Upcoming bills"
	if len(overdue) > 0 {
		subject = "Overdue bills need attention"
	}
	return Message{To: to, Subject: subject, Text: b.String()}
}
