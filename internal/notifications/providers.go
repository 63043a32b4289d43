package notifications

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// ConsoleProvider prints e-mails instead of sending them. Used when SMTP is
// not configured.
type ConsoleProvider struct {
	out io.Writer
}

// Ensure ConsoleProvider implements EmailProvider
var _ EmailProvider = (*ConsoleProvider)(nil)

// NewConsoleProvider creates a provider writing to out
func NewConsoleProvider(out io.Writer) *ConsoleProvider {
	return &ConsoleProvider{out: out}
}

// Name returns the provider name
func (p *ConsoleProvider) Name() string {
	return "console"
}

// Send writes the plain text version of email
func (p *ConsoleProvider) Send(email Email) error {
	rule := strings.Repeat("=", 80)

	_, err := fmt.Fprintf(p.out, "\n%s\nEMAIL SENT (CONSOLE MODE)\n%s\nTo: %s\nSubject: %s\n%s\n%s\n%s\n",
		rule, rule, email.To, email.Subject, strings.Repeat("-", 80), strings.TrimSpace(email.TextBody), rule)
	if err != nil {
		return fmt.Errorf("failed to write email to console: %w", err)
	}
	return nil
}

// Dialer sends gomail messages; satisfied by *gomail.Dialer
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPProvider sends e-mails through an SMTP server
type SMTPProvider struct {
	dialer Dialer
	from   string
}

// Ensure SMTPProvider implements EmailProvider
var _ EmailProvider = (*SMTPProvider)(nil)

// NewSMTPProvider creates a provider that authenticates against host:port
func NewSMTPProvider(host string, port int, username, password, from string) *SMTPProvider {
	return NewSMTPProviderWithDialer(gomail.NewDialer(host, port, username, password), from)
}

// NewSMTPProviderWithDialer creates a provider using a custom dialer
func NewSMTPProviderWithDialer(dialer Dialer, from string) *SMTPProvider {
	return &SMTPProvider{dialer: dialer, from: from}
}

// Name returns the provider name
func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Send delivers email as a multipart/alternative message
func (p *SMTPProvider) Send(email Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.TextBody)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}

	logrus.Debugf("Sent email %q to %s", email.Subject, email.To)
	return nil
}
