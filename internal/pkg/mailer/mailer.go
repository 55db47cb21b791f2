// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// IMailer sends account mail. A nil-configured deployment swaps in a no-op
// implementation so mail features degrade instead of failing.
type IMailer interface {
	SendForwardEmailVerification(to, verifyURL string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendForwardEmailVerification(to, verifyURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your forwarding address")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Click the link below to start receiving question notifications at this address.</p>"+
			"<p><a href=%q>Verify this address</a></p>"+
			"<p>If you did not request this, you can ignore this mail.</p>",
		verifyURL,
	))
	return m.dialer.DialAndSend(msg)
}

// Noop drops all mail. Used when SMTP is not configured.
type Noop struct{}

func (Noop) SendForwardEmailVerification(string, string) error { return nil }
