package mail

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer delivers notification emails over SMTP.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewMailer(host string, port int, user, pass, fromName string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     user,
		fromName: fromName,
	}
}

func (m *Mailer) Send(toName, toEmail, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetAddressHeader("To", toEmail, toName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}

// LogSender stands in when SMTP is not configured; it records the send
// instead of delivering it.
type LogSender struct{}

func (LogSender) Send(toName, toEmail, subject, _ string) error {
	log.Printf("mail (disabled): to=%s <%s> subject=%q", toName, toEmail, subject)
	return nil
}
