// file: internals/helpers/mailer/mailer.go
package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"hoaportal_backend/internals/configs"
)

// Mailer is the outbound email collaborator. Billing flows treat sends as
// fire-and-forget: a failed send is logged, never propagated.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewFromEnv() *SMTPMailer {
	return &SMTPMailer{
		Host:     configs.SMTPHost,
		Port:     configs.SMTPPort,
		Username: configs.SMTPUser,
		Password: configs.SMTPPassword,
		From:     configs.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.Host == "" {
		log.Printf("[WARN] SMTP not configured, dropping mail to %s (%s)", to, subject)
		return nil
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		m.From, to, subject, body,
	))
	addr := m.Host + ":" + m.Port
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// SendAsync sends on a goroutine and only logs failures. Callers in the
// billing path must not block on, or fail with, mail delivery.
func SendAsync(m Mailer, to, subject, body string) {
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Printf("[ERROR] mail send to %s failed: %v", to, err)
		}
	}()
}
