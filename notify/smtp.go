package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP delivers notifications by email through an authenticated SMTP relay
// with STARTTLS.
type SMTP struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // e.g. 587
	From     string // sender address, also the auth user
	Password string // app password
}

// Notify sends one plain-text email.
func (s SMTP) Notify(recipient, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	if err := smtp.SendMail(addr, auth, s.From, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", recipient, err)
	}
	return nil
}
