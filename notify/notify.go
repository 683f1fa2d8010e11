// Package notify delivers triggered-alert messages to their recipients.
// Delivery is fire and forget: a failed notification is logged by the caller
// and never rolls back the alert evaluation that produced it.
package notify

import "log"

// Notifier delivers one rendered message to one recipient.
type Notifier interface {
	Notify(recipient, subject, body string) error
}

// Log writes notifications to the standard logger instead of delivering
// them. It is the default when no SMTP credentials are configured.
type Log struct{}

func (Log) Notify(recipient, subject, body string) error {
	log.Printf("notify %s: %s: %s", recipient, subject, body)
	return nil
}
