package services

import (
	"context"
	"log"
)

// logMailer records outbound mail in the server log. Used until an email
// provider (SendGrid, SES) is wired in.
type logMailer struct{}

func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(_ context.Context, recipient, subject, body string) error {
	log.Printf("MAIL to=%s subject=%q body=%q", recipient, subject, body)
	return nil
}
