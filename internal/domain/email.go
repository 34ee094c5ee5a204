package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// DemoConfirmationEmailData holds data for the submission confirmation email.
type DemoConfirmationEmailData struct {
	Email     string
	DemoName  string
	EventName string
	EventDate time.Time
	EventURL  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendDemoConfirmation(ctx context.Context, data *DemoConfirmationEmailData) error
}
