package services

import (
	"context"
	"fmt"
	"log"

	"demoday/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendDemoConfirmation sends the submission confirmation email using the
// "demo_confirmation" template and the given data.
func (s *emailService) SendDemoConfirmation(ctx context.Context, data *domain.DemoConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("demo confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("demo_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render demo_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Submission confirmation sent to %s", data.Email)
	return nil
}
