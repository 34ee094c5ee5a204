package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"demoday/internal/domain"
	"demoday/internal/monitoring"
)

type submissionService struct {
	eventRepo      domain.EventRepository
	demoRepo       domain.DemoRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewSubmissionService(eventRepo domain.EventRepository,
	demoRepo domain.DemoRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.SubmissionService {
	return &submissionService{
		eventRepo:      eventRepo,
		demoRepo:       demoRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *submissionService) SubmitDemo(ctx context.Context, eventID string, demo *domain.Demo) (*domain.Demo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if !domain.IsSubmissionOpen(event, time.Now()) {
		monitoring.SubmissionsRejected.Inc()
		return nil, domain.ErrSubmissionsClosed
	}

	index, err := s.demoRepo.NextIndex(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("next demo index: %w", err)
	}
	secret, err := generateDemoSecret()
	if err != nil {
		return nil, fmt.Errorf("generate demo secret: %w", err)
	}

	now := time.Now()
	demo.ID = uuid.NewString()
	demo.EventID = event.ID
	demo.Index = index
	demo.Secret = secret
	demo.CreatedAt = now
	demo.UpdatedAt = now

	if err := s.demoRepo.Create(ctx, demo); err != nil {
		return nil, fmt.Errorf("create demo: %w", err)
	}
	monitoring.SubmissionsAccepted.Inc()

	if demo.Email != "" {
		data := &domain.DemoConfirmationEmailData{
			Email:     demo.Email,
			DemoName:  demo.Name,
			EventName: event.Name,
			EventDate: event.Date,
			EventURL:  event.URL,
		}
		// Best effort; a failed confirmation email does not fail the submission.
		if err := s.emailService.SendDemoConfirmation(ctx, data); err != nil {
			log.Printf("[SUBMISSION] confirmation email to %s failed: %v", demo.Email, err)
		}
	}
	return demo, nil
}

func (s *submissionService) Status(ctx context.Context, eventID string) (*domain.SubmissionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &domain.SubmissionStatus{
		Open:     domain.IsSubmissionOpen(event, time.Now()),
		ClosesAt: domain.SubmissionDeadlineAt(event),
	}, nil
}
