package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/observability"
	"github.com/sanatech/marketing-api/internal/repository"
	"github.com/sanatech/marketing-api/pkg/mailer"
)

// NotificationConfig carries the operator mailbox and template renderer used
// for submission alerts. Both are injected so the pipeline is testable
// without network or template coupling.
type NotificationConfig struct {
	From   string
	Inbox  string
	Render func(req dto.ContactSubmitRequest) (string, error)
}

// ContactService exposes the public contact submission workflow.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactSubmitRequest) (dto.ContactSubmitResponse, error)
}

type contactService struct {
	repo      repository.ContactRepository
	sender    mailer.Sender
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	notify    NotificationConfig
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewContactService constructs the contact submission service.
func NewContactService(repo repository.ContactRepository, sender mailer.Sender, validate *validator.Validate, notify NotificationConfig, logger zerolog.Logger) ContactService {
	if notify.Render == nil {
		notify.Render = renderContactNotification
	}
	return &contactService{
		repo:      repo,
		sender:    sender,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		notify:    notify,
		logger:    logger.With().Str("component", "contact_service").Logger(),
		tracer:    otel.Tracer("github.com/sanatech/marketing-api/internal/service/contact"),
	}
}

// Submit persists the submission, attempts the operator notification
// best-effort, records the outcome on the stored record and reports success.
// Only a persistence failure fails the call; a notification failure never
// reaches the submitter.
func (s *contactService) Submit(ctx context.Context, req dto.ContactSubmitRequest) (dto.ContactSubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	req = s.sanitize(req)
	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ContactSubmitResponse{}, err
	}

	submission := models.ContactSubmission{
		ReferenceID: uuid.New().String(),
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Phone:       req.Phone,
		Company:     req.Company,
		Subject:     req.Subject,
		Message:     req.Message,
		Status:      models.ContactStatusNew,
		EmailSent:   false,
	}

	if err := s.repo.Create(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		return dto.ContactSubmitResponse{}, err
	}

	span.SetAttributes(attribute.String("contact.reference_id", submission.ReferenceID))

	result := s.notifyOperator(ctx, req)

	var sendErr *string
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "email notification failed"
		}
		sendErr = &reason
	}

	// Single write for both fields, applied before the response is built, so
	// no reader observes the attempted-but-unrecorded state.
	if err := s.repo.UpdateEmailStatus(ctx, submission.ID, result.Success, sendErr); err != nil {
		s.logger.Error().Err(err).
			Str("reference_id", submission.ReferenceID).
			Msg("failed to record email outcome on submission")
		observability.ContactEmailUpdateErrors().Inc()
	}

	notification := dto.EmailNotification{Sent: result.Success}
	if result.Success {
		notification.Message = "Admin notification sent"
		observability.ContactSubmissions().WithLabelValues("sent").Inc()
	} else {
		notification.Message = "Contact saved, email notification bypassed"
		observability.ContactSubmissions().WithLabelValues("bypassed").Inc()
		s.logger.Warn().
			Str("reference_id", submission.ReferenceID).
			Str("reason", result.Error).
			Msg("email notification failed, contact saved")
	}

	span.SetStatus(codes.Ok, "accepted")
	s.logger.Info().
		Str("reference_id", submission.ReferenceID).
		Bool("email_sent", result.Success).
		Msg("contact submission processed")

	return dto.ContactSubmitResponse{
		Contact: dto.ContactSummary{
			ID:        submission.ID,
			Name:      submission.Name,
			Email:     submission.Email,
			Subject:   submission.Subject,
			CreatedAt: submission.CreatedAt,
		},
		EmailNotification: notification,
	}, nil
}

func (s *contactService) sanitize(req dto.ContactSubmitRequest) dto.ContactSubmitRequest {
	clean := func(value string) string {
		return strings.TrimSpace(s.sanitizer.Sanitize(value))
	}
	req.Name = clean(req.Name)
	req.Email = clean(req.Email)
	req.Phone = clean(req.Phone)
	req.Company = clean(req.Company)
	req.Subject = clean(req.Subject)
	req.Message = clean(req.Message)
	return req
}

// notifyOperator makes exactly one delivery attempt. A render failure counts
// as a failed notification, not a failed submission.
func (s *contactService) notifyOperator(ctx context.Context, req dto.ContactSubmitRequest) mailer.Result {
	html, err := s.notify.Render(req)
	if err != nil {
		return mailer.Result{Error: "failed to render notification: " + err.Error()}
	}

	return s.sender.Send(ctx, mailer.Message{
		From:    s.notify.From,
		To:      s.notify.Inbox,
		Subject: "New Contact Form Submission - " + req.Subject,
		HTML:    html,
	})
}

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Form Submission</h2>
  <h3>Contact Details</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <h3>Message</h3>
  <p>{{.Message}}</p>
  <p><strong>Action Required:</strong> Please check your admin dashboard to view and respond to this message.</p>
</div>
`))

func renderContactNotification(req dto.ContactSubmitRequest) (string, error) {
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
