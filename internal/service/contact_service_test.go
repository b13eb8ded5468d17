package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
	"github.com/sanatech/marketing-api/pkg/mailer"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type contactRepoStub struct {
	created    *models.ContactSubmission
	createErr  error
	updateErr  error
	emailSent  *bool
	emailError *string
	stored     map[uint]models.ContactSubmission
	deleted    []uint
	nextID     uint
}

func newContactRepoStub() *contactRepoStub {
	return &contactRepoStub{stored: map[uint]models.ContactSubmission{}, nextID: 1}
}

func (c *contactRepoStub) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if c.createErr != nil {
		return c.createErr
	}
	submission.ID = c.nextID
	c.nextID++
	c.created = submission
	c.stored[submission.ID] = *submission
	return nil
}

func (c *contactRepoStub) GetByID(ctx context.Context, id uint) (models.ContactSubmission, error) {
	submission, ok := c.stored[id]
	if !ok {
		return models.ContactSubmission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (c *contactRepoStub) List(ctx context.Context, filter repository.ContactFilter) ([]models.ContactSubmission, int64, error) {
	var items []models.ContactSubmission
	for _, submission := range c.stored {
		if filter.Status == "" || submission.Status == filter.Status {
			items = append(items, submission)
		}
	}
	return items, int64(len(items)), nil
}

func (c *contactRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	submission, ok := c.stored[id]
	if !ok {
		return 0, nil
	}
	if status, ok := fields["status"].(string); ok {
		submission.Status = status
	}
	if priority, ok := fields["priority"].(string); ok {
		submission.Priority = priority
	}
	c.stored[id] = submission
	return 1, nil
}

func (c *contactRepoStub) UpdateEmailStatus(ctx context.Context, id uint, sent bool, sendErr *string) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.emailSent = &sent
	c.emailError = sendErr
	if submission, ok := c.stored[id]; ok {
		submission.EmailSent = sent
		submission.EmailError = sendErr
		c.stored[id] = submission
	}
	return nil
}

func (c *contactRepoStub) Delete(ctx context.Context, id uint) (int64, error) {
	if _, ok := c.stored[id]; !ok {
		return 0, nil
	}
	delete(c.stored, id)
	c.deleted = append(c.deleted, id)
	return 1, nil
}

func (c *contactRepoStub) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, submission := range c.stored {
		counts[submission.Status]++
	}
	return counts, nil
}

func (c *contactRepoStub) Recent(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	var items []models.ContactSubmission
	for _, submission := range c.stored {
		items = append(items, submission)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (c *contactRepoStub) EmailStats(ctx context.Context) (int64, int64, error) {
	var total, sent int64
	for _, submission := range c.stored {
		total++
		if submission.EmailSent {
			sent++
		}
	}
	return total, sent, nil
}

type senderStub struct {
	result mailer.Result
	sent   []mailer.Message
}

func (s *senderStub) Send(ctx context.Context, msg mailer.Message) mailer.Result {
	s.sent = append(s.sent, msg)
	return s.result
}

func contactPayload() dto.ContactSubmitRequest {
	return dto.ContactSubmitRequest{
		Name:    "Jane Doe",
		Email:   "Jane@Example.com",
		Subject: "Quote request",
		Message: "Please send pricing.",
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	repo := newContactRepoStub()
	sender := &senderStub{result: mailer.Result{Success: true}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{From: "noreply@example.com", Inbox: "ops@example.com"}, testLogger())

	resp, err := svc.Submit(context.Background(), contactPayload())
	require.NoError(t, err)
	require.True(t, resp.EmailNotification.Sent)
	require.Equal(t, "Admin notification sent", resp.EmailNotification.Message)
	require.Equal(t, "jane@example.com", resp.Contact.Email, "email should be lowercased")

	require.NotNil(t, repo.created)
	require.Equal(t, models.ContactStatusNew, repo.created.Status)
	require.NotEmpty(t, repo.created.ReferenceID)
	require.NotNil(t, repo.emailSent)
	require.True(t, *repo.emailSent)
	require.Nil(t, repo.emailError)

	require.Len(t, sender.sent, 1)
	require.Equal(t, "ops@example.com", sender.sent[0].To)
	require.Equal(t, "New Contact Form Submission - Quote request", sender.sent[0].Subject)
	require.Contains(t, sender.sent[0].HTML, "Jane Doe")
}

func TestContactSubmitEmailFailureStillSucceeds(t *testing.T) {
	repo := newContactRepoStub()
	sender := &senderStub{result: mailer.Result{Error: "connection refused"}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{Inbox: "ops@example.com"}, testLogger())

	resp, err := svc.Submit(context.Background(), contactPayload())
	require.NoError(t, err, "a notification failure must not fail the submission")
	require.False(t, resp.EmailNotification.Sent)
	require.Equal(t, "Contact saved, email notification bypassed", resp.EmailNotification.Message)

	require.NotNil(t, repo.emailSent)
	require.False(t, *repo.emailSent)
	require.NotNil(t, repo.emailError)
	require.Equal(t, "connection refused", *repo.emailError)
}

func TestContactSubmitEmailFailureWithoutReason(t *testing.T) {
	repo := newContactRepoStub()
	sender := &senderStub{result: mailer.Result{}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{Inbox: "ops@example.com"}, testLogger())

	_, err := svc.Submit(context.Background(), contactPayload())
	require.NoError(t, err)

	require.NotNil(t, repo.emailError)
	require.Equal(t, "email notification failed", *repo.emailError, "a silent failure still records a reason")
}

func TestContactSubmitRenderFailureCountsAsBypass(t *testing.T) {
	repo := newContactRepoStub()
	sender := &senderStub{result: mailer.Result{Success: true}}
	notify := NotificationConfig{
		Inbox: "ops@example.com",
		Render: func(dto.ContactSubmitRequest) (string, error) {
			return "", errors.New("template broken")
		},
	}
	svc := NewContactService(repo, sender, validator.New(), notify, testLogger())

	resp, err := svc.Submit(context.Background(), contactPayload())
	require.NoError(t, err)
	require.False(t, resp.EmailNotification.Sent)
	require.Empty(t, sender.sent, "no delivery attempt after a render failure")
	require.NotNil(t, repo.emailError)
	require.Contains(t, *repo.emailError, "template broken")
}

func TestContactSubmitValidationError(t *testing.T) {
	repo := newContactRepoStub()
	svc := NewContactService(repo, &senderStub{}, validator.New(), NotificationConfig{}, testLogger())

	_, err := svc.Submit(context.Background(), dto.ContactSubmitRequest{Name: "J", Email: "not-an-email"})
	require.Error(t, err)
	require.Nil(t, repo.created, "invalid submissions must not be persisted")
}

func TestContactSubmitPersistenceFailure(t *testing.T) {
	repo := newContactRepoStub()
	repo.createErr = errors.New("disk full")
	sender := &senderStub{result: mailer.Result{Success: true}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{}, testLogger())

	_, err := svc.Submit(context.Background(), contactPayload())
	require.Error(t, err)
	require.Empty(t, sender.sent, "no notification for an unsaved submission")
}

func TestContactSubmitOutcomeWriteFailureStillSucceeds(t *testing.T) {
	repo := newContactRepoStub()
	repo.updateErr = errors.New("write timeout")
	sender := &senderStub{result: mailer.Result{Success: true}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{Inbox: "ops@example.com"}, testLogger())

	resp, err := svc.Submit(context.Background(), contactPayload())
	require.NoError(t, err)
	require.True(t, resp.EmailNotification.Sent)
}

func TestContactSubmitSanitizesMarkup(t *testing.T) {
	repo := newContactRepoStub()
	sender := &senderStub{result: mailer.Result{Success: true}}
	svc := NewContactService(repo, sender, validator.New(), NotificationConfig{Inbox: "ops@example.com"}, testLogger())

	payload := contactPayload()
	payload.Message = "<script>alert(1)</script>Looking forward to it."

	_, err := svc.Submit(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, "Looking forward to it.", repo.created.Message)
}
