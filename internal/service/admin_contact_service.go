package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

var (
	// ErrContactNotFound indicates the submission id does not resolve.
	ErrContactNotFound = errors.New("contact submission not found")
	// ErrInvalidContactStatus indicates an unsupported lifecycle state.
	ErrInvalidContactStatus = errors.New("invalid contact status")
)

// AdminContactService exposes the operator-facing submission workflow.
type AdminContactService interface {
	List(ctx context.Context, req dto.ContactListRequest) (dto.ContactListResponse, error)
	Get(ctx context.Context, id uint) (dto.ContactResponse, error)
	Update(ctx context.Context, id uint, req dto.ContactUpdateRequest) (dto.ContactResponse, error)
	Delete(ctx context.Context, id uint) error
}

type adminContactService struct {
	repo   repository.ContactRepository
	logger zerolog.Logger
}

// NewAdminContactService constructs the operator contact service.
func NewAdminContactService(repo repository.ContactRepository, logger zerolog.Logger) AdminContactService {
	return &adminContactService{
		repo:   repo,
		logger: logger.With().Str("component", "admin_contact_service").Logger(),
	}
}

func (s *adminContactService) List(ctx context.Context, req dto.ContactListRequest) (dto.ContactListResponse, error) {
	filter := repository.ContactFilter{
		Status: strings.TrimSpace(req.Status),
		Page:   normalizePage(req.Page),
		Limit:  clampPageSize(req.Limit),
	}

	submissions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ContactListResponse{}, err
	}

	items := make([]dto.ContactResponse, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, toContactResponse(submission))
	}

	return dto.ContactListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: calculateTotalPages(total, filter.Limit),
		},
	}, nil
}

// Get fetches a single submission. A submission still in the new state is
// marked read before the response is returned (auto-read).
func (s *adminContactService) Get(ctx context.Context, id uint) (dto.ContactResponse, error) {
	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactResponse{}, ErrContactNotFound
		}
		return dto.ContactResponse{}, err
	}

	if submission.Status == models.ContactStatusNew {
		if _, err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"status": models.ContactStatusRead}); err != nil {
			return dto.ContactResponse{}, err
		}
		submission.Status = models.ContactStatusRead
	}

	return toContactResponse(submission), nil
}

// Update applies only the supplied fields. No prior-state check is enforced:
// operators may move a submission to any lifecycle state.
func (s *adminContactService) Update(ctx context.Context, id uint, req dto.ContactUpdateRequest) (dto.ContactResponse, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		if !models.ValidContactStatus(*req.Status) {
			return dto.ContactResponse{}, ErrInvalidContactStatus
		}
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}

	if len(fields) > 0 {
		affected, err := s.repo.UpdateFields(ctx, id, fields)
		if err != nil {
			return dto.ContactResponse{}, err
		}
		if affected == 0 {
			return dto.ContactResponse{}, ErrContactNotFound
		}
	}

	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactResponse{}, ErrContactNotFound
		}
		return dto.ContactResponse{}, err
	}

	return toContactResponse(submission), nil
}

func (s *adminContactService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContactNotFound
	}

	s.logger.Info().Uint("contact_id", id).Msg("contact submission deleted")
	return nil
}

func toContactResponse(submission models.ContactSubmission) dto.ContactResponse {
	return dto.ContactResponse{
		ID:         submission.ID,
		Name:       submission.Name,
		Email:      submission.Email,
		Phone:      submission.Phone,
		Company:    submission.Company,
		Subject:    submission.Subject,
		Message:    submission.Message,
		Status:     submission.Status,
		Priority:   submission.Priority,
		EmailSent:  submission.EmailSent,
		EmailError: submission.EmailError,
		CreatedAt:  submission.CreatedAt,
		UpdatedAt:  submission.UpdatedAt,
	}
}
