package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

var (
	// ErrContentNotFound indicates the content block id does not resolve.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidContentType indicates an unsupported content block type.
	ErrInvalidContentType = errors.New("invalid content type")
)

// ContentService manages the structured blocks rendered by the marketing site.
type ContentService interface {
	List(ctx context.Context, req dto.ContentListRequest) ([]dto.ContentResponse, error)
	Get(ctx context.Context, id uint) (dto.ContentResponse, error)
	Create(ctx context.Context, req dto.ContentCreateRequest) (dto.ContentResponse, error)
	Update(ctx context.Context, id uint, req dto.ContentUpdateRequest) (dto.ContentResponse, error)
	Delete(ctx context.Context, id uint) error
	BulkSetActive(ctx context.Context, req dto.BulkStatusRequest) (int64, error)
	Stats(ctx context.Context) (dto.ContentStatsResponse, error)
}

type contentService struct {
	repo      repository.ContentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewContentService constructs the content block service.
func NewContentService(repo repository.ContentRepository, validate *validator.Validate, logger zerolog.Logger) ContentService {
	return &contentService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "content_service").Logger(),
	}
}

func (s *contentService) List(ctx context.Context, req dto.ContentListRequest) ([]dto.ContentResponse, error) {
	if req.Type != "" && !models.ValidContentType(req.Type) {
		return nil, ErrInvalidContentType
	}

	items, err := s.repo.List(ctx, repository.ContentFilter{
		Type:       req.Type,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ContentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toContentResponse(item))
	}
	return out, nil
}

func (s *contentService) Get(ctx context.Context, id uint) (dto.ContentResponse, error) {
	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContentResponse{}, ErrContentNotFound
		}
		return dto.ContentResponse{}, err
	}
	return toContentResponse(content), nil
}

func (s *contentService) Create(ctx context.Context, req dto.ContentCreateRequest) (dto.ContentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ContentResponse{}, err
	}
	if !models.ValidContentType(req.Type) {
		return dto.ContentResponse{}, ErrInvalidContentType
	}

	features, err := encodeFeatures(req.Features)
	if err != nil {
		return dto.ContentResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	content := models.Content{
		Type:        req.Type,
		Title:       s.clean(req.Title),
		Subtitle:    s.clean(req.Subtitle),
		Description: s.clean(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Icon:        strings.TrimSpace(req.Icon),
		Features:    features,
		Category:    s.clean(req.Category),
		Tags:        req.Tags,
		Priority:    req.Priority,
		IsActive:    active,
		SEO:         datatypes.JSONMap(req.SEO),
	}
	if err := s.repo.Create(ctx, &content); err != nil {
		return dto.ContentResponse{}, err
	}

	s.logger.Info().Uint("content_id", content.ID).Str("type", content.Type).Msg("content block created")

	return toContentResponse(content), nil
}

func (s *contentService) Update(ctx context.Context, id uint, req dto.ContentUpdateRequest) (dto.ContentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ContentResponse{}, err
	}
	if req.Type != nil && !models.ValidContentType(*req.Type) {
		return dto.ContentResponse{}, ErrInvalidContentType
	}

	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContentResponse{}, ErrContentNotFound
		}
		return dto.ContentResponse{}, err
	}

	if req.Type != nil {
		content.Type = *req.Type
	}
	if req.Title != nil {
		content.Title = s.clean(*req.Title)
	}
	if req.Subtitle != nil {
		content.Subtitle = s.clean(*req.Subtitle)
	}
	if req.Description != nil {
		content.Description = s.clean(*req.Description)
	}
	if req.Image != nil {
		content.Image = strings.TrimSpace(*req.Image)
	}
	if req.Icon != nil {
		content.Icon = strings.TrimSpace(*req.Icon)
	}
	if req.Features != nil {
		features, err := encodeFeatures(req.Features)
		if err != nil {
			return dto.ContentResponse{}, err
		}
		content.Features = features
	}
	if req.Category != nil {
		content.Category = s.clean(*req.Category)
	}
	if req.Tags != nil {
		content.Tags = req.Tags
	}
	if req.Priority != nil {
		content.Priority = *req.Priority
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}
	if req.SEO != nil {
		content.SEO = datatypes.JSONMap(req.SEO)
	}

	if err := s.repo.Save(ctx, &content); err != nil {
		return dto.ContentResponse{}, err
	}

	return toContentResponse(content), nil
}

func (s *contentService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContentNotFound
	}
	s.logger.Info().Uint("content_id", id).Msg("content block deleted")
	return nil
}

func (s *contentService) BulkSetActive(ctx context.Context, req dto.BulkStatusRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, err
	}
	return s.repo.BulkSetActive(ctx, req.IDs, *req.IsActive)
}

func (s *contentService) Stats(ctx context.Context) (dto.ContentStatsResponse, error) {
	overview, err := s.overview(ctx)
	if err != nil {
		return dto.ContentStatsResponse{}, err
	}

	recent, err := s.repo.Recent(ctx, 5)
	if err != nil {
		return dto.ContentStatsResponse{}, err
	}
	recentOut := make([]dto.ContentResponse, 0, len(recent))
	for _, item := range recent {
		recentOut = append(recentOut, toContentResponse(item))
	}

	return dto.ContentStatsResponse{Overview: overview, Recent: recentOut}, nil
}

func (s *contentService) overview(ctx context.Context) (dto.ContentOverview, error) {
	total, active, err := s.repo.Counts(ctx)
	if err != nil {
		return dto.ContentOverview{}, err
	}
	rows, err := s.repo.CountByType(ctx)
	if err != nil {
		return dto.ContentOverview{}, err
	}

	byType := make([]dto.ContentTypeCount, 0, len(rows))
	for _, row := range rows {
		byType = append(byType, dto.ContentTypeCount{Type: row.Type, Total: row.Total, Active: row.Active})
	}
	return dto.ContentOverview{Total: total, Active: active, ByType: byType}, nil
}

func (s *contentService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func encodeFeatures(features []models.ContentFeature) (datatypes.JSON, error) {
	if len(features) == 0 {
		return datatypes.JSON("[]"), nil
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func toContentResponse(content models.Content) dto.ContentResponse {
	features := []models.ContentFeature{}
	if len(content.Features) > 0 {
		// ignore malformed rows, the response just omits their features
		_ = json.Unmarshal(content.Features, &features)
	}

	tags := content.Tags
	if tags == nil {
		tags = []string{}
	}

	return dto.ContentResponse{
		ID:          content.ID,
		Type:        content.Type,
		Title:       content.Title,
		Subtitle:    content.Subtitle,
		Description: content.Description,
		Image:       content.Image,
		Icon:        content.Icon,
		Features:    features,
		Category:    content.Category,
		Tags:        tags,
		Priority:    content.Priority,
		IsActive:    content.IsActive,
		SEO:         content.SEO,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}
}
