package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService replaces the content table with a curated starter set.
type SeedService interface {
	SeedContent(ctx context.Context, token string, items []models.Content) (int64, error)
}

type seedService struct {
	contentRepo repository.ContentRepository
	enabled     bool
	token       string
	logger      zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(contentRepo repository.ContentRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		contentRepo: contentRepo,
		enabled:     enabled,
		token:       token,
		logger:      logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedContent(ctx context.Context, token string, items []models.Content) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	if len(items) == 0 {
		items = DefaultContent()
	}
	for i := range items {
		if items[i].Type == "" || !models.ValidContentType(items[i].Type) {
			return 0, ErrInvalidContentType
		}
	}

	affected, err := s.contentRepo.ReplaceAll(ctx, items)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("content seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	provided := strings.TrimSpace(token)
	if len(expected) != len(provided) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// DefaultContent is the starter set installed when seeding with no payload.
func DefaultContent() []models.Content {
	return []models.Content{
		{
			Type:        models.ContentTypeHero,
			Title:       "Engineering that ships",
			Subtitle:    "Software, delivered end to end",
			Description: "We design, build and operate software products for companies that need results, not slideware.",
			Priority:    100,
			IsActive:    true,
		},
		{
			Type:        models.ContentTypeMission,
			Title:       "Our mission",
			Description: "Help small teams punch above their weight with dependable, maintainable software.",
			Priority:    90,
			IsActive:    true,
		},
		{
			Type:        models.ContentTypeService,
			Title:       "Product development",
			Description: "Full-cycle web and mobile product development from discovery to launch.",
			Category:    "development",
			Priority:    80,
			IsActive:    true,
			Tags:        []string{"web", "mobile"},
		},
		{
			Type:        models.ContentTypeService,
			Title:       "Cloud operations",
			Description: "Infrastructure automation, monitoring and managed deployments.",
			Category:    "operations",
			Priority:    70,
			IsActive:    true,
			Tags:        []string{"cloud", "devops"},
		},
		{
			Type:        models.ContentTypeAbout,
			Title:       "About us",
			Description: "A small senior team with two decades of combined experience building production systems.",
			Priority:    60,
			IsActive:    true,
		},
	}
}
