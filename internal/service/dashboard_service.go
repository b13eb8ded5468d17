package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardService aggregates admin dashboard statistics, caching the
// computed payload in Redis when a client is available.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	contacts repository.ContactRepository
	content  repository.ContentRepository
	cache    *redis.Client
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard aggregation service. The
// Redis client may be nil, in which case every call recomputes the stats.
func NewDashboardService(contacts repository.ContactRepository, content repository.ContentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		contacts: contacts,
		content:  content,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}

func (s *dashboardService) compute(ctx context.Context) (dto.DashboardStats, error) {
	byStatus, err := s.contacts.CountByStatus(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	recent, err := s.contacts.Recent(ctx, 5)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	recentOut := make([]dto.ContactSummary, 0, len(recent))
	for _, submission := range recent {
		recentOut = append(recentOut, dto.ContactSummary{
			ID:        submission.ID,
			Name:      submission.Name,
			Email:     submission.Email,
			Subject:   submission.Subject,
			CreatedAt: submission.CreatedAt,
		})
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}
	contacts := dto.ContactStats{
		Total:   total,
		New:     byStatus[models.ContactStatusNew],
		Read:    byStatus[models.ContactStatusRead],
		Replied: byStatus[models.ContactStatusReplied],
		Recent:  recentOut,
	}

	contentTotal, contentActive, err := s.content.Counts(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	rows, err := s.content.CountByType(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	byType := make([]dto.ContentTypeCount, 0, len(rows))
	for _, row := range rows {
		byType = append(byType, dto.ContentTypeCount{Type: row.Type, Total: row.Total, Active: row.Active})
	}

	emailTotal, emailSent, err := s.contacts.EmailStats(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	return dto.DashboardStats{
		Contacts: contacts,
		Content:  dto.ContentOverview{Total: contentTotal, Active: contentActive, ByType: byType},
		Email: dto.EmailDeliveryStats{
			Total:  emailTotal,
			Sent:   emailSent,
			Failed: emailTotal - emailSent,
		},
	}, nil
}

func (s *dashboardService) fromCache(ctx context.Context) (dto.DashboardStats, bool) {
	if s.cache == nil {
		return dto.DashboardStats{}, false
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
		return dto.DashboardStats{}, false
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache payload corrupt")
		return dto.DashboardStats{}, false
	}
	return stats, true
}

func (s *dashboardService) toCache(ctx context.Context, stats dto.DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache write failed")
	}
}
