package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/repository"
)

func seedDashboardData(t *testing.T, db *gorm.DB) {
	t.Helper()
	submissions := []models.ContactSubmission{
		{ReferenceID: "a", Name: "A", Email: "a@example.com", Subject: "s", Message: "m", Status: models.ContactStatusNew},
		{ReferenceID: "b", Name: "B", Email: "b@example.com", Subject: "s", Message: "m", Status: models.ContactStatusRead, EmailSent: true},
		{ReferenceID: "c", Name: "C", Email: "c@example.com", Subject: "s", Message: "m", Status: models.ContactStatusReplied, EmailSent: true},
	}
	for i := range submissions {
		require.NoError(t, db.Create(&submissions[i]).Error)
	}
	require.NoError(t, db.Create(&models.Content{Type: models.ContentTypeService, Title: "A", Description: "d", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Content{Type: models.ContentTypeHero, Title: "B", Description: "d", IsActive: false}).Error)
}

func TestDashboardStatsWithoutCache(t *testing.T) {
	db := setupServiceDB(t, &models.ContactSubmission{}, &models.Content{})
	seedDashboardData(t, db)

	svc := NewDashboardService(repository.NewContactRepository(db), repository.NewContentRepository(db), nil, time.Minute, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Contacts.Total)
	require.Equal(t, int64(1), stats.Contacts.New)
	require.Equal(t, int64(1), stats.Contacts.Read)
	require.Equal(t, int64(1), stats.Contacts.Replied)
	require.Len(t, stats.Contacts.Recent, 3)

	require.Equal(t, int64(2), stats.Content.Total)
	require.Equal(t, int64(1), stats.Content.Active)

	require.Equal(t, int64(3), stats.Email.Total)
	require.Equal(t, int64(2), stats.Email.Sent)
	require.Equal(t, int64(1), stats.Email.Failed)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	db := setupServiceDB(t, &models.ContactSubmission{}, &models.Content{})
	seedDashboardData(t, db)

	svc := NewDashboardService(repository.NewContactRepository(db), repository.NewContentRepository(db), redisClient, time.Minute, testLogger())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.True(t, server.Exists(dashboardCacheKey))

	// New rows are invisible until the cache expires or is invalidated.
	require.NoError(t, db.Create(&models.ContactSubmission{ReferenceID: "d", Name: "D", Email: "d@example.com", Subject: "s", Message: "m", Status: models.ContactStatusNew}).Error)

	cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Contacts.Total, cached.Contacts.Total)

	svc.Invalidate(context.Background())
	require.False(t, server.Exists(dashboardCacheKey))

	fresh, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Contacts.Total+1, fresh.Contacts.Total)
}

func TestDashboardStatsCorruptCacheRecomputes(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	db := setupServiceDB(t, &models.ContactSubmission{}, &models.Content{})
	seedDashboardData(t, db)

	require.NoError(t, server.Set(dashboardCacheKey, "{not json"))

	svc := NewDashboardService(repository.NewContactRepository(db), repository.NewContentRepository(db), redisClient, time.Minute, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Contacts.Total)
}
