package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/models"
)

// ContactFilter narrows contact submission queries.
type ContactFilter struct {
	Status string
	Page   int
	Limit  int
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
	GetByID(ctx context.Context, id uint) (models.ContactSubmission, error)
	List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	UpdateEmailStatus(ctx context.Context, id uint, sent bool, sendErr *string) error
	Delete(ctx context.Context, id uint) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, limit int) ([]models.ContactSubmission, error)
	EmailStats(ctx context.Context) (total, sent int64, err error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs a repository backed by GORM.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, submission *models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.WithContext(ctx).First(&submission, id).Error
	return submission, err
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactSubmission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var submissions []models.ContactSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (r *contactRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// UpdateEmailStatus records the notification outcome in a single write so a
// concurrent reader never observes the sent flag without its error detail.
func (r *contactRepository) UpdateEmailStatus(ctx context.Context, id uint, sent bool, sendErr *string) error {
	return r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"email_sent": sent, "email_error": sendErr}).
		Error
}

func (r *contactRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.ContactSubmission{}, id)
	return result.RowsAffected, result.Error
}

func (r *contactRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *contactRepository) Recent(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	if limit <= 0 {
		limit = 5
	}
	var submissions []models.ContactSubmission
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}

func (r *contactRepository) EmailStats(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var sent int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Where("email_sent = ?", true).
		Count(&sent).Error
	return total, sent, err
}
