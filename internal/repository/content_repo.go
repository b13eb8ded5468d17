package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/models"
)

// ContentFilter narrows content block queries.
type ContentFilter struct {
	Type       string
	ActiveOnly bool
}

// ContentRepository persists structured content blocks.
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id uint) (models.Content, error)
	List(ctx context.Context, filter ContentFilter) ([]models.Content, error)
	Save(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id uint) (int64, error)
	BulkSetActive(ctx context.Context, ids []uint, active bool) (int64, error)
	Counts(ctx context.Context) (total, active int64, err error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	Recent(ctx context.Context, limit int) ([]models.Content, error)
	ReplaceAll(ctx context.Context, items []models.Content) (int64, error)
}

// TypeCount is one row of the per-type aggregation.
type TypeCount struct {
	Type   string
	Total  int64
	Active int64
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository constructs a repository backed by GORM.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (models.Content, error) {
	var content models.Content
	err := r.db.WithContext(ctx).First(&content, id).Error
	return content, err
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]models.Content, error) {
	query := r.db.WithContext(ctx).Model(&models.Content{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var items []models.Content
	err := query.Order("priority DESC").Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *contentRepository) Save(ctx context.Context, content *models.Content) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *contentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Content{}, id)
	return result.RowsAffected, result.Error
}

func (r *contentRepository) BulkSetActive(ctx context.Context, ids []uint, active bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id IN ?", ids).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

func (r *contentRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Content{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var active int64
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("is_active = ?", true).
		Count(&active).Error
	return total, active, err
}

func (r *contentRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Select("type, COUNT(*) AS total, SUM(CASE WHEN is_active THEN 1 ELSE 0 END) AS active").
		Group("type").
		Order("type ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *contentRepository) Recent(ctx context.Context, limit int) ([]models.Content, error) {
	if limit <= 0 {
		limit = 5
	}
	var items []models.Content
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ReplaceAll swaps the whole content table for the supplied seed set.
func (r *contentRepository) ReplaceAll(ctx context.Context, items []models.Content) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Content{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		result := tx.Create(&items)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
