package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/models"
)

// UploadRepository persists relayed asset metadata.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	DeleteByURL(ctx context.Context, url string) error
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs a repository backed by GORM.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) DeleteByURL(ctx context.Context, url string) error {
	return r.db.WithContext(ctx).Where("url = ?", url).Delete(&models.UploadRecord{}).Error
}
