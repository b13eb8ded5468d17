package dto

import (
	"time"

	"github.com/sanatech/marketing-api/internal/models"
)

// ContentCreateRequest creates a new content block.
type ContentCreateRequest struct {
	Type        string                  `json:"type" validate:"required"`
	Title       string                  `json:"title" validate:"required,max=200"`
	Subtitle    string                  `json:"subtitle" validate:"omitempty,max=300"`
	Description string                  `json:"description" validate:"required,max=5000"`
	Image       string                  `json:"image" validate:"omitempty,max=512"`
	Icon        string                  `json:"icon" validate:"omitempty,max=128"`
	Features    []models.ContentFeature `json:"features" validate:"omitempty,dive"`
	Category    string                  `json:"category" validate:"omitempty,max=64"`
	Tags        []string                `json:"tags"`
	Priority    int                     `json:"priority"`
	IsActive    *bool                   `json:"isActive"`
	SEO         map[string]interface{}  `json:"seo"`
}

// ContentUpdateRequest applies a partial update to a content block. Nil
// pointers leave the stored value untouched.
type ContentUpdateRequest struct {
	Type        *string                 `json:"type"`
	Title       *string                 `json:"title" validate:"omitempty,max=200"`
	Subtitle    *string                 `json:"subtitle" validate:"omitempty,max=300"`
	Description *string                 `json:"description" validate:"omitempty,max=5000"`
	Image       *string                 `json:"image" validate:"omitempty,max=512"`
	Icon        *string                 `json:"icon" validate:"omitempty,max=128"`
	Features    []models.ContentFeature `json:"features" validate:"omitempty,dive"`
	Category    *string                 `json:"category" validate:"omitempty,max=64"`
	Tags        []string                `json:"tags"`
	Priority    *int                    `json:"priority"`
	IsActive    *bool                   `json:"isActive"`
	SEO         map[string]interface{}  `json:"seo"`
}

// ContentResponse is the public view of a content block.
type ContentResponse struct {
	ID          uint                    `json:"id"`
	Type        string                  `json:"type"`
	Title       string                  `json:"title"`
	Subtitle    string                  `json:"subtitle,omitempty"`
	Description string                  `json:"description"`
	Image       string                  `json:"image,omitempty"`
	Icon        string                  `json:"icon,omitempty"`
	Features    []models.ContentFeature `json:"features"`
	Category    string                  `json:"category,omitempty"`
	Tags        []string                `json:"tags"`
	Priority    int                     `json:"priority"`
	IsActive    bool                    `json:"isActive"`
	SEO         map[string]interface{}  `json:"seo,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// ContentListRequest filters the public content listing.
type ContentListRequest struct {
	Type       string
	ActiveOnly bool
}

// BulkStatusRequest toggles visibility for a batch of content blocks.
type BulkStatusRequest struct {
	IDs      []uint `json:"ids" validate:"required,min=1"`
	IsActive *bool  `json:"isActive" validate:"required"`
}

// ContentStatsResponse is the admin content statistics payload.
type ContentStatsResponse struct {
	Overview ContentOverview   `json:"overview"`
	Recent   []ContentResponse `json:"recent"`
}
