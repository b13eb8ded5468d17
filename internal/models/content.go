package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content block types rendered by the marketing site.
const (
	ContentTypeService     = "service"
	ContentTypeMission     = "mission"
	ContentTypePolicy      = "policy"
	ContentTypeAbout       = "about"
	ContentTypeHero        = "hero"
	ContentTypeTestimonial = "testimonial"
)

// ValidContentType reports whether the given type is one of the supported blocks.
func ValidContentType(contentType string) bool {
	switch contentType {
	case ContentTypeService, ContentTypeMission, ContentTypePolicy,
		ContentTypeAbout, ContentTypeHero, ContentTypeTestimonial:
		return true
	default:
		return false
	}
}

// ContentFeature is one highlight bullet attached to a content block.
type ContentFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Content is a structured block of site copy (service card, mission
// statement, policy, hero banner and so on).
type Content struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Type        string            `gorm:"size:32;not null;index" json:"type"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Subtitle    string            `gorm:"size:300" json:"subtitle"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Image       string            `gorm:"size:512" json:"image"`
	Icon        string            `gorm:"size:128" json:"icon"`
	Features    datatypes.JSON    `gorm:"type:json" json:"features"`
	Category    string            `gorm:"size:64" json:"category"`
	TagsRaw     string            `gorm:"column:tags;type:text" json:"-"`
	Priority    int               `gorm:"index" json:"priority"`
	IsActive    bool              `gorm:"not null;default:true;index" json:"is_active"`
	SEO         datatypes.JSONMap `gorm:"type:json" json:"seo"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Tags        []string          `gorm:"-" json:"tags"`
}

// BeforeSave normalises tag data before persisting.
func (c *Content) BeforeSave(tx *gorm.DB) error {
	c.TagsRaw = encodeTags(c.Tags)
	return nil
}

// AfterFind hydrates the tag list after retrieval.
func (c *Content) AfterFind(tx *gorm.DB) error {
	c.Tags = decodeTags(c.TagsRaw)
	return nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(strings.ToLower(tag))
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "|" + strings.Join(cleaned, "|") + "|"
}

func decodeTags(raw string) []string {
	raw = strings.Trim(raw, "|")
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		tags = append(tags, trimmed)
	}
	return tags
}
