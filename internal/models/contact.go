package models

import "time"

// Contact submission lifecycle states.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ValidContactStatus reports whether the given status is a known lifecycle state.
func ValidContactStatus(status string) bool {
	switch status {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied:
		return true
	default:
		return false
	}
}

// ContactSubmission stores one inbound contact-form entry.
type ContactSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReferenceID string    `gorm:"size:64;uniqueIndex" json:"reference_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Email       string    `gorm:"size:160;not null" json:"email"`
	Phone       string    `gorm:"size:32" json:"phone"`
	Company     string    `gorm:"size:160" json:"company"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Status      string    `gorm:"size:16;not null;default:new;index" json:"status"`
	Priority    string    `gorm:"size:32" json:"priority"`
	EmailSent   bool      `gorm:"not null;default:false" json:"email_sent"`
	EmailError  *string   `gorm:"type:text" json:"email_error"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
