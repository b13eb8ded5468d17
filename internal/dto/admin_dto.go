package dto

import "time"

// RegisterRequest creates a new admin account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=160"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"omitempty,max=32"`
}

// LoginRequest authenticates an admin.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminProfile is the safe view of an admin account.
type AdminProfile struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username,omitempty"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AuthResponse carries the authenticated admin and a signed bearer token.
type AuthResponse struct {
	Admin AdminProfile `json:"admin"`
	Token string       `json:"token"`
}

// ProfileUpdateRequest changes mutable profile fields.
type ProfileUpdateRequest struct {
	Username string `json:"username" validate:"omitempty,max=64"`
	Email    string `json:"email" validate:"omitempty,email,max=160"`
}

// ContactStats aggregates submissions by lifecycle state.
type ContactStats struct {
	Total   int64            `json:"total"`
	New     int64            `json:"new"`
	Read    int64            `json:"read"`
	Replied int64            `json:"replied"`
	Recent  []ContactSummary `json:"recent"`
}

// ContentTypeCount is the number of content blocks of one type.
type ContentTypeCount struct {
	Type   string `json:"type"`
	Total  int64  `json:"total"`
	Active int64  `json:"active"`
}

// ContentOverview aggregates content blocks.
type ContentOverview struct {
	Total  int64              `json:"total"`
	Active int64              `json:"active"`
	ByType []ContentTypeCount `json:"byType"`
}

// EmailDeliveryStats summarises notification outcomes across all submissions.
type EmailDeliveryStats struct {
	Total  int64 `json:"totalEmails"`
	Sent   int64 `json:"successfulEmails"`
	Failed int64 `json:"failedEmails"`
}

// DashboardStats is the aggregated admin dashboard payload.
type DashboardStats struct {
	Contacts ContactStats       `json:"contacts"`
	Content  ContentOverview    `json:"content"`
	Email    EmailDeliveryStats `json:"email"`
}
