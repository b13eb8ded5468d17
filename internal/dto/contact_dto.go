package dto

import "time"

// ContactSubmitRequest defines the expected payload for the public contact form.
type ContactSubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email,max=160"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Company string `json:"company" validate:"omitempty,max=160"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactSummary carries the submitter-visible core fields of a stored submission.
type ContactSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailNotification reports the best-effort notification outcome to the submitter.
type EmailNotification struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// ContactSubmitResponse is the payload returned for an accepted submission.
type ContactSubmitResponse struct {
	Contact           ContactSummary    `json:"contact"`
	EmailNotification EmailNotification `json:"emailNotification"`
}

// ContactResponse is the full operator-facing view of a submission.
type ContactResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority,omitempty"`
	EmailSent  bool      `json:"emailSent"`
	EmailError *string   `json:"emailError"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ContactListRequest narrows the operator listing.
type ContactListRequest struct {
	Status string
	Page   int
	Limit  int
}

// ContactListResponse wraps a page of submissions.
type ContactListResponse struct {
	Items      []ContactResponse `json:"contacts"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ContactUpdateRequest applies a partial operator update. Only supplied
// fields are touched.
type ContactUpdateRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}
