package models

import "time"

// Form types sent along with contact submissions.
const (
	FormGeneral      = "contact"
	FormSolarInquiry = "solar_inquiry"
)

// Relay statuses recorded for an inquiry.
const (
	RelayDelivered = "delivered"
	RelayFailed    = "failed"
)

// Inquiry is a contact-form submission as recorded after relaying it.
type Inquiry struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	FormType        string    `gorm:"index" json:"form_type"`
	SubjectID       string    `gorm:"index" json:"subject_id"`
	SubjectLocation string    `json:"subject_location"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Message         string    `json:"message"`
	RelayStatus     string    `json:"relay_status"`
	RelayError      string    `json:"relay_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
