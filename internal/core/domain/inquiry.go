package domain

import (
	"errors"
	"time"
)

// InquiryStatus is the workflow state of a buyer inquiry.
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryDone       InquiryStatus = "done"
	InquiryRejected   InquiryStatus = "rejected"
)

var ErrInquiryNotFound = errors.New("inquiry not found")
var ErrClientNotFound = errors.New("client not found")
var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrInvalidStatus = errors.New("invalid inquiry status")

// ValidInquiryStatus reports whether s is a known workflow state.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryDone, InquiryRejected:
		return true
	}
	return false
}

// Client is a prospective buyer or tenant, deduplicated by email then phone.
type Client struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Inquiry is a request about a property. PropertyID references the
// property service; it is verified over HTTP at creation time.
type Inquiry struct {
	ID         int64         `json:"id" bson:"_id"`
	PropertyID int64         `json:"property_id" bson:"property_id"`
	ClientID   int64         `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Name       string        `json:"name" bson:"name"`
	Email      string        `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Message    string        `json:"message,omitempty" bson:"message,omitempty"`
	Status     InquiryStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// Appointment is a scheduled viewing of a property with a client.
type Appointment struct {
	ID          int64     `json:"id" bson:"_id"`
	PropertyID  int64     `json:"property_id" bson:"property_id"`
	ClientID    int64     `json:"client_id" bson:"client_id"`
	ScheduledAt time.Time `json:"scheduled_at" bson:"scheduled_at"`
	Note        string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	// Client is denormalized into responses when available; nil when the
	// client record cannot be resolved.
	Client *Client `json:"client,omitempty" bson:"-"`
}
