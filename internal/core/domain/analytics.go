package domain

import "time"

// Analytics event types tracked by the gateway and services.
const (
	EventPropertyView  = "property_view"
	EventSearch        = "search"
	EventInquiryCreate = "inquiry_create"
	EventPageView      = "page_view"
)

// Event is a single analytics fact. ResourceID and UserID are optional
// foreign keys into the property and auth services.
type Event struct {
	ID         int64     `json:"id" bson:"_id"`
	EventType  string    `json:"event_type" bson:"event_type"`
	ResourceID int64     `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	UserID     int64     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Metadata   string    `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// EventStats is the aggregate view returned by the stats endpoint.
type EventStats struct {
	TotalEvents  int64            `json:"total_events"`
	TotalViews   int64            `json:"total_views"`
	UniqueUsers  int64            `json:"unique_users"`
	EventsByType map[string]int64 `json:"events_by_type"`
}
