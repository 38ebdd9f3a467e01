package domain

import "time"

// Log levels accepted by the logging sink.
const (
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// LogEntry is an operational log line shipped by a sibling service.
type LogEntry struct {
	ID        int64     `json:"id" bson:"_id"`
	Service   string    `json:"service" bson:"service"`
	Level     string    `json:"level" bson:"level"`
	Message   string    `json:"message" bson:"message"`
	UserID    int64     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// LogStats aggregates stored entries by level and by origin service.
type LogStats struct {
	ByLevel   map[string]int64 `json:"by_level"`
	ByService map[string]int64 `json:"by_service"`
}
