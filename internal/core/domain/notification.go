package domain

import (
	"errors"
	"time"
)

// Notification channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
)

// Broadcast recipients visible to every user.
const (
	RecipientAgents   = "agents@agency.com"
	RecipientAllUsers = "all-users@agency.com"
)

var ErrNotificationNotFound = errors.New("notification not found")

// ValidChannel reports whether ch is a supported delivery channel.
func ValidChannel(ch string) bool {
	return ch == ChannelEmail || ch == ChannelSMS || ch == ChannelPush
}

// Notification is a stored outbound message. Delivery is mocked: the
// send is a structured log line, the row is the audit trail.
type Notification struct {
	ID        int64     `json:"id" bson:"_id"`
	Recipient string    `json:"recipient" bson:"recipient"`
	Channel   string    `json:"channel" bson:"channel"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
