package domain

import (
	"errors"
	"time"
)

// Transaction statuses.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

var ErrInvalidAmount = errors.New("invalid amount")
var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is a payment record. The processor is mocked: every
// transaction settles as "success" immediately.
type Transaction struct {
	ID            int64     `json:"id" bson:"_id"`
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	UserID        int64     `json:"user_id" bson:"user_id"`
	Amount        float64   `json:"amount" bson:"amount"`
	Currency      string    `json:"currency" bson:"currency"`
	Status        string    `json:"status" bson:"status"`
	PropertyID    int64     `json:"property_id,omitempty" bson:"property_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
