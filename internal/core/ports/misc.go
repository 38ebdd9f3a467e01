package ports

import (
	"context"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
)

// NotificationRepository persists the outbound-message audit trail.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	ListForRecipient(ctx context.Context, recipients []string) ([]domain.Notification, error)
}

// NotificationService records and (mock-)delivers messages.
type NotificationService interface {
	Send(ctx context.Context, recipient, channel, message string) (*domain.Notification, error)
	// List scopes results by the caller: agents see everything, users
	// see their own plus the broadcast recipients.
	List(ctx context.Context, claims token.Claims) ([]domain.Notification, error)
}

// EventRepository persists analytics events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	List(ctx context.Context, eventType string, limit int64) ([]domain.Event, error)
	Stats(ctx context.Context) (*domain.EventStats, error)
}

// AnalyticsService tracks and aggregates events.
type AnalyticsService interface {
	Track(ctx context.Context, e domain.Event) (*domain.Event, error)
	List(ctx context.Context, eventType string) ([]domain.Event, error)
	Stats(ctx context.Context) (*domain.EventStats, error)
}

// TransactionRepository persists payment records.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// PaymentService creates mock-settled transactions.
type PaymentService interface {
	CreateTransaction(ctx context.Context, claims token.Claims, amount float64, currency string, propertyID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, claims token.Claims) ([]domain.Transaction, error)
}

// LogRepository persists shipped log entries.
type LogRepository interface {
	Create(ctx context.Context, e *domain.LogEntry) (*domain.LogEntry, error)
	List(ctx context.Context, service, level string, limit int64) ([]domain.LogEntry, error)
	Stats(ctx context.Context) (*domain.LogStats, error)
}

// LoggingService is the central log sink.
type LoggingService interface {
	Append(ctx context.Context, e domain.LogEntry) (*domain.LogEntry, error)
	List(ctx context.Context, service, level string, limit int64) ([]domain.LogEntry, error)
	Stats(ctx context.Context) (*domain.LogStats, error)
}

// SearchService answers substring queries over an explicitly rebuilt
// in-memory index of properties.
type SearchService interface {
	Search(ctx context.Context, q, city, propertyType string) ([]domain.Property, error)
	Rebuild(ctx context.Context) (int, error)
}

// PropertyReport summarizes the portfolio for agents.
type PropertyReport struct {
	Total           int               `json:"total"`
	ByType          map[string]int    `json:"by_type"`
	ForSale         int               `json:"for_sale"`
	ForRent         int               `json:"for_rent"`
	AveragePriceEUR float64           `json:"average_price_eur"`
	ByCity          map[string]int    `json:"by_city"`
	Properties      []domain.Property `json:"properties"`
}

// InquiryReport summarizes inquiry workload for agents.
type InquiryReport struct {
	Total     int              `json:"total"`
	ByStatus  map[string]int   `json:"by_status"`
	Inquiries []domain.Inquiry `json:"inquiries"`
}

// ReportingService builds reports from peer-service data.
type ReportingService interface {
	PropertiesReport(ctx context.Context) (*PropertyReport, error)
	InquiriesReport(ctx context.Context, bearer string) (*InquiryReport, error)
}
