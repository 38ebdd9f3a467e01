package ports

import (
	"context"
	"time"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
)

// CreateInquiryInput is accepted from anonymous and authenticated
// callers alike; Claims is nil for anonymous ones.
type CreateInquiryInput struct {
	PropertyID int64
	Name       string
	Email      string
	Phone      string
	Message    string
	Claims     *token.Claims
}

// CreateAppointmentInput schedules a viewing.
type CreateAppointmentInput struct {
	PropertyID  int64
	ClientName  string
	ClientEmail string
	ClientPhone string
	ScheduledAt time.Time
	Note        string
}

// ClientRepository persists prospective buyers.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

// InquiryRepository persists inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, i *domain.Inquiry) (*domain.Inquiry, error)
	FindByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	List(ctx context.Context) ([]domain.Inquiry, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository persists viewings.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
}

// InquiryService defines the inquiry/client/appointment use-cases.
type InquiryService interface {
	CreateInquiry(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error)
	GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error)
	// ListInquiries scopes results by the caller: agents see all,
	// users see their own (matched through the client record).
	ListInquiries(ctx context.Context, claims token.Claims) ([]domain.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error)
	DeleteInquiry(ctx context.Context, id int64, claims token.Claims) error

	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)

	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*domain.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}
