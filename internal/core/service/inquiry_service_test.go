package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

type stubClientRepo struct {
	clients []*domain.Client
	nextID  int64
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.clients = append(r.clients, &clone)
	out := clone
	return &out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if email != "" && c.Email == email {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByPhone(_ context.Context, phone string) (*domain.Client, error) {
	for _, c := range r.clients {
		if phone != "" && c.Phone == phone {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

type stubInquiryRepo struct {
	inquiries []*domain.Inquiry
	nextID    int64
}

func (r *stubInquiryRepo) Create(_ context.Context, i *domain.Inquiry) (*domain.Inquiry, error) {
	r.nextID++
	clone := *i
	clone.ID = r.nextID
	r.inquiries = append(r.inquiries, &clone)
	out := clone
	return &out, nil
}

func (r *stubInquiryRepo) FindByID(_ context.Context, id int64) (*domain.Inquiry, error) {
	for _, i := range r.inquiries {
		if i.ID == id {
			out := *i
			return &out, nil
		}
	}
	return nil, domain.ErrInquiryNotFound
}

func (r *stubInquiryRepo) List(_ context.Context) ([]domain.Inquiry, error) {
	out := make([]domain.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInquiryRepo) ListByEmail(_ context.Context, email string) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	for _, i := range r.inquiries {
		if i.Email == email {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInquiryRepo) UpdateStatus(_ context.Context, id int64, status domain.InquiryStatus) error {
	for _, i := range r.inquiries {
		if i.ID == id {
			i.Status = status
			return nil
		}
	}
	return domain.ErrInquiryNotFound
}

func (r *stubInquiryRepo) Delete(_ context.Context, id int64) error {
	for idx, i := range r.inquiries {
		if i.ID == id {
			r.inquiries = append(r.inquiries[:idx], r.inquiries[idx+1:]...)
			return nil
		}
	}
	return domain.ErrInquiryNotFound
}

type stubAppointmentRepo struct {
	appts  []*domain.Appointment
	nextID int64
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	r.appts = append(r.appts, &clone)
	out := clone
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	for _, a := range r.appts {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) List(_ context.Context) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, nil
}

type stubPropertyChecker struct {
	known map[int64]bool
	err   error
}

func (p *stubPropertyChecker) Get(_ context.Context, id int64) (*domain.Property, error) {
	if p.err != nil {
		return nil, p.err
	}
	if !p.known[id] {
		return nil, domain.ErrPropertyNotFound
	}
	return &domain.Property{ID: id}, nil
}

func newInquiryService(checker *stubPropertyChecker, notifier *stubNotifier) *InquiryService {
	return NewInquiryService(
		&stubClientRepo{}, &stubInquiryRepo{}, &stubAppointmentRepo{},
		checker, notifier, zerolog.Nop(),
	)
}

func TestInquiryService_Create(t *testing.T) {
	checker := &stubPropertyChecker{known: map[int64]bool{5: true}}
	notifier := &stubNotifier{}
	svc := newInquiryService(checker, notifier)

	in := ports.CreateInquiryInput{PropertyID: 5, Name: "Anna", Email: "anna@test.com", Message: "still available?"}
	inquiry, err := svc.CreateInquiry(context.Background(), in)
	if err != nil {
		t.Fatalf("create inquiry: %v", err)
	}
	if inquiry.Status != domain.InquiryNew {
		t.Fatalf("expected status new, got %s", inquiry.Status)
	}
	if inquiry.ClientID == 0 {
		t.Fatalf("expected a client record to be created")
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != domain.RecipientAgents {
		t.Fatalf("expected agents notification, got %v", notifier.sent)
	}
}

func TestInquiryService_Create_PropertyMissing(t *testing.T) {
	svc := newInquiryService(&stubPropertyChecker{known: map[int64]bool{}}, &stubNotifier{})

	in := ports.CreateInquiryInput{PropertyID: 99, Name: "Anna", Email: "anna@test.com"}
	if _, err := svc.CreateInquiry(context.Background(), in); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestInquiryService_Create_PeerUnavailable(t *testing.T) {
	peerErr := &client.PeerError{Peer: "property-service", Op: "GET /properties/5"}
	svc := newInquiryService(&stubPropertyChecker{err: peerErr}, &stubNotifier{})

	in := ports.CreateInquiryInput{PropertyID: 5, Name: "Anna", Email: "anna@test.com"}
	_, err := svc.CreateInquiry(context.Background(), in)

	var pe *client.PeerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PeerError to propagate, got %v", err)
	}
}

func TestInquiryService_Create_AnonymousNeedsContact(t *testing.T) {
	svc := newInquiryService(&stubPropertyChecker{known: map[int64]bool{5: true}}, &stubNotifier{})

	in := ports.CreateInquiryInput{PropertyID: 5, Name: "Anna"}
	if _, err := svc.CreateInquiry(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// An authenticated caller falls back to the verified email.
	in.Claims = &token.Claims{UserID: 1, Email: "anna@test.com", Role: domain.RoleUser}
	if _, err := svc.CreateInquiry(context.Background(), in); err != nil {
		t.Fatalf("authenticated create should use claims email: %v", err)
	}
}

func TestInquiryService_StatusTransitions(t *testing.T) {
	checker := &stubPropertyChecker{known: map[int64]bool{5: true}}
	notifier := &stubNotifier{}
	svc := newInquiryService(checker, notifier)

	created, err := svc.CreateInquiry(context.Background(), ports.CreateInquiryInput{
		PropertyID: 5, Name: "Anna", Email: "anna@test.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateInquiryStatus(context.Background(), created.ID, "archived"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	updated, err := svc.UpdateInquiryStatus(context.Background(), created.ID, domain.InquiryInProgress)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.InquiryInProgress {
		t.Fatalf("status not applied: %s", updated.Status)
	}
}

func TestInquiryService_Delete_Ownership(t *testing.T) {
	checker := &stubPropertyChecker{known: map[int64]bool{5: true}}
	svc := newInquiryService(checker, &stubNotifier{})

	created, err := svc.CreateInquiry(context.Background(), ports.CreateInquiryInput{
		PropertyID: 5, Name: "Anna", Email: "anna@test.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := token.Claims{Email: "other@test.com", Role: domain.RoleUser}
	if err := svc.DeleteInquiry(context.Background(), created.ID, stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a stranger, got %v", err)
	}

	agent := token.Claims{Email: "agent@test.com", Role: domain.RoleAgent}
	if err := svc.DeleteInquiry(context.Background(), created.ID, agent); err != nil {
		t.Fatalf("agent delete failed: %v", err)
	}
}

func TestInquiryService_Appointment_AttachesClient(t *testing.T) {
	checker := &stubPropertyChecker{known: map[int64]bool{7: true}}
	svc := newInquiryService(checker, &stubNotifier{})

	created, err := svc.CreateAppointment(context.Background(), ports.CreateAppointmentInput{
		PropertyID:  7,
		ClientName:  "Boris",
		ClientEmail: "boris@test.com",
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if created.Client == nil || created.Client.Email != "boris@test.com" {
		t.Fatalf("client not denormalized into appointment: %+v", created.Client)
	}

	listed, err := svc.ListAppointments(context.Background())
	if err != nil {
		t.Fatalf("list appointments: %v", err)
	}
	if len(listed) != 1 || listed[0].Client == nil {
		t.Fatalf("listed appointment missing client: %+v", listed)
	}
}
