package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PropertyChecker verifies over HTTP that a referenced property exists.
// Implemented by the property client.
type PropertyChecker interface {
	Get(ctx context.Context, id int64) (*domain.Property, error)
}

// InquiryNotifier delivers the side-channel messages inquiries produce.
type InquiryNotifier interface {
	Send(ctx context.Context, recipient, channel, message string) error
}

// InquiryService implements the inquiry/client/appointment use-cases.
type InquiryService struct {
	clients      ports.ClientRepository
	inquiries    ports.InquiryRepository
	appointments ports.AppointmentRepository
	properties   PropertyChecker
	notifier     InquiryNotifier
	log          zerolog.Logger
}

func NewInquiryService(
	clients ports.ClientRepository,
	inquiries ports.InquiryRepository,
	appointments ports.AppointmentRepository,
	properties PropertyChecker,
	notifier InquiryNotifier,
	log zerolog.Logger,
) *InquiryService {
	return &InquiryService{
		clients:      clients,
		inquiries:    inquiries,
		appointments: appointments,
		properties:   properties,
		notifier:     notifier,
		log:          log,
	}
}

// CreateInquiry accepts anonymous and authenticated callers. The
// referenced property is verified through the property peer: a missing
// property fails with ErrPropertyNotFound, an unreachable peer
// propagates the *PeerError.
func (s *InquiryService) CreateInquiry(ctx context.Context, in ports.CreateInquiryInput) (*domain.Inquiry, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	// Authenticated callers fall back to their verified email.
	if in.Claims != nil && email == "" {
		email = in.Claims.Email
	}

	if in.PropertyID == 0 || name == "" || (email == "" && phone == "") {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.properties.Get(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	cl, err := s.findOrCreateClient(ctx, name, email, phone)
	if err != nil {
		return nil, err
	}

	inquiry := &domain.Inquiry{
		PropertyID: in.PropertyID,
		ClientID:   cl.ID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Message:    strings.TrimSpace(in.Message),
		Status:     domain.InquiryNew,
		CreatedAt:  time.Now().UTC(),
	}
	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.RecipientAgents, domain.ChannelEmail,
		fmt.Sprintf("New inquiry #%d from %s (%s) about property #%d", created.ID, name, contact(email, phone), in.PropertyID))

	return created, nil
}

// findOrCreateClient deduplicates by email first, phone second.
func (s *InquiryService) findOrCreateClient(ctx context.Context, name, email, phone string) (*domain.Client, error) {
	if email != "" {
		if cl, err := s.clients.FindByEmail(ctx, email); err == nil {
			return cl, nil
		}
	}
	if phone != "" {
		if cl, err := s.clients.FindByPhone(ctx, phone); err == nil {
			return cl, nil
		}
	}
	return s.clients.Create(ctx, &domain.Client{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	})
}

func contact(email, phone string) string {
	if email != "" {
		return email
	}
	return phone
}

func (s *InquiryService) GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error) {
	return s.inquiries.FindByID(ctx, id)
}

// ListInquiries scopes results: agents see everything, users see only
// inquiries tied to their own client record.
func (s *InquiryService) ListInquiries(ctx context.Context, claims token.Claims) ([]domain.Inquiry, error) {
	if claims.Role == domain.RoleAgent {
		return s.inquiries.List(ctx)
	}
	return s.inquiries.ListByEmail(ctx, claims.Email)
}

// UpdateInquiryStatus moves an inquiry through the workflow and
// notifies the owner about the change, best-effort.
func (s *InquiryService) UpdateInquiryStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if !domain.ValidInquiryStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	inquiry, err := s.inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	old := inquiry.Status
	if err := s.inquiries.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	inquiry.Status = status

	if inquiry.Email != "" && old != status {
		s.notify(ctx, inquiry.Email, domain.ChannelPush,
			fmt.Sprintf("Your inquiry #%d moved from %s to %s", id, old, status))
	}
	return inquiry, nil
}

// DeleteInquiry lets agents delete any inquiry and users delete their own.
func (s *InquiryService) DeleteInquiry(ctx context.Context, id int64, claims token.Claims) error {
	inquiry, err := s.inquiries.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if claims.Role != domain.RoleAgent && inquiry.Email != claims.Email {
		return domain.ErrForbidden
	}

	if err := s.inquiries.Delete(ctx, id); err != nil {
		return err
	}

	if inquiry.Email != "" {
		s.notify(ctx, inquiry.Email, domain.ChannelPush, fmt.Sprintf("Inquiry #%d has been deleted", id))
	}
	s.notify(ctx, domain.RecipientAgents, domain.ChannelPush,
		fmt.Sprintf("Inquiry #%d deleted by %s", id, claims.Email))
	return nil
}

func (s *InquiryService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *InquiryService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

// CreateAppointment schedules a viewing after verifying the property
// exists, then notifies the client and the agents.
func (s *InquiryService) CreateAppointment(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	name := strings.TrimSpace(in.ClientName)
	if in.PropertyID == 0 || name == "" || in.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.properties.Get(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	cl, err := s.findOrCreateClient(ctx, name, strings.TrimSpace(in.ClientEmail), strings.TrimSpace(in.ClientPhone))
	if err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		PropertyID:  in.PropertyID,
		ClientID:    cl.ID,
		ScheduledAt: in.ScheduledAt,
		Note:        strings.TrimSpace(in.Note),
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.appointments.Create(ctx, appt)
	if err != nil {
		return nil, err
	}
	created.Client = cl

	when := in.ScheduledAt.Format("02.01.2006 15:04")
	if cl.Email != "" {
		s.notify(ctx, cl.Email, domain.ChannelPush,
			fmt.Sprintf("Viewing confirmed for property #%d on %s", in.PropertyID, when))
	}
	s.notify(ctx, domain.RecipientAgents, domain.ChannelPush,
		fmt.Sprintf("New viewing: %s (%s), property #%d, %s", name, contact(cl.Email, cl.Phone), in.PropertyID, when))

	return created, nil
}

func (s *InquiryService) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachClient(ctx, appt)
	return appt, nil
}

func (s *InquiryService) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	appts, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		s.attachClient(ctx, &appts[i])
	}
	return appts, nil
}

// attachClient denormalizes the client into the appointment; an
// unresolvable client leaves the field nil rather than failing the read.
func (s *InquiryService) attachClient(ctx context.Context, a *domain.Appointment) {
	cl, err := s.clients.FindByID(ctx, a.ClientID)
	if err != nil {
		return
	}
	a.Client = cl
}

// notify fires a best-effort side-call: the error is logged at warn and
// dropped, never propagated to the primary operation.
func (s *InquiryService) notify(ctx context.Context, recipient, channel, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, recipient, channel, message); err != nil {
		s.log.Warn().Err(err).Str("recipient", recipient).Msg("inquiry notification failed")
	}
}
