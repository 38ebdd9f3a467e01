package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// Per-call-site timeouts, matching the observed behavior: short for
// best-effort side-calls, long for bulk fetches.
const (
	BestEffortTimeout = 2 * time.Second
	BulkFetchTimeout  = 10 * time.Second
)

// AuthClient talks to the auth service.
type AuthClient struct{ c *Client }

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{c: New("auth-service", baseURL, DefaultTimeout)}
}

// AuthResult is the register/login response: the public user plus a token.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (a *AuthClient) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := a.c.Do(ctx, http.MethodPost, "/auth/register", body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := a.c.Do(ctx, http.MethodPost, "/auth/login", body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	path := "/users/" + strconv.FormatInt(id, 10)
	status, err := a.c.DoStatus(ctx, http.MethodGet, path, nil, "", &out)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Verify implements token.Verifier against the auth service's /auth/verify
// endpoint. Any peer failure is indistinguishable from an invalid token:
// the caller sees "unauthenticated" either way.
func (a *AuthClient) Verify(raw string) (token.Claims, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	var claims token.Claims
	body := map[string]string{"token": raw}
	if err := a.c.Do(ctx, http.MethodPost, "/auth/verify", body, "", &claims); err != nil {
		return token.Claims{}, false
	}
	return claims, true
}

// PropertyClient talks to the property service.
type PropertyClient struct{ c *Client }

func NewPropertyClient(baseURL string) *PropertyClient {
	return &PropertyClient{c: New("property-service", baseURL, BulkFetchTimeout)}
}

func (p *PropertyClient) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	q := url.Values{}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.PropertyType != "" {
		q.Set("property_type", string(filter.PropertyType))
	}
	if filter.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}

	var out []domain.Property
	if err := p.c.DoQuery(ctx, http.MethodGet, "/properties", q, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one property. A peer 404 maps to domain.ErrPropertyNotFound
// so callers can distinguish "does not exist" from "peer unavailable".
func (p *PropertyClient) Get(ctx context.Context, id int64) (*domain.Property, error) {
	var out domain.Property
	path := "/properties/" + strconv.FormatInt(id, 10)
	status, err := p.c.DoStatus(ctx, http.MethodGet, path, nil, "", &out)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &out, nil
}

// InquiryClient talks to the inquiry service.
type InquiryClient struct{ c *Client }

func NewInquiryClient(baseURL string) *InquiryClient {
	return &InquiryClient{c: New("inquiry-service", baseURL, BulkFetchTimeout)}
}

func (i *InquiryClient) List(ctx context.Context, bearer string) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	if err := i.c.Do(ctx, http.MethodGet, "/inquiries", nil, bearer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits an inquiry. The bearer token is optional: anonymous
// callers supply contact details instead.
func (i *InquiryClient) Create(ctx context.Context, bearer string, propertyID int64, name, email, phone, message string) (*domain.Inquiry, error) {
	body := map[string]any{
		"property_id": propertyID,
		"name":        name,
		"email":       email,
		"phone":       phone,
		"message":     message,
	}
	var out domain.Inquiry
	if err := i.c.Do(ctx, http.MethodPost, "/inquiries", body, bearer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InquiryClient) GetClient(ctx context.Context, id int64, bearer string) (*domain.Client, error) {
	var out domain.Client
	path := "/clients/" + strconv.FormatInt(id, 10)
	status, err := i.c.DoStatus(ctx, http.MethodGet, path, nil, bearer, &out)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (i *InquiryClient) ListAppointments(ctx context.Context, bearer string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := i.c.Do(ctx, http.MethodGet, "/appointments", nil, bearer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NotificationClient talks to the notification service. Its calls are
// best-effort at almost every call site, so the timeout is short.
type NotificationClient struct{ c *Client }

func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{c: New("notification-service", baseURL, BestEffortTimeout)}
}

func (n *NotificationClient) Send(ctx context.Context, recipient, channel, message string) error {
	body := map[string]string{"recipient": recipient, "channel": channel, "message": message}
	return n.c.Do(ctx, http.MethodPost, "/notifications", body, "", nil)
}

func (n *NotificationClient) List(ctx context.Context, bearer string) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := n.c.Do(ctx, http.MethodGet, "/notifications", nil, bearer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsClient talks to the analytics service.
type AnalyticsClient struct{ c *Client }

func NewAnalyticsClient(baseURL string) *AnalyticsClient {
	return &AnalyticsClient{c: New("analytics-service", baseURL, BestEffortTimeout)}
}

func (a *AnalyticsClient) Track(ctx context.Context, event domain.Event) error {
	return a.c.Do(ctx, http.MethodPost, "/events", event, "", nil)
}

func (a *AnalyticsClient) Stats(ctx context.Context, bearer string) (*domain.EventStats, error) {
	var out domain.EventStats
	if err := a.c.Do(ctx, http.MethodGet, "/events/stats", nil, bearer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchClient talks to the search service.
type SearchClient struct{ c *Client }

func NewSearchClient(baseURL string) *SearchClient {
	return &SearchClient{c: New("search-service", baseURL, DefaultTimeout)}
}

func (s *SearchClient) Search(ctx context.Context, q, city, propertyType string) ([]domain.Property, error) {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	if city != "" {
		query.Set("city", city)
	}
	if propertyType != "" {
		query.Set("property_type", propertyType)
	}

	var out struct {
		Results []domain.Property `json:"results"`
	}
	if err := s.c.DoQuery(ctx, http.MethodGet, "/search", query, &out, ""); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (s *SearchClient) Rebuild(ctx context.Context, bearer string) (int, error) {
	var out struct {
		Indexed int `json:"indexed"`
	}
	if err := s.c.Do(ctx, http.MethodPost, "/search/rebuild", nil, bearer, &out); err != nil {
		return 0, err
	}
	return out.Indexed, nil
}

// ReportingClient talks to the reporting service. Reports are
// agent-only; the bearer token is mandatory.
type ReportingClient struct{ c *Client }

func NewReportingClient(baseURL string) *ReportingClient {
	return &ReportingClient{c: New("reporting-service", baseURL, BulkFetchTimeout)}
}

func (r *ReportingClient) PropertiesReport(ctx context.Context, bearer string) (*ports.PropertyReport, error) {
	var out ports.PropertyReport
	if err := r.c.Do(ctx, http.MethodGet, "/reports/properties", nil, bearer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReportingClient) InquiriesReport(ctx context.Context, bearer string) (*ports.InquiryReport, error) {
	var out ports.InquiryReport
	if err := r.c.Do(ctx, http.MethodGet, "/reports/inquiries", nil, bearer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentClient talks to the payment service.
type PaymentClient struct{ c *Client }

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{c: New("payment-service", baseURL, DefaultTimeout)}
}

func (p *PaymentClient) CreateTransaction(ctx context.Context, bearer string, amount float64, currency string, propertyID int64) (*domain.Transaction, error) {
	body := map[string]any{"amount": amount, "currency": currency, "property_id": propertyID}
	var out domain.Transaction
	if err := p.c.Do(ctx, http.MethodPost, "/transactions", body, bearer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
