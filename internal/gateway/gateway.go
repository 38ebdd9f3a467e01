// Package gateway is the user-facing facade over the sibling services.
// It owns no data: every page is assembled from peer HTTP calls, with a
// Redis session translating the cookie into a bearer token. Primary data
// fails the request; decoration and analytics degrade silently.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
	redisdb "github.com/estatehub/realty-platform/internal/infrastructure/db/redis"
	"github.com/estatehub/realty-platform/internal/infrastructure/queue"
)

// Gateway aggregates peer services behind session-based routes.
type Gateway struct {
	auth          *client.AuthClient
	properties    *client.PropertyClient
	inquiries     *client.InquiryClient
	notifications *client.NotificationClient
	analytics     *client.AnalyticsClient
	searcher      *client.SearchClient
	payments      *client.PaymentClient
	reports       *client.ReportingClient
	sessions      *redisdb.SessionStore
	dispatcher    *queue.Dispatcher
	// verifier validates session tokens on every protected request.
	// It is the remote verifier backed by the auth service's
	// /auth/verify endpoint; the api binary uses the local HS256
	// verifier behind the same interface.
	verifier token.Verifier
	log      zerolog.Logger
}

type Deps struct {
	Auth          *client.AuthClient
	Properties    *client.PropertyClient
	Inquiries     *client.InquiryClient
	Notifications *client.NotificationClient
	Analytics     *client.AnalyticsClient
	Search        *client.SearchClient
	Payments      *client.PaymentClient
	Reports       *client.ReportingClient
	Sessions      *redisdb.SessionStore
	Dispatcher    *queue.Dispatcher
	Verifier      token.Verifier
	Log           zerolog.Logger
}

func New(deps Deps) *Gateway {
	return &Gateway{
		auth:          deps.Auth,
		properties:    deps.Properties,
		inquiries:     deps.Inquiries,
		notifications: deps.Notifications,
		analytics:     deps.Analytics,
		searcher:      deps.Search,
		payments:      deps.Payments,
		reports:       deps.Reports,
		sessions:      deps.Sessions,
		dispatcher:    deps.Dispatcher,
		verifier:      deps.Verifier,
		log:           deps.Log,
	}
}

// Routes registers the gateway surface on the given Echo instance.
func (g *Gateway) Routes(e *echo.Echo) {
	e.Use(g.loadSession)

	e.POST("/session/register", g.Register)
	e.POST("/session/login", g.Login)
	e.POST("/session/logout", g.Logout)
	e.GET("/session/me", g.Me, g.requireSession)

	e.GET("/properties", g.Properties)
	e.GET("/properties/:id", g.Property)
	e.POST("/properties/:id/inquiry", g.Inquire)
	e.GET("/search", g.Search)
	e.POST("/search/rebuild", g.RebuildSearch, g.requireSession, requireAgent)
	e.GET("/dashboard", g.Dashboard, g.requireSession)
	e.POST("/checkout", g.Checkout, g.requireSession)
	e.GET("/reports/properties", g.PropertyReport, g.requireSession, requireAgent)
	e.GET("/reports/inquiries", g.InquiryReport, g.requireSession, requireAgent)
}

// Properties lists the catalog and records a page view off the request
// path.
func (g *Gateway) Properties(c echo.Context) error {
	filter := domain.PropertyFilter{
		City:         c.QueryParam("city"),
		PropertyType: domain.PropertyType(c.QueryParam("property_type")),
	}

	props, err := g.properties.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	g.trackAsync(domain.Event{EventType: domain.EventPageView, UserID: sessionUserID(c), Metadata: "properties"})
	return c.JSON(http.StatusOK, echo.Map{"count": len(props), "properties": props})
}

// Property shows one listing. The property itself is primary data; the
// view event is best-effort.
func (g *Gateway) Property(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	prop, err := g.properties.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	g.trackAsync(domain.Event{EventType: domain.EventPropertyView, ResourceID: id, UserID: sessionUserID(c)})
	return c.JSON(http.StatusOK, prop)
}

// Search proxies the search service. An unavailable search peer renders
// an empty result set with a flash message instead of an error page.
func (g *Gateway) Search(c echo.Context) error {
	q := c.QueryParam("q")
	results, err := g.searcher.Search(c.Request().Context(), q, c.QueryParam("city"), c.QueryParam("property_type"))
	if err != nil {
		var pe *client.PeerError
		if errors.As(err, &pe) {
			g.log.Warn().Err(pe).Msg("search peer unavailable")
			return c.JSON(http.StatusOK, echo.Map{
				"results": []domain.Property{},
				"flash":   "search is temporarily unavailable",
			})
		}
		return err
	}

	g.trackAsync(domain.Event{EventType: domain.EventSearch, UserID: sessionUserID(c), Metadata: q})
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// dashboardResponse aggregates several peers. Appointments are the
// primary payload; notifications and stats are nil when their peer is
// down.
type dashboardResponse struct {
	User          echo.Map              `json:"user"`
	Appointments  []domain.Appointment  `json:"appointments"`
	Notifications []domain.Notification `json:"notifications"`
	Stats         *domain.EventStats    `json:"stats"`
}

// Dashboard assembles the agent landing page. A failure fetching
// appointments fails the request; every other peer degrades to null.
func (g *Gateway) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session(c)

	appointments, err := g.inquiries.ListAppointments(ctx, sess.Token)
	if err != nil {
		return err
	}

	// Merge client details by client_id. An unresolvable client stays a
	// null placeholder; the appointment itself is still returned.
	for i := range appointments {
		if appointments[i].Client != nil || appointments[i].ClientID == 0 {
			continue
		}
		cl, err := g.inquiries.GetClient(ctx, appointments[i].ClientID, sess.Token)
		if err != nil {
			g.log.Warn().Err(err).Int64("client_id", appointments[i].ClientID).Msg("client lookup failed")
			continue
		}
		appointments[i].Client = cl
	}

	// The session copy of the user can be stale; prefer the auth
	// service's current record and fall back to the copy.
	user := echo.Map{"email": sess.Email, "role": sessionRole(c)}
	if fresh, err := g.auth.GetUser(ctx, sess.UserID); err != nil {
		g.log.Warn().Err(err).Int64("user_id", sess.UserID).Msg("user lookup failed, using session copy")
	} else {
		user = echo.Map{"email": fresh.Email, "role": fresh.Role}
	}

	resp := dashboardResponse{
		User:         user,
		Appointments: appointments,
	}

	if notifications, err := g.notifications.List(ctx, sess.Token); err != nil {
		g.log.Warn().Err(err).Msg("notifications unavailable, dashboard degraded")
	} else {
		resp.Notifications = notifications
	}

	if stats, err := g.analytics.Stats(ctx, sess.Token); err != nil {
		g.log.Warn().Err(err).Msg("analytics unavailable, dashboard degraded")
	} else {
		resp.Stats = stats
	}

	return c.JSON(http.StatusOK, resp)
}

type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Inquire submits an inquiry about a listing. Anonymous visitors supply
// contact details; logged-in visitors are identified by the forwarded
// session token.
func (g *Gateway) Inquire(c echo.Context) error {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req inquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var bearer string
	if sess := session(c); sess != nil {
		bearer = sess.Token
	}

	inq, err := g.inquiries.Create(c.Request().Context(), bearer, propertyID, req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		return err
	}

	g.trackAsync(domain.Event{EventType: domain.EventInquiryCreate, ResourceID: propertyID, UserID: sessionUserID(c)})
	return c.JSON(http.StatusCreated, inq)
}

// RebuildSearch triggers a reindex on the search service.
func (g *Gateway) RebuildSearch(c echo.Context) error {
	n, err := g.searcher.Rebuild(c.Request().Context(), session(c).Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}

// PropertyReport proxies the portfolio report for agents.
func (g *Gateway) PropertyReport(c echo.Context) error {
	report, err := g.reports.PropertiesReport(c.Request().Context(), session(c).Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// InquiryReport proxies the inquiry workload report for agents.
func (g *Gateway) InquiryReport(c echo.Context) error {
	report, err := g.reports.InquiriesReport(c.Request().Context(), session(c).Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

type checkoutRequest struct {
	Amount     float64 `json:"amount"   validate:"required,gt=0"`
	Currency   string  `json:"currency"`
	PropertyID int64   `json:"property_id"`
}

// Checkout forwards a payment to the payment service with the session's
// token.
func (g *Gateway) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := g.payments.CreateTransaction(c.Request().Context(), session(c).Token, req.Amount, req.Currency, req.PropertyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tx)
}

// trackAsync enqueues an analytics event without blocking the request.
// With no dispatcher configured the event is simply not recorded.
func (g *Gateway) trackAsync(event domain.Event) {
	if g.dispatcher == nil {
		return
	}
	g.dispatcher.Enqueue(queue.SideCall{
		Key: event.EventType + ":" + strconv.FormatInt(event.ResourceID, 10),
		Op:  "track_" + event.EventType,
		Run: func(ctx context.Context) error {
			callCtx, cancel := context.WithTimeout(ctx, client.BestEffortTimeout)
			defer cancel()
			return g.analytics.Track(callCtx, event)
		},
	})
}

func sessionUserID(c echo.Context) int64 {
	if sess := session(c); sess != nil {
		return sess.UserID
	}
	return 0
}
