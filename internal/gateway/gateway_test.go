package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/api/handler"
	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
	redisdb "github.com/estatehub/realty-platform/internal/infrastructure/db/redis"
)

// deadPeer is a base URL nothing listens on; calls fail fast with a
// connection error.
const deadPeer = "http://127.0.0.1:1"

func testContext(t *testing.T, method, path, body string, sess *redisdb.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = handler.NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(ctxSession, sess)
		c.Set(ctxRole, sess.Role)
	}
	return c, rec
}

func peerServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, fn := range routes {
		mux.HandleFunc(pattern, fn)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGateway_Dashboard_DegradesDecorations(t *testing.T) {
	inquiries := peerServer(t, map[string]http.HandlerFunc{
		"/appointments": func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode([]domain.Appointment{{ID: 1, ClientID: 2}})
		},
	})

	g := New(Deps{
		Auth:          client.NewAuthClient(deadPeer),
		Inquiries:     client.NewInquiryClient(inquiries.URL),
		Notifications: client.NewNotificationClient(deadPeer),
		Analytics:     client.NewAnalyticsClient(deadPeer),
		Log:           zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7, Email: "a@b.com", Role: domain.RoleAgent}
	c, rec := testContext(t, http.MethodGet, "/dashboard", "", sess)
	if err := g.Dashboard(c); err != nil {
		t.Fatalf("dashboard must survive decoration failures: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Appointments) != 1 {
		t.Fatalf("expected the primary payload, got %+v", resp.Appointments)
	}
	if resp.Appointments[0].Client != nil {
		t.Fatalf("unresolvable client must stay a null placeholder, got %+v", resp.Appointments[0].Client)
	}
	if resp.Notifications != nil || resp.Stats != nil {
		t.Fatalf("decorations must be null when their peers are down: %+v", resp)
	}
	// With the auth peer down the session copy of the user still renders.
	if resp.User["email"] != "a@b.com" {
		t.Fatalf("expected session copy fallback, got %+v", resp.User)
	}
}

func TestGateway_Dashboard_MergesClientAndFreshUser(t *testing.T) {
	inquiries := peerServer(t, map[string]http.HandlerFunc{
		"/appointments": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]domain.Appointment{{ID: 1, ClientID: 2}})
		},
		"/clients/2": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(domain.Client{ID: 2, Name: "Maria", Email: "maria@example.com"})
		},
	})
	auth := peerServer(t, map[string]http.HandlerFunc{
		"/users/7": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(domain.User{ID: 7, Email: "renamed@example.com", Role: domain.RoleAgent})
		},
	})

	g := New(Deps{
		Auth:          client.NewAuthClient(auth.URL),
		Inquiries:     client.NewInquiryClient(inquiries.URL),
		Notifications: client.NewNotificationClient(deadPeer),
		Analytics:     client.NewAnalyticsClient(deadPeer),
		Log:           zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7, Email: "old@example.com", Role: domain.RoleAgent}
	c, rec := testContext(t, http.MethodGet, "/dashboard", "", sess)
	if err := g.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Appointments) != 1 || resp.Appointments[0].Client == nil {
		t.Fatalf("client details not merged: %+v", resp.Appointments)
	}
	if resp.Appointments[0].Client.Name != "Maria" {
		t.Fatalf("wrong client merged: %+v", resp.Appointments[0].Client)
	}
	if resp.User["email"] != "renamed@example.com" {
		t.Fatalf("expected the auth service's current record, got %+v", resp.User)
	}
}

func TestGateway_Dashboard_FailsWithoutPrimaryData(t *testing.T) {
	g := New(Deps{
		Auth:          client.NewAuthClient(deadPeer),
		Inquiries:     client.NewInquiryClient(deadPeer),
		Notifications: client.NewNotificationClient(deadPeer),
		Analytics:     client.NewAnalyticsClient(deadPeer),
		Log:           zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7}
	c, _ := testContext(t, http.MethodGet, "/dashboard", "", sess)
	err := g.Dashboard(c)
	var pe *client.PeerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a peer error when appointments are unreachable, got %v", err)
	}
}

func TestGateway_Search_FlashOnPeerFailure(t *testing.T) {
	g := New(Deps{
		Search: client.NewSearchClient(deadPeer),
		Log:    zerolog.Nop(),
	})

	c, rec := testContext(t, http.MethodGet, "/search?q=madrid", "", nil)
	if err := g.Search(c); err != nil {
		t.Fatalf("search must degrade, not fail: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Results []domain.Property `json:"results"`
		Flash   string            `json:"flash"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Results) != 0 || resp.Flash == "" {
		t.Fatalf("expected empty results with a flash message, got %+v", resp)
	}
}

func TestGateway_Search_ProxiesResults(t *testing.T) {
	searcher := peerServer(t, map[string]http.HandlerFunc{
		"/search": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") != "loft" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"count":   1,
				"results": []domain.Property{{ID: 3, Title: "City loft"}},
			})
		},
	})

	g := New(Deps{
		Search: client.NewSearchClient(searcher.URL),
		Log:    zerolog.Nop(),
	})

	c, rec := testContext(t, http.MethodGet, "/search?q=loft", "", nil)
	if err := g.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}

	var resp struct {
		Results []domain.Property `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "City loft" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestGateway_Inquire_ForwardsToPeer(t *testing.T) {
	var gotAuth string
	inquiries := peerServer(t, map[string]http.HandlerFunc{
		"/inquiries": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			var body struct {
				PropertyID int64  `json:"property_id"`
				Name       string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.PropertyID != 5 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Inquiry{ID: 1, PropertyID: body.PropertyID, Name: body.Name})
		},
	})

	g := New(Deps{
		Inquiries: client.NewInquiryClient(inquiries.URL),
		Log:       zerolog.Nop(),
	})

	t.Run("anonymous with contact details", func(t *testing.T) {
		c, rec := testContext(t, http.MethodPost, "/properties/5/inquiry",
			`{"name":"Ana","email":"ana@example.com","message":"still available?"}`, nil)
		c.SetParamNames("id")
		c.SetParamValues("5")
		if err := g.Inquire(c); err != nil {
			t.Fatalf("inquire: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if gotAuth != "" {
			t.Fatalf("anonymous inquiry must not carry a token, got %q", gotAuth)
		}
	})

	t.Run("logged in forwards the session token", func(t *testing.T) {
		sess := &redisdb.Session{Token: "tok", UserID: 7, Email: "ana@example.com"}
		c, rec := testContext(t, http.MethodPost, "/properties/5/inquiry", `{"message":"call me"}`, sess)
		c.SetParamNames("id")
		c.SetParamValues("5")
		if err := g.Inquire(c); err != nil {
			t.Fatalf("inquire: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if gotAuth != "Bearer tok" {
			t.Fatalf("session token not forwarded, got %q", gotAuth)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		c, _ := testContext(t, http.MethodPost, "/properties/x/inquiry", `{}`, nil)
		c.SetParamNames("id")
		c.SetParamValues("x")
		err := g.Inquire(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %v", err)
		}
	})
}

func TestGateway_Checkout_ForwardsSessionToken(t *testing.T) {
	payments := peerServer(t, map[string]http.HandlerFunc{
		"/transactions": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var body struct {
				Amount float64 `json:"amount"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Transaction{ID: 1, Amount: body.Amount, Status: "completed"})
		},
	})

	g := New(Deps{
		Payments: client.NewPaymentClient(payments.URL),
		Log:      zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7}
	c, rec := testContext(t, http.MethodPost, "/checkout", `{"amount":1200.50,"currency":"EUR","property_id":3}`, sess)
	if err := g.Checkout(c); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var tx domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if tx.Amount != 1200.50 {
		t.Fatalf("amount not forwarded: %v", tx.Amount)
	}
}

func TestGateway_RequireSession_ReverifiesToken(t *testing.T) {
	issuer := token.NewIssuer("secret", 0)
	g := New(Deps{Verifier: issuer, Log: zerolog.Nop()})

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	t.Run("no session", func(t *testing.T) {
		c, _ := testContext(t, http.MethodGet, "/dashboard", "", nil)
		err := g.requireSession(next)(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without a session, got %v", err)
		}
		if called {
			t.Fatalf("next must not run without a session")
		}
	})

	t.Run("stale token in a live session", func(t *testing.T) {
		sess := &redisdb.Session{Token: "no-longer-valid", UserID: 7, Role: domain.RoleAdmin}
		c, _ := testContext(t, http.MethodGet, "/dashboard", "", sess)
		err := g.requireSession(next)(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("a session wrapping an invalid token must be rejected, got %v", err)
		}
		if called {
			t.Fatalf("next must not run on a stale token")
		}
	})

	t.Run("valid token, role from claims", func(t *testing.T) {
		raw, err := issuer.Issue(&domain.User{ID: 7, Email: "a@b.com", Role: domain.RoleAgent})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		// The stored role copy disagrees with the token; the claims win.
		sess := &redisdb.Session{Token: raw, UserID: 7, Email: "a@b.com", Role: domain.RoleAdmin}
		c, _ := testContext(t, http.MethodGet, "/dashboard", "", nil)
		c.Set(ctxSession, sess)
		if err := g.requireSession(next)(c); err != nil || !called {
			t.Fatalf("expected pass-through with a valid token, got %v", err)
		}
		if sessionRole(c) != domain.RoleAgent {
			t.Fatalf("role must come from verified claims, got %q", sessionRole(c))
		}
	})
}

func TestGateway_RequireAgent(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c, _ := testContext(t, http.MethodGet, "/reports/properties", "",
		&redisdb.Session{Token: "tok", UserID: 7, Role: domain.RoleUser})
	err := requireAgent(next)(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for role user, got %v", err)
	}

	c, rec := testContext(t, http.MethodGet, "/reports/properties", "",
		&redisdb.Session{Token: "tok", UserID: 7, Role: domain.RoleAgent})
	if err := requireAgent(next)(c); err != nil {
		t.Fatalf("agent must pass: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGateway_PropertyReport_Proxies(t *testing.T) {
	reports := peerServer(t, map[string]http.HandlerFunc{
		"/reports/properties": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"total": 3, "for_sale": 2})
		},
	})

	g := New(Deps{
		Reports: client.NewReportingClient(reports.URL),
		Log:     zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7, Role: domain.RoleAgent}
	c, rec := testContext(t, http.MethodGet, "/reports/properties", "", sess)
	if err := g.PropertyReport(c); err != nil {
		t.Fatalf("report: %v", err)
	}

	var resp struct {
		Total   int `json:"total"`
		ForSale int `json:"for_sale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 3 || resp.ForSale != 2 {
		t.Fatalf("report not proxied: %+v", resp)
	}
}

func TestGateway_RebuildSearch(t *testing.T) {
	searcher := peerServer(t, map[string]http.HandlerFunc{
		"/search/rebuild": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			json.NewEncoder(w).Encode(map[string]int{"indexed": 4})
		},
	})

	g := New(Deps{
		Search: client.NewSearchClient(searcher.URL),
		Log:    zerolog.Nop(),
	})

	sess := &redisdb.Session{Token: "tok", UserID: 7, Role: domain.RoleAgent}
	c, rec := testContext(t, http.MethodPost, "/search/rebuild", "", sess)
	if err := g.RebuildSearch(c); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	var resp struct {
		Indexed int `json:"indexed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Indexed != 4 {
		t.Fatalf("expected 4 indexed, got %d", resp.Indexed)
	}
}
