package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warrapay/models"
	"warrapay/services/booking"
	"warrapay/services/payment"
)

const testZoomID = "Zoom ID: #322 428 0987"

// stubGateway records calls and returns canned results.
type stubGateway struct {
	customerID string
	session    payment.CheckoutSession
	portalURL  string

	customerCalls int
	sessionCalls  int
	lastResolved  *models.ResolvedBookingRequest

	portalErr error
	lookupErr error
	lookupID  string
}

func (s *stubGateway) CreateCustomer(ctx context.Context, profile models.CustomerProfile, metadata models.BookingMetadata) (string, error) {
	s.customerCalls++
	return s.customerID, nil
}

func (s *stubGateway) CreateCheckoutSession(ctx context.Context, customerID string, resolved *models.ResolvedBookingRequest, successURL, cancelURL string) (*payment.CheckoutSession, error) {
	s.sessionCalls++
	s.lastResolved = resolved
	return &s.session, nil
}

func (s *stubGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if s.portalErr != nil {
		return "", s.portalErr
	}
	return s.portalURL, nil
}

func (s *stubGateway) LookupSession(ctx context.Context, sessionID string) (string, error) {
	if s.lookupErr != nil {
		return "", s.lookupErr
	}
	return s.lookupID, nil
}

func newTestHandler(gw *stubGateway) *BookingHandler {
	resolver := &booking.DefaultRequestResolver{
		Catalog: models.PriceCatalog{
			{Method: models.MethodPrivate, Plan: models.Plan30Min}: {PriceID: "price_a"},
			{Method: models.MethodPrivate, Plan: models.Plan60Min}: {PriceID: "price_b"},
			{Method: models.MethodZoom, Plan: models.Plan30Min}:    {PriceID: "price_c"},
			{Method: models.MethodZoom, Plan: models.Plan60Min}:    {PriceID: "price_d"},
		},
		ZoomMethodID: testZoomID,
	}
	return NewBookingHandler(resolver, gw, nil, nil, zap.NewNop(), "https://example.test")
}

func newTestRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/customer-portal", h.CustomerPortal)
	r.GET("/checkout-session/:id", h.GetCheckoutSession)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutSession(t *testing.T) {
	gw := &stubGateway{
		customerID: "cus_123",
		session:    payment.CheckoutSession{ID: "cs_456", URL: "https://checkout.example/cs_456"},
	}
	r := newTestRouter(newTestHandler(gw))

	w := postJSON(t, r, "/create-checkout-session", models.BookingPayload{
		Name:        "Jane",
		Email:       "j@example.com",
		PhoneNumber: "0412345678",
		Plan:        "60min",
		Method:      testZoomID,
		BookingDate: time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.CheckoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "cs_456" || resp.Customer != "cus_123" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if gw.lastResolved == nil {
		t.Fatal("gateway did not receive a resolved request")
	}
	if gw.lastResolved.PriceSelection.PriceID != "price_d" {
		t.Fatalf("resolved price = %q, want price_d", gw.lastResolved.PriceSelection.PriceID)
	}
	if gw.lastResolved.TrialEnd < time.Now().Unix()+60 {
		t.Fatalf("trialEnd %d is not in the future", gw.lastResolved.TrialEnd)
	}
}

func TestCreateCheckoutSession_MissingField(t *testing.T) {
	gw := &stubGateway{customerID: "cus_123"}
	r := newTestRouter(newTestHandler(gw))

	w := postJSON(t, r, "/create-checkout-session", models.BookingPayload{
		Name:  "Jane",
		Email: "j@example.com",
		// phoneNumber absent
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if gw.customerCalls != 0 || gw.sessionCalls != 0 {
		t.Fatal("gateway was called despite a validation failure")
	}
}

func TestCustomerPortal(t *testing.T) {
	gw := &stubGateway{portalURL: "https://portal.example/p_1"}
	r := newTestRouter(newTestHandler(gw))

	w := postJSON(t, r, "/customer-portal", gin.H{"customer_id": "cus_123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.PortalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.URL != "https://portal.example/p_1" {
		t.Fatalf("url = %q", resp.URL)
	}
}

func TestCustomerPortal_MissingCustomerID(t *testing.T) {
	r := newTestRouter(newTestHandler(&stubGateway{}))

	w := postJSON(t, r, "/customer-portal", gin.H{"customer_id": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCustomerPortal_UnknownCustomer(t *testing.T) {
	gw := &stubGateway{portalErr: payment.ErrCustomerNotFound}
	r := newTestRouter(newTestHandler(gw))

	w := postJSON(t, r, "/customer-portal", gin.H{"customer_id": "cus_missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetCheckoutSession(t *testing.T) {
	gw := &stubGateway{lookupID: "cus_123"}
	r := newTestRouter(newTestHandler(gw))

	req := httptest.NewRequest(http.MethodGet, "/checkout-session/cs_456", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp models.SessionLookupResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "cs_456" || resp.Customer != "cus_123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetCheckoutSession_NotFound(t *testing.T) {
	gw := &stubGateway{lookupErr: payment.ErrSessionNotFound}
	r := newTestRouter(newTestHandler(gw))

	req := httptest.NewRequest(http.MethodGet, "/checkout-session/cs_missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
