package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"warrapay/models"
	"warrapay/services/booking"
	"warrapay/services/payment"
	"warrapay/services/tasks"
	"warrapay/utils"
)

// sessionCacheTTL bounds how long a checkout session → customer mapping
// stays cached; the success page polls the lookup right after payment.
const sessionCacheTTL = 24 * time.Hour

// ReminderEnqueuer is the slice of the asynq client the handler needs.
type ReminderEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingHandler serves the checkout, customer portal and session
// lookup endpoints. Cache and Reminders may be nil when Redis is not
// configured; both are best-effort.
type BookingHandler struct {
	Resolver  booking.RequestResolver
	Gateway   payment.Gateway
	Cache     *redis.Client
	Reminders ReminderEnqueuer
	Logger    *zap.Logger
	BaseURL   string
}

func NewBookingHandler(resolver booking.RequestResolver, gateway payment.Gateway, cache *redis.Client, reminders ReminderEnqueuer, logger *zap.Logger, baseURL string) *BookingHandler {
	return &BookingHandler{
		Resolver:  resolver,
		Gateway:   gateway,
		Cache:     cache,
		Reminders: reminders,
		Logger:    logger,
		BaseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// CreateCheckoutSession handles POST /create-checkout-session: resolve
// the booking form, create a customer, then a subscription checkout
// session with the computed trial end.
func (h *BookingHandler) CreateCheckoutSession(c *gin.Context) {
	var payload models.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}

	resolved, err := h.Resolver.Resolve(payload, time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not resolve booking", err.Error())
		return
	}

	ctx := c.Request.Context()
	customerID, err := h.Gateway.CreateCustomer(ctx, resolved.CustomerProfile, resolved.Metadata)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "customer creation failed", err.Error())
		return
	}

	successURL := h.BaseURL + "/success.html?session_id={CHECKOUT_SESSION_ID}&customer_id=" + customerID
	cancelURL := h.BaseURL + "/canceled.html"
	sess, err := h.Gateway.CreateCheckoutSession(ctx, customerID, resolved, successURL, cancelURL)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "checkout session creation failed", err.Error())
		return
	}

	h.cacheSessionCustomer(c, sess.ID, customerID)
	h.scheduleTrialReminder(customerID, resolved)

	c.JSON(http.StatusOK, models.CheckoutResponse{ID: sess.ID, Customer: customerID, URL: sess.URL})
}

// CustomerPortal handles POST /customer-portal for an existing customer.
func (h *BookingHandler) CustomerPortal(c *gin.Context) {
	var input struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.CustomerID) == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing customer_id parameter", "")
		return
	}

	url, err := h.Gateway.CreatePortalSession(c.Request.Context(), input.CustomerID, h.BaseURL+"/account")
	if err != nil {
		if errors.Is(err, payment.ErrCustomerNotFound) {
			utils.JSONError(c, http.StatusNotFound, "customer not found", input.CustomerID)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "portal session creation failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.PortalResponse{URL: url})
}

// GetCheckoutSession handles GET /checkout-session/:id, mapping a
// session back to its customer. The Redis cache is consulted first so
// success-page polling doesn't hammer the processor.
func (h *BookingHandler) GetCheckoutSession(c *gin.Context) {
	sessionID := c.Param("id")

	if h.Cache != nil {
		if customerID, err := h.Cache.Get(c.Request.Context(), sessionCacheKey(sessionID)).Result(); err == nil {
			c.JSON(http.StatusOK, models.SessionLookupResponse{ID: sessionID, Customer: customerID})
			return
		}
	}

	customerID, err := h.Gateway.LookupSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "checkout session not found", sessionID)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "checkout session lookup failed", err.Error())
		return
	}

	h.cacheSessionCustomer(c, sessionID, customerID)
	c.JSON(http.StatusOK, models.SessionLookupResponse{ID: sessionID, Customer: customerID})
}

func (h *BookingHandler) cacheSessionCustomer(c *gin.Context, sessionID, customerID string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Set(c.Request.Context(), sessionCacheKey(sessionID), customerID, sessionCacheTTL).Err(); err != nil {
		h.Logger.Warn("failed to cache session customer", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

func (h *BookingHandler) scheduleTrialReminder(customerID string, resolved *models.ResolvedBookingRequest) {
	if h.Reminders == nil {
		return
	}

	task, opts, err := tasks.NewTrialReminderTask(tasks.TrialReminderPayload{
		CustomerID: customerID,
		Name:       resolved.CustomerProfile.Name,
		Email:      resolved.CustomerProfile.Email,
		TrialEnd:   resolved.TrialEnd,
		Metadata:   resolved.Metadata,
	}, time.Now())
	if err != nil {
		h.Logger.Warn("failed to build trial reminder task", zap.Error(err))
		return
	}
	if _, err := h.Reminders.Enqueue(task, opts...); err != nil {
		// Best-effort: a lost reminder must not fail the checkout.
		h.Logger.Warn("failed to enqueue trial reminder", zap.String("customerID", customerID), zap.Error(err))
	}
}

func sessionCacheKey(sessionID string) string {
	return "checkout:session:" + sessionID
}
