package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"

	"artmarket-backend/internal/checkout"
	"artmarket-backend/internal/domain/orders"
)

type Handler struct {
	checkout      *checkout.Service
	signingSecret string
}

func NewHandler(svc *checkout.Service, signingSecret string) *Handler {
	return &Handler{checkout: svc, signingSecret: signingSecret}
}

// Handle receives Stripe's at-least-once event deliveries. Every accepted
// event is safe to redeliver: settling is idempotent and unknown events are
// acknowledged so Stripe stops retrying.
func (h *Handler) Handle(c *gin.Context) {
	if h.signingSecret == "" {
		// No signing secret in this environment. Acknowledge without
		// touching any order; unverifiable events must never settle money.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.signingSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.settleSession(c, event.Data.Raw, orders.StatusSucceeded)

	case "checkout.session.expired":
		h.settleSession(c, event.Data.Raw, orders.StatusFailed)

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func (h *Handler) settleSession(c *gin.Context, raw []byte, status orders.Status) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
		return
	}
	if err := h.checkout.Settle(c.Request.Context(), session.ID, status); err != nil {
		// 500 so Stripe retries; settling is idempotent either way.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
