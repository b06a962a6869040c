package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artmarket-backend/internal/store"
)

type AdminUser struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminOrder struct {
	ID              string  `json:"id"`
	ArtworkID       string  `json:"artwork_id"`
	BuyerID         *uint   `json:"buyer_id,omitempty"`
	AmountCents     int64   `json:"amount_cents"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	StripeSessionID *string `json:"stripe_session_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type Handler struct {
	store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	all, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			AuthProvider: u.AuthProvider,
			CreatedAt:    u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ListAllOrders shows the settlement state of every order, newest first.
// This is how operators confirm that webhook deliveries actually landed.
func (h *Handler) ListAllOrders(c *gin.Context) {
	all, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	out := make([]AdminOrder, 0, len(all))
	for _, o := range all {
		out = append(out, AdminOrder{
			ID:              o.ID,
			ArtworkID:       o.ArtworkID,
			BuyerID:         o.BuyerID,
			AmountCents:     o.AmountCents,
			Currency:        o.Currency,
			Status:          string(o.Status),
			StripeSessionID: o.StripeSessionID,
			CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04"),
			UpdatedAt:       o.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, out)
}
