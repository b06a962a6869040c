package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artmarket-backend/internal/checkout"
	"artmarket-backend/internal/store"
)

type Handler struct {
	checkout *checkout.Service
}

func NewHandler(svc *checkout.Service) *Handler {
	return &Handler{checkout: svc}
}

// ------------------------------
// POST /api/checkout/:artworkId
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var buyerID *uint
	if id := c.GetUint("user_id"); id != 0 {
		buyerID = &id
	}

	res, err := h.checkout.Create(c.Request.Context(), c.Param("artworkId"), buyerID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	if res.Simulated {
		c.JSON(http.StatusOK, gin.H{"simulated": true, "orderId": res.OrderID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": res.URL})
}
