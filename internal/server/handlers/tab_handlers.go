package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"qahwaan-system/internal/database/models"
	"qahwaan-system/internal/pos"
	"qahwaan-system/internal/receipt"
)

type TabHTTPHandler struct {
	tabs      *pos.TabService
	finalizer *pos.Finalizer
}

func NewTabHTTPHandler(tabs *pos.TabService, finalizer *pos.Finalizer) *TabHTTPHandler {
	return &TabHTTPHandler{tabs: tabs, finalizer: finalizer}
}

type OpenTabRequest struct {
	Spot string `json:"spot" binding:"required"`
}

type SaveCartRequest struct {
	TabID string            `json:"tab_id" binding:"required"`
	Cart  []models.CartLine `json:"cart" binding:"required"`
}

type FinalizeTabRequest struct {
	TabID          string  `json:"tab_id" binding:"required"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	Staff          string  `json:"staff" binding:"required"`
	AmountReceived float64 `json:"amount_received"`
}

type finalizeWarning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type finalizeResponse struct {
	*models.Order
	Warning *finalizeWarning `json:"warning,omitempty"`
}

// OpenTab handles POST /api/tab/open.
func (h *TabHTTPHandler) OpenTab(c *gin.Context) {
	var req OpenTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing spot"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tab, err := h.tabs.Open(ctx, req.Spot)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tab_id": tab.ID,
		"spot":   tab.Spot,
		"cart":   tab.Cart,
	})
}

// SaveCart handles POST /api/tab/save.
func (h *TabHTTPHandler) SaveCart(c *gin.Context) {
	var req SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing tab_id or cart[]"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	cart, err := h.tabs.SaveCart(ctx, req.TabID, req.Cart)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"cart": cart,
	})
}

// ListOpenTabs handles GET /api/tabs.
func (h *TabHTTPHandler) ListOpenTabs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summaries, err := h.tabs.ListOpen(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// FinalizeTab handles POST /api/tab/finalize. The default response is the
// committed order as JSON; ?format=html returns the printable receipt
// instead. A tab-close warning rides along rather than failing the sale.
func (h *TabHTTPHandler) FinalizeTab(c *gin.Context) {
	var req FinalizeTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing tab_id, payment_method, or staff"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.finalizer.FinalizeTab(ctx, req.TabID, pos.FinalizeRequest{
		PaymentMethod:  req.PaymentMethod,
		Staff:          req.Staff,
		AmountReceived: req.AmountReceived,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondFinalized(c, result)
}

func respondFinalized(c *gin.Context, result *pos.FinalizeResult) {
	var warning *finalizeWarning
	if result.Warning != nil {
		warning = &finalizeWarning{
			Stage:   result.Warning.Stage,
			Message: result.Warning.Error(),
		}
		c.Header("X-Warning", result.Warning.Stage)
	}

	if c.Query("format") == "html" {
		html, err := receipt.Render(result.Order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, APIError{Message: "failed to render receipt"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	c.JSON(http.StatusOK, finalizeResponse{Order: result.Order, Warning: warning})
}
