package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"qahwaan-system/internal/database/models"
	"qahwaan-system/internal/pos"
)

type SaleHTTPHandler struct {
	finalizer *pos.Finalizer
}

func NewSaleHTTPHandler(finalizer *pos.Finalizer) *SaleHTTPHandler {
	return &SaleHTTPHandler{finalizer: finalizer}
}

type DirectSaleRequest struct {
	Cart           []models.CartLine `json:"cart" binding:"required"`
	PaymentMethod  string            `json:"payment_method" binding:"required"`
	Staff          string            `json:"staff" binding:"required"`
	AmountReceived float64           `json:"amount_received"`
}

// DirectSale handles POST /api/sale: a one-shot sale with no tab behind it.
func (h *SaleHTTPHandler) DirectSale(c *gin.Context) {
	var req DirectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing cart, payment_method, or staff"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.finalizer.DirectSale(ctx, req.Cart, pos.FinalizeRequest{
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
