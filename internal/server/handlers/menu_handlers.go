package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"qahwaan-system/internal/menu"
)

type MenuHTTPHandler struct {
	menu *menu.Service
}

func NewMenuHTTPHandler(menuService *menu.Service) *MenuHTTPHandler {
	return &MenuHTTPHandler{menu: menuService}
}

type UpdatePriceRequest struct {
	ID       int64   `json:"id" binding:"required"`
	NewPrice float64 `json:"new_price"`
}

// ListMenu handles GET /api/menu: active items grouped by category.
func (h *MenuHTTPHandler) ListMenu(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	grouped, err := h.menu.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// UpdatePrice handles POST /api/update_price (staff token required).
func (h *MenuHTTPHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing id or new_price"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.menu.UpdatePrice(ctx, req.ID, req.NewPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
