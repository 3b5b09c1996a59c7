package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"qahwaan-system/internal/database/models"
	"qahwaan-system/internal/utils"
)

type AuthHTTPHandler struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

func NewAuthHTTPHandler(db *gorm.DB, tokenTTL time.Duration) *AuthHTTPHandler {
	return &AuthHTTPHandler{db: db, tokenTTL: tokenTTL}
}

type LoginRequest struct {
	Staff string `json:"staff" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// Login handles POST /api/auth/login: staff name + PIN in, bearer token out.
func (h *AuthHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Missing staff or pin"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var staff models.Staff
	err := h.db.WithContext(ctx).
		Where("name = ? AND active = ?", req.Staff, true).
		First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, APIError{Message: "Unknown staff or wrong PIN"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIError{Message: "Database error"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(staff.PIN), []byte(req.PIN)) != 1 {
		c.JSON(http.StatusUnauthorized, APIError{Message: "Unknown staff or wrong PIN"})
		return
	}

	token, exp, err := utils.GenerateToken(staff.ID, staff.Name, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIError{Message: "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
		"staff":      staff.Name,
	})
}
