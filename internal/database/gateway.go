package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"qahwaan-system/internal/database/models"
	"qahwaan-system/internal/pos"
)

// Gateway is the gorm/postgres implementation of pos.Gateway. Every method
// is a single filtered read or a single-record atomic write; the finalizer's
// saga runs above it and never gets a multi-record transaction.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) FindOpenTab(ctx context.Context, spot string) (*models.Tab, error) {
	var tab models.Tab
	err := g.db.WithContext(ctx).
		Where("spot = ? AND status = ?", spot, models.TabStatusOpen).
		Order("updated_at DESC").
		First(&tab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tab, nil
}

func (g *Gateway) GetTab(ctx context.Context, id string) (*models.Tab, error) {
	var tab models.Tab
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&tab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tab, nil
}

// CreateTab relies on the partial unique index over (spot) WHERE
// status = 'open': the insert itself is the find-or-create precondition, so
// two concurrent opens cannot both create a tab for the same spot.
func (g *Gateway) CreateTab(ctx context.Context, tab *models.Tab) error {
	err := g.db.WithContext(ctx).Create(tab).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pos.ErrTabExists
	}
	return err
}

func (g *Gateway) ReplaceCart(ctx context.Context, id string, cart models.CartLines, at time.Time) (bool, error) {
	res := g.db.WithContext(ctx).Model(&models.Tab{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"cart": cart, "updated_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *Gateway) ListOpenTabs(ctx context.Context) ([]models.Tab, error) {
	var tabs []models.Tab
	err := g.db.WithContext(ctx).
		Where("status = ?", models.TabStatusOpen).
		Find(&tabs).Error
	return tabs, err
}

// CloseTab is the compare-and-swap the finalizer depends on: the status
// filter makes the losing racer see zero rows affected.
func (g *Gateway) CloseTab(ctx context.Context, id string, at time.Time) (bool, error) {
	res := g.db.WithContext(ctx).Model(&models.Tab{}).
		Where("id = ? AND status = ?", id, models.TabStatusOpen).
		Updates(map[string]interface{}{
			"status":     models.TabStatusClosed,
			"closed_at":  at,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, order *models.Order) error {
	return g.db.WithContext(ctx).Create(order).Error
}

func (g *Gateway) DeleteOrder(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func (g *Gateway) CreateSalesLines(ctx context.Context, lines []models.SalesLine) error {
	if len(lines) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Create(&lines).Error
}

func (g *Gateway) DeleteSalesLines(ctx context.Context, orderID string) error {
	return g.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.SalesLine{}).Error
}
