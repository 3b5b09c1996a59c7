package pos

import (
	"context"
	"errors"
	"time"

	"qahwaan-system/internal/database/models"
)

// ErrTabExists is returned by Gateway.CreateTab when another open tab already
// holds the spot. The caller re-reads and adopts the winner.
var ErrTabExists = errors.New("an open tab already exists for this spot")

// Gateway is the persistence contract the tab store and finalizer run
// against. Every operation is a single-record atomic write or a filtered
// read; there are no multi-record transactions, so the finalizer must
// compensate explicitly when a later step fails. Lookups return (nil, nil)
// when no record matches.
type Gateway interface {
	FindOpenTab(ctx context.Context, spot string) (*models.Tab, error)
	GetTab(ctx context.Context, id string) (*models.Tab, error)

	// CreateTab inserts a new open tab, failing with ErrTabExists when the
	// spot already has one.
	CreateTab(ctx context.Context, tab *models.Tab) error

	// ReplaceCart overwrites the tab's cart wholesale (last write wins) and
	// advances updated_at. It reports whether a tab with the id existed.
	ReplaceCart(ctx context.Context, id string, cart models.CartLines, at time.Time) (bool, error)

	ListOpenTabs(ctx context.Context) ([]models.Tab, error)

	// CloseTab transitions the tab from open to closed only if it is
	// currently open, and reports whether a row transitioned. A false result
	// with a nil error means the tab was already closed (or never existed).
	CloseTab(ctx context.Context, id string, at time.Time) (bool, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	CreateSalesLines(ctx context.Context, lines []models.SalesLine) error
	DeleteSalesLines(ctx context.Context, orderID string) error
}
