package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tab statuses. A tab moves from open to closed exactly once.
const (
	TabStatusOpen   = "open"
	TabStatusClosed = "closed"
)

// Order sources.
const (
	OrderSourceTab    = "tab"
	OrderSourceDirect = "direct"
)

// Payment methods accepted at the till.
const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentOnline = "Online"
)

// CartLine is one item on a cart. Inside an open tab the cart is replaced
// wholesale on every save; inside an order it is an immutable snapshot.
type CartLine struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// CartLines stores a cart as a single jsonb column.
type CartLines []CartLine

func (c *CartLines) Scan(value interface{}) error {
	if value == nil {
		*c = CartLines{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("failed to scan CartLines: %v", value)
		}
	}

	return json.Unmarshal(bytes, c)
}

func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

// Tab is a running cart for one spot. The partial unique index keeps at most
// one open tab per spot; a second concurrent open gets a duplicate-key error
// and must re-read the winner.
type Tab struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"tab_id"`
	Spot      string     `gorm:"not null;uniqueIndex:udx_tabs_open_spot,where:status = 'open'" json:"spot"`
	Status    string     `gorm:"not null;index;default:'open'" json:"status"`
	Cart      CartLines  `gorm:"type:jsonb;not null" json:"cart"`
	OpenedAt  time.Time  `json:"opened_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// Order is the immutable financial record produced by a finalize. The id is
// generated before the first write so compensating deletes can reference it.
type Order struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"order_id"`
	Cart           CartLines `gorm:"type:jsonb;not null" json:"cart"`
	Subtotal       float64   `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	ItemCount      float64   `gorm:"type:numeric(12,2);not null" json:"item_count"`
	PaymentMethod  string    `gorm:"not null" json:"payment_method"`
	Staff          string    `gorm:"not null" json:"staff"`
	AmountReceived float64   `gorm:"type:numeric(12,2);not null" json:"amount_received"`
	ChangeDue      float64   `gorm:"type:numeric(12,2);not null" json:"change_due"`
	CreatedAt      time.Time `json:"created_at"`
	Source         string    `gorm:"not null" json:"source"`
	Spot           *string   `json:"spot,omitempty"`
}

// SalesLine is a denormalized per-item record derived from an order, written
// for reporting and never read back by the service.
type SalesLine struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID        string    `gorm:"type:uuid;index;not null" json:"order_id"`
	TS             time.Time `gorm:"column:ts;not null" json:"ts"`
	Item           string    `gorm:"not null" json:"item"`
	Qty            float64   `gorm:"type:numeric(12,2);not null" json:"qty"`
	Price          float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	PaymentMethod  string    `gorm:"not null" json:"payment_method"`
	Staff          string    `gorm:"not null" json:"staff"`
	AmountReceived float64   `gorm:"type:numeric(12,2);not null" json:"amount_received"`
	ChangeDue      float64   `gorm:"type:numeric(12,2);not null" json:"change_due"`
}

type MenuItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"not null;index" json:"category"`
	Price     float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	Sort      int       `gorm:"not null;default:0" json:"sort"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Staff struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	PIN       string    `gorm:"column:pin;not null" json:"-"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
