package pos

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"qahwaan-system/internal/database/models"
)

// FinalizeRequest carries the payment details for turning a cart into an
// order.
type FinalizeRequest struct {
	PaymentMethod  string
	Staff          string
	AmountReceived float64
}

// FinalizeResult is a committed order plus, at most, a tab-close warning.
// When Warning is non-nil the financial record is correct but the tab failed
// to close and staff could finalize it again; callers must surface it.
type FinalizeResult struct {
	Order   *models.Order
	Warning *PartialFailure
}

// Finalizer turns an open tab (or an ad-hoc cart) into an immutable order
// plus per-line sale records. The write sequence is an explicit saga
// (order, then sales lines, then tab close) with a compensating order delete
// when the sales-line write fails. The gateway offers no multi-record
// transactions, so no step assumes a failed call definitely did not apply.
type Finalizer struct {
	gw     Gateway
	events EventPublisher
}

func NewFinalizer(gw Gateway, events EventPublisher) *Finalizer {
	return &Finalizer{gw: gw, events: events}
}

// FinalizeTab commits the tab's cart as an order and closes the tab. The
// close is a compare-and-swap on status; losing it means a concurrent
// finalize already booked the sale, and this attempt's records are removed.
func (f *Finalizer) FinalizeTab(ctx context.Context, tabID string, req FinalizeRequest) (*FinalizeResult, error) {
	if tabID == "" {
		return nil, &ValidationError{Reason: "tab_id is required"}
	}

	tab, err := f.gw.GetTab(ctx, tabID)
	if err != nil {
		return nil, &UpstreamError{Op: "load tab", Err: err}
	}
	if tab == nil {
		return nil, &NotFoundError{Resource: "tab", ID: tabID}
	}
	if tab.Status != models.TabStatusOpen {
		return nil, &ConflictError{Reason: "tab already closed"}
	}

	cart, err := ValidateCart(tab.Cart)
	if err != nil {
		return nil, err
	}
	if err := ValidatePayment(req.PaymentMethod, req.Staff, req.AmountReceived); err != nil {
		return nil, err
	}

	order := buildOrder(cart, req, models.OrderSourceTab, &tab.Spot)
	if err := f.commit(ctx, order); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	closed, closeErr := f.gw.CloseTab(ctx, tabID, now)
	if closeErr != nil {
		// The order and sales lines are committed and correct. Report
		// success, but with a warning the caller must not swallow: the tab
		// is still open and could be finalized again.
		warning := &PartialFailure{Stage: StageTabClose, OrderID: order.ID, Err: closeErr}
		log.Printf("tab %s: order %s committed but close failed: %v", tabID, order.ID, closeErr)
		f.publish(ctx, order)
		return &FinalizeResult{Order: order, Warning: warning}, nil
	}
	if !closed {
		// A concurrent finalize won the race and already booked this cart.
		// Remove this attempt's records and reject.
		if compErr := f.compensate(ctx, order.ID); compErr != nil {
			return nil, &PartialFailure{
				Stage:              StageTabClose,
				OrderID:            order.ID,
				Err:                compErr,
				CompensationFailed: true,
			}
		}
		return nil, &ConflictError{Reason: "tab already closed"}
	}

	f.publish(ctx, order)
	return &FinalizeResult{Order: order}, nil
}

// DirectSale commits an ad-hoc cart as an order with no tab involved. Same
// saga as FinalizeTab, seeded with a transient cart, minus the tab close.
func (f *Finalizer) DirectSale(ctx context.Context, lines []models.CartLine, req FinalizeRequest) (*FinalizeResult, error) {
	cart, err := ValidateCart(lines)
	if err != nil {
		return nil, err
	}
	if err := ValidatePayment(req.PaymentMethod, req.Staff, req.AmountReceived); err != nil {
		return nil, err
	}

	order := buildOrder(cart, req, models.OrderSourceDirect, nil)
	if err := f.commit(ctx, order); err != nil {
		return nil, err
	}

	f.publish(ctx, order)
	return &FinalizeResult{Order: order}, nil
}

// commit writes the order and its sales lines. A sales-line failure triggers
// a best-effort delete of the order; if that also fails the caller is told
// the records may be inconsistent instead of seeing a clean rejection.
func (f *Finalizer) commit(ctx context.Context, order *models.Order) error {
	if err := f.gw.CreateOrder(ctx, order); err != nil {
		return &UpstreamError{Op: "write order", Err: err}
	}

	if err := f.gw.CreateSalesLines(ctx, salesLines(order)); err != nil {
		if delErr := f.gw.DeleteOrder(ctx, order.ID); delErr != nil {
			log.Printf("order %s: sales-line write failed and compensating delete failed: %v", order.ID, delErr)
			return &PartialFailure{
				Stage:              StageSalesWrite,
				OrderID:            order.ID,
				Err:                err,
				CompensationFailed: true,
			}
		}
		return &UpstreamError{Op: "write sales lines", Err: err}
	}

	return nil
}

func (f *Finalizer) compensate(ctx context.Context, orderID string) error {
	if err := f.gw.DeleteSalesLines(ctx, orderID); err != nil {
		return err
	}
	return f.gw.DeleteOrder(ctx, orderID)
}

func (f *Finalizer) publish(ctx context.Context, order *models.Order) {
	if f.events == nil {
		return
	}
	event := OrderEvent{
		EventType:     EventOrderFinalized,
		OrderID:       order.ID,
		Subtotal:      order.Subtotal,
		PaymentMethod: order.PaymentMethod,
		Staff:         order.Staff,
		Source:        order.Source,
		Spot:          order.Spot,
		Timestamp:     time.Now().UTC(),
	}
	if err := f.events.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("order %s: failed to publish event: %v", order.ID, err)
	}
}

func buildOrder(cart models.CartLines, req FinalizeRequest, source string, spot *string) *models.Order {
	subtotal, itemCount := CartTotals(cart)

	received := decimal.NewFromFloat(req.AmountReceived).Round(2)
	change := received.Sub(decimal.NewFromFloat(subtotal))
	if change.IsNegative() {
		change = decimal.Zero
	}

	return &models.Order{
		ID:             uuid.NewString(),
		Cart:           cart,
		Subtotal:       subtotal,
		ItemCount:      itemCount,
		PaymentMethod:  req.PaymentMethod,
		Staff:          req.Staff,
		AmountReceived: received.InexactFloat64(),
		ChangeDue:      change.InexactFloat64(),
		CreatedAt:      time.Now().UTC(),
		Source:         source,
		Spot:           spot,
	}
}

func salesLines(order *models.Order) []models.SalesLine {
	lines := make([]models.SalesLine, 0, len(order.Cart))
	for _, item := range order.Cart {
		lines = append(lines, models.SalesLine{
			OrderID:        order.ID,
			TS:             order.CreatedAt,
			Item:           item.Name,
			Qty:            item.Qty,
			Price:          item.Price,
			PaymentMethod:  order.PaymentMethod,
			Staff:          order.Staff,
			AmountReceived: order.AmountReceived,
			ChangeDue:      order.ChangeDue,
		})
	}
	return lines
}
