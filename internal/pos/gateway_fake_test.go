package pos

import (
	"context"
	"time"

	"qahwaan-system/internal/database/models"
)

// fakeGateway is an in-memory Gateway with per-operation error injection,
// mirroring the real gateway's single-record semantics.
type fakeGateway struct {
	tabs   map[string]*models.Tab
	orders map[string]*models.Order
	sales  map[string][]models.SalesLine

	failFindOpenTab   error
	failCreateTab     error
	failReplaceCart   error
	failCreateOrder   error
	failCreateSales   error
	failDeleteOrder   error
	failDeleteSales   error
	failCloseTab      error
	closeReturnsFalse bool
	hideOpenTabOnce   bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		tabs:   make(map[string]*models.Tab),
		orders: make(map[string]*models.Order),
		sales:  make(map[string][]models.SalesLine),
	}
}

func (g *fakeGateway) FindOpenTab(ctx context.Context, spot string) (*models.Tab, error) {
	if g.failFindOpenTab != nil {
		return nil, g.failFindOpenTab
	}
	if g.hideOpenTabOnce {
		g.hideOpenTabOnce = false
		return nil, nil
	}
	var newest *models.Tab
	for _, tab := range g.tabs {
		if tab.Spot != spot || tab.Status != models.TabStatusOpen {
			continue
		}
		if newest == nil || tab.UpdatedAt.After(newest.UpdatedAt) {
			newest = tab
		}
	}
	return newest, nil
}

func (g *fakeGateway) GetTab(ctx context.Context, id string) (*models.Tab, error) {
	tab, ok := g.tabs[id]
	if !ok {
		return nil, nil
	}
	copied := *tab
	return &copied, nil
}

func (g *fakeGateway) CreateTab(ctx context.Context, tab *models.Tab) error {
	if g.failCreateTab != nil {
		return g.failCreateTab
	}
	for _, existing := range g.tabs {
		if existing.Spot == tab.Spot && existing.Status == models.TabStatusOpen {
			return ErrTabExists
		}
	}
	copied := *tab
	g.tabs[tab.ID] = &copied
	return nil
}

func (g *fakeGateway) ReplaceCart(ctx context.Context, id string, cart models.CartLines, at time.Time) (bool, error) {
	if g.failReplaceCart != nil {
		return false, g.failReplaceCart
	}
	tab, ok := g.tabs[id]
	if !ok {
		return false, nil
	}
	tab.Cart = cart
	tab.UpdatedAt = at
	return true, nil
}

func (g *fakeGateway) ListOpenTabs(ctx context.Context) ([]models.Tab, error) {
	var tabs []models.Tab
	for _, tab := range g.tabs {
		if tab.Status == models.TabStatusOpen {
			tabs = append(tabs, *tab)
		}
	}
	return tabs, nil
}

func (g *fakeGateway) CloseTab(ctx context.Context, id string, at time.Time) (bool, error) {
	if g.failCloseTab != nil {
		return false, g.failCloseTab
	}
	if g.closeReturnsFalse {
		return false, nil
	}
	tab, ok := g.tabs[id]
	if !ok || tab.Status != models.TabStatusOpen {
		return false, nil
	}
	tab.Status = models.TabStatusClosed
	tab.ClosedAt = &at
	tab.UpdatedAt = at
	return true, nil
}

func (g *fakeGateway) CreateOrder(ctx context.Context, order *models.Order) error {
	if g.failCreateOrder != nil {
		return g.failCreateOrder
	}
	copied := *order
	g.orders[order.ID] = &copied
	return nil
}

func (g *fakeGateway) DeleteOrder(ctx context.Context, id string) error {
	if g.failDeleteOrder != nil {
		return g.failDeleteOrder
	}
	delete(g.orders, id)
	return nil
}

func (g *fakeGateway) CreateSalesLines(ctx context.Context, lines []models.SalesLine) error {
	if g.failCreateSales != nil {
		return g.failCreateSales
	}
	for _, line := range lines {
		g.sales[line.OrderID] = append(g.sales[line.OrderID], line)
	}
	return nil
}

func (g *fakeGateway) DeleteSalesLines(ctx context.Context, orderID string) error {
	if g.failDeleteSales != nil {
		return g.failDeleteSales
	}
	delete(g.sales, orderID)
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events []OrderEvent
	fail   error
}

func (p *fakePublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, event)
	return nil
}
