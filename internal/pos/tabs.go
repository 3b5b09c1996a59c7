package pos

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"qahwaan-system/internal/database/models"
)

// TabSummary is the derived listing row for one open tab. Totals are
// computed on read, never stored.
type TabSummary struct {
	TabID     string    `json:"tab_id"`
	Spot      string    `json:"spot"`
	ItemCount float64   `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TabService manages per-spot running tabs. It is stateless between calls;
// all state lives behind the gateway.
type TabService struct {
	gw Gateway
}

func NewTabService(gw Gateway) *TabService {
	return &TabService{gw: gw}
}

// Open returns the open tab for the spot, creating one if none exists.
// Repeated calls for the same spot return the same tab until it is
// finalized. When two concurrent opens race, the gateway rejects the second
// insert and the loser adopts the winner's tab.
func (s *TabService) Open(ctx context.Context, spot string) (*models.Tab, error) {
	spot = strings.TrimSpace(spot)
	if spot == "" {
		return nil, &ValidationError{Reason: "spot is required"}
	}

	tab, err := s.gw.FindOpenTab(ctx, spot)
	if err != nil {
		return nil, &UpstreamError{Op: "find open tab", Err: err}
	}
	if tab != nil {
		return tab, nil
	}

	now := time.Now().UTC()
	tab = &models.Tab{
		ID:        uuid.NewString(),
		Spot:      spot,
		Status:    models.TabStatusOpen,
		Cart:      models.CartLines{},
		OpenedAt:  now,
		UpdatedAt: now,
	}

	err = s.gw.CreateTab(ctx, tab)
	if errors.Is(err, ErrTabExists) {
		winner, findErr := s.gw.FindOpenTab(ctx, spot)
		if findErr != nil {
			return nil, &UpstreamError{Op: "find open tab", Err: findErr}
		}
		if winner != nil {
			return winner, nil
		}
		// The winner was finalized between the insert and the re-read.
		return nil, &ConflictError{Reason: "tab for spot was closed concurrently, retry"}
	}
	if err != nil {
		return nil, &UpstreamError{Op: "create tab", Err: err}
	}

	return tab, nil
}

// SaveCart validates the cart and replaces the tab's cart wholesale.
// Concurrent saves are last-write-wins; no merging happens. Status is not
// checked, matching the store's long-standing contract.
func (s *TabService) SaveCart(ctx context.Context, tabID string, lines []models.CartLine) (models.CartLines, error) {
	if strings.TrimSpace(tabID) == "" {
		return nil, &ValidationError{Reason: "tab_id is required"}
	}

	cart, err := ValidateCart(lines)
	if err != nil {
		return nil, err
	}

	found, err := s.gw.ReplaceCart(ctx, tabID, cart, time.Now().UTC())
	if err != nil {
		return nil, &UpstreamError{Op: "save cart", Err: err}
	}
	if !found {
		return nil, &NotFoundError{Resource: "tab", ID: tabID}
	}

	return cart, nil
}

// ListOpen returns a summary for every open tab, most recently updated
// first. Ordering is a UI convenience, not a contract.
func (s *TabService) ListOpen(ctx context.Context) ([]TabSummary, error) {
	tabs, err := s.gw.ListOpenTabs(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "list open tabs", Err: err}
	}

	summaries := make([]TabSummary, 0, len(tabs))
	for _, tab := range tabs {
		subtotal, count := CartTotals(tab.Cart)
		summaries = append(summaries, TabSummary{
			TabID:     tab.ID,
			Spot:      tab.Spot,
			ItemCount: count,
			Subtotal:  subtotal,
			UpdatedAt: tab.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	return summaries, nil
}
