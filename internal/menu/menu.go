package menu

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"qahwaan-system/internal/database/models"
	"qahwaan-system/internal/pos"
)

const (
	menuCacheKey = "pos:menu"
	cacheTTL     = 5 * time.Minute
)

// Service serves the menu grouped by category and handles price edits.
// Listings are cached in redis; a price update invalidates the cache.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// List returns all active menu items grouped by category, sorted by their
// sort order inside each category.
func (s *Service) List(ctx context.Context) (map[string][]models.MenuItem, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, menuCacheKey).Result()
		if err == nil {
			var grouped map[string][]models.MenuItem
			if jsonErr := json.Unmarshal([]byte(cached), &grouped); jsonErr == nil {
				return grouped, nil
			}
		}
	}

	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&items).Error; err != nil {
		return nil, &pos.UpstreamError{Op: "list menu", Err: err}
	}

	grouped := GroupByCategory(items)

	if s.redis != nil {
		if data, err := json.Marshal(grouped); err == nil {
			if err := s.redis.Set(ctx, menuCacheKey, data, cacheTTL).Err(); err != nil {
				log.Printf("failed to cache menu: %v", err)
			}
		}
	}

	return grouped, nil
}

// UpdatePrice sets a new price for one menu item and invalidates the cached
// menu.
func (s *Service) UpdatePrice(ctx context.Context, id int64, newPrice float64) (*models.MenuItem, error) {
	if id == 0 {
		return nil, &pos.ValidationError{Reason: "id is required"}
	}
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) || newPrice < 0 {
		return nil, &pos.ValidationError{Reason: "new_price must be a non-negative number"}
	}

	price := decimal.NewFromFloat(newPrice).Round(2).InexactFloat64()

	res := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"price": price, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, &pos.UpstreamError{Op: "update price", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &pos.NotFoundError{Resource: "menu item", ID: itoa(id)}
	}

	s.invalidateCache(ctx)

	var item models.MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &pos.NotFoundError{Resource: "menu item", ID: itoa(id)}
		}
		return nil, &pos.UpstreamError{Op: "reload menu item", Err: err}
	}

	return &item, nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Printf("failed to invalidate menu cache: %v", err)
	}
}

// GroupByCategory buckets items by category and sorts each bucket by its
// sort column, then by name for equal sorts.
func GroupByCategory(items []models.MenuItem) map[string][]models.MenuItem {
	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	for _, bucket := range grouped {
		sort.Slice(bucket, func(i, j int) bool {
			if bucket[i].Sort != bucket[j].Sort {
				return bucket[i].Sort < bucket[j].Sort
			}
			return bucket[i].Name < bucket[j].Name
		})
	}
	return grouped
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
