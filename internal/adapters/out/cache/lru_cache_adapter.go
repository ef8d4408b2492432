package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

type bookingsCacheEntry struct {
	Bookings []domain.Booking
	StoredAt time.Time
}

// LRUCacheAdapter хранит записи по ключу клиника+день в памяти процесса
type LRUCacheAdapter struct {
	cache  *lru.Cache[string, *bookingsCacheEntry]
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewLRUCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*LRUCacheAdapter, error) {
	cache, err := lru.New[string, *bookingsCacheEntry](cfg.Cache.BookingsSize)
	if err != nil {
		logger.Error("cache.bookings.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.BookingsSize,
		})
		return nil, err
	}

	return &LRUCacheAdapter{
		cache:  cache,
		ttl:    cfg.Cache.TTL,
		now:    time.Now,
		logger: logger.WithModule("LRUCacheAdapter"),
	}, nil
}

// Кэширование записей

func (c *LRUCacheAdapter) GetBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, date := range datesBetween(from, to) {
		entry, exists := c.cache.Get(bookingsKey(clinicID, date))
		if !exists || c.expired(entry) {
			c.logger.Debug("cache.bookings.get.miss", out.LogFields{
				"clinicId": clinicID,
				"date":     date,
			})
			return nil, false
		}
		bookings = append(bookings, entry.Bookings...)
	}

	c.logger.Debug("cache.bookings.get.hit", out.LogFields{
		"clinicId":      clinicID,
		"bookingsCount": len(bookings),
	})
	return bookings, true
}

func (c *LRUCacheAdapter) StoreBookings(ctx context.Context, clinicID string, from, to json_types.Date, bookings []domain.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.bookings.store", out.LogFields{
		"clinicId":      clinicID,
		"from":          from,
		"to":            to,
		"bookingsCount": len(bookings),
	})

	storedAt := c.now()
	for date, dayBookings := range splitBookingsByDate(from, to, bookings) {
		c.cache.Add(bookingsKey(clinicID, date), &bookingsCacheEntry{
			Bookings: dayBookings,
			StoredAt: storedAt,
		})
	}
}

func (c *LRUCacheAdapter) InvalidateBookings(ctx context.Context, clinicID string, date json_types.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(bookingsKey(clinicID, date))
}

func (c *LRUCacheAdapter) InvalidateAllBookings(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

func (c *LRUCacheAdapter) expired(entry *bookingsCacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.StoredAt) > c.ttl
}
