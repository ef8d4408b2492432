package cache

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"go.uber.org/zap"
)

var monday = json_types.NewDate(2024, time.March, 4)

func testCacheConfig(size int, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Driver = config.CacheDriverLRU
	cfg.Cache.BookingsSize = size
	cfg.Cache.TTL = ttl
	return cfg
}

func newTestLRU(t *testing.T, size int, ttl time.Duration) *LRUCacheAdapter {
	t.Helper()
	adapter, err := NewLRUCacheAdapter(testCacheConfig(size, ttl), logger.NewZapLoggerFrom(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewLRUCacheAdapter: %v", err)
	}
	return adapter
}

func booking(id string, date json_types.Date, hour int) domain.Booking {
	return domain.Booking{
		ID:       id,
		Date:     date,
		Time:     json_types.MustTime(hour, 0),
		Duration: 30,
		Status:   domain.SlotStatusConfirmed,
	}
}

func TestLRUCacheAdapter_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	cache := newTestLRU(t, 100, time.Minute)

	bookings := []domain.Booking{
		booking("1", monday, 9),
		booking("2", monday.AddDays(2), 10),
		// вне периода, не сохраняется
		booking("3", monday.AddDays(10), 11),
	}
	cache.StoreBookings(ctx, "clinic-1", monday, monday.AddDays(6), bookings)

	got, ok := cache.GetBookings(ctx, "clinic-1", monday, monday.AddDays(6))
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("unexpected bookings: %+v", got)
	}

	// часть периода тоже попадание
	got, ok = cache.GetBookings(ctx, "clinic-1", monday.AddDays(1), monday.AddDays(1))
	if !ok || len(got) != 0 {
		t.Errorf("expected empty hit for a day without bookings, got %v %+v", ok, got)
	}

	if _, ok := cache.GetBookings(ctx, "clinic-1", monday, monday.AddDays(7)); ok {
		t.Error("range beyond stored days must miss")
	}
	if _, ok := cache.GetBookings(ctx, "clinic-2", monday, monday); ok {
		t.Error("other clinic must miss")
	}
}

func TestLRUCacheAdapter_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache := newTestLRU(t, 100, 0)

	cache.StoreBookings(ctx, "", monday, monday.AddDays(2), []domain.Booking{booking("1", monday, 9)})
	cache.StoreBookings(ctx, "clinic-1", monday, monday, nil)

	cache.InvalidateBookings(ctx, "", monday.AddDays(1))
	if _, ok := cache.GetBookings(ctx, "", monday, monday.AddDays(2)); ok {
		t.Error("range with an invalidated day must miss")
	}
	if _, ok := cache.GetBookings(ctx, "", monday, monday); !ok {
		t.Error("other days must stay cached")
	}

	cache.InvalidateAllBookings(ctx)
	if _, ok := cache.GetBookings(ctx, "clinic-1", monday, monday); ok {
		t.Error("expected miss after invalidating everything")
	}
}

func TestLRUCacheAdapter_TTL(t *testing.T) {
	ctx := context.Background()
	cache := newTestLRU(t, 100, time.Minute)

	now := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.StoreBookings(ctx, "clinic-1", monday, monday, nil)
	if _, ok := cache.GetBookings(ctx, "clinic-1", monday, monday); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.GetBookings(ctx, "clinic-1", monday, monday); ok {
		t.Error("expected miss after TTL")
	}
}

func TestLRUCacheAdapter_Eviction(t *testing.T) {
	ctx := context.Background()
	cache := newTestLRU(t, 2, 0)

	cache.StoreBookings(ctx, "clinic-1", monday, monday.AddDays(2), nil)

	hits := 0
	for i := 0; i < 3; i++ {
		if _, ok := cache.GetBookings(ctx, "clinic-1", monday.AddDays(i), monday.AddDays(i)); ok {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("expected 2 days to survive in a cache of size 2, got %d", hits)
	}
}

func TestNewCacheAdapter(t *testing.T) {
	log := logger.NewZapLoggerFrom(zap.NewNop())

	cfg := testCacheConfig(10, time.Minute)
	cfg.Cache.Enabled = false
	port, err := NewCacheAdapter(cfg, log)
	if err != nil || port != nil {
		t.Errorf("disabled cache must give nil port, got %v, %v", port, err)
	}

	cfg = testCacheConfig(10, time.Minute)
	port, err = NewCacheAdapter(cfg, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := port.(*LRUCacheAdapter); !ok {
		t.Errorf("expected LRU adapter, got %T", port)
	}

	cfg.Cache.Driver = "memcached"
	if _, err := NewCacheAdapter(cfg, log); err == nil {
		t.Error("expected error for unknown driver")
	}

	cfg = testCacheConfig(0, time.Minute)
	if _, err := NewCacheAdapter(cfg, log); err == nil {
		t.Error("expected error for zero LRU size")
	}
}
