package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

const (
	redisBookingsPrefix = "slots:bookings:"
	redisScanBatch      = 500
)

// RedisCacheAdapter хранит записи в Redis, кэш общий для всех реплик сервиса
type RedisCacheAdapter struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger out.LoggerPort
}

// NewRedisCacheAdapter подключается к Redis и проверяет соединение через Ping
func NewRedisCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*RedisCacheAdapter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("cache.redis.connect_failed", out.LogFields{
			"addr":  cfg.Cache.RedisAddr,
			"error": err.Error(),
		})
		rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("cache.redis.connected", out.LogFields{
		"addr": cfg.Cache.RedisAddr,
	})

	return &RedisCacheAdapter{
		rdb:    rdb,
		ttl:    cfg.Cache.TTL,
		logger: logger.WithModule("RedisCacheAdapter"),
	}, nil
}

func redisBookingsKey(clinicID string, date json_types.Date) string {
	return redisBookingsPrefix + bookingsKey(clinicID, date)
}

// Кэширование записей

func (c *RedisCacheAdapter) GetBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, bool) {
	dates := datesBetween(from, to)
	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, redisBookingsKey(clinicID, date))
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("cache.bookings.get.failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, false
	}

	bookings := make([]domain.Booking, 0)
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			c.logger.Debug("cache.bookings.get.miss", out.LogFields{
				"clinicId": clinicID,
				"date":     dates[i],
			})
			return nil, false
		}

		var dayBookings []domain.Booking
		if err := json.Unmarshal([]byte(raw), &dayBookings); err != nil {
			c.logger.Warn("cache.bookings.get.decode_failed", out.LogFields{
				"key":   keys[i],
				"error": err.Error(),
			})
			return nil, false
		}
		bookings = append(bookings, dayBookings...)
	}

	c.logger.Debug("cache.bookings.get.hit", out.LogFields{
		"clinicId":      clinicID,
		"bookingsCount": len(bookings),
	})
	return bookings, true
}

func (c *RedisCacheAdapter) StoreBookings(ctx context.Context, clinicID string, from, to json_types.Date, bookings []domain.Booking) {
	pipe := c.rdb.Pipeline()
	for date, dayBookings := range splitBookingsByDate(from, to, bookings) {
		data, err := json.Marshal(dayBookings)
		if err != nil {
			c.logger.Warn("cache.bookings.store.encode_failed", out.LogFields{
				"clinicId": clinicID,
				"date":     date,
				"error":    err.Error(),
			})
			return
		}
		pipe.Set(ctx, redisBookingsKey(clinicID, date), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("cache.bookings.store.failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateBookings(ctx context.Context, clinicID string, date json_types.Date) {
	if err := c.rdb.Del(ctx, redisBookingsKey(clinicID, date)).Err(); err != nil {
		c.logger.Warn("cache.bookings.invalidate.failed", out.LogFields{
			"clinicId": clinicID,
			"date":     date,
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateAllBookings(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, redisBookingsPrefix+"*", redisScanBatch).Result()
		if err != nil {
			c.logger.Warn("cache.bookings.invalidate_all.failed", out.LogFields{
				"error": err.Error(),
			})
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("cache.bookings.invalidate_all.failed", out.LogFields{
					"error": err.Error(),
				})
				return
			}
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (c *RedisCacheAdapter) Close() error {
	return c.rdb.Close()
}
