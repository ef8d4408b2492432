package cache

import (
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

// NewCacheAdapter выбирает реализацию кэша записей по конфигу.
// При выключенном кэше возвращает nil, сервис тогда ходит в бэкенд на каждый запрос.
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (out.CachePort, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	switch cfg.Cache.Driver {
	case config.CacheDriverLRU:
		adapter, err := NewLRUCacheAdapter(cfg, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case config.CacheDriverRedis:
		adapter, err := NewRedisCacheAdapter(cfg, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
