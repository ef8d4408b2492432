package rabbitmq

import (
	"context"

	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

// Массовое изменение записей на стороне бэкенда, очищаем весь кэш записей
func (l *BookingListener) processAllMessage(ctx context.Context) error {
	if err := l.useCase.InvalidateAllBookingsCache(ctx); err != nil {
		return err
	}

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"bookings_cache": true,
	})

	return nil
}
