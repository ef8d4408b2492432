package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

type CacheBookingMessage struct {
	ClinicID string          `json:"clinicId"`
	Date     json_types.Date `json:"date"`
}

// Запись на день изменилась, сбрасываем кэш этого дня клиники
func (l *BookingListener) processBookingMessage(ctx context.Context, body []byte) error {
	var msgJson CacheBookingMessage
	if err := json.Unmarshal(body, &msgJson); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	if msgJson.Date.IsZero() {
		return fmt.Errorf("%w: booking message without date", errMalformedMessage)
	}

	l.logger.Info("booking.message.received", out.LogFields{
		"clinicId": msgJson.ClinicID,
		"date":     msgJson.Date,
	})

	if err := l.useCase.InvalidateBookingsCache(ctx, msgJson.ClinicID, msgJson.Date); err != nil {
		if domain.IsValidationError(err) {
			return fmt.Errorf("%w: %v", errMalformedMessage, err)
		}
		return err
	}

	l.logger.Info("booking.message.invalidated", out.LogFields{
		"clinicId": msgJson.ClinicID,
		"date":     msgJson.Date,
	})

	return nil
}
