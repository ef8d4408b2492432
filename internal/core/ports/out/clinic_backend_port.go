package out

import (
	"context"
	"errors"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

var (
	ErrBackendNotConfigured = errors.New("clinic backend is not configured")
	ErrBackendUnavailable   = errors.New("clinic backend request failed")
)

type ClinicBackendPort interface {
	// Записи по слотам клиники за период, обе даты включительно
	ListBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, error)

	// Создание слотов на стороне бэкенда, возвращает количество созданных
	CreateSlots(ctx context.Context, req domain.SlotCreationRequest) (int, error)
}
