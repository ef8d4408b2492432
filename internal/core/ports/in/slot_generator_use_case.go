package in

import (
	"context"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

type SlotGeneratorUseCase interface {
	// Предпросмотр слотов по запросу с учетом повторения
	PreviewSlots(ctx context.Context, req domain.SlotRequest) ([]domain.Slot, error)

	// Разделение слотов на свободные и занятые по данным бэкенда
	CheckAvailability(ctx context.Context, req domain.SlotRequest) (domain.Availability, []domain.DebugInfo, error)

	// Создание слотов на бэкенде после локальной проверки
	CreateSlots(ctx context.Context, req domain.SlotRequest) (domain.SlotCreationResult, error)

	// Выгрузка предпросмотра в xlsx или ics
	ExportSlots(ctx context.Context, req domain.SlotRequest, format domain.ExportFormat) ([]byte, error)

	BuildMonthGrid(year int, month time.Month) ([]domain.CalendarCell, error)
	FormatTimeSlot(time24h string) (string, error)
	ParseTimeSlot12h(label string) (string, error)

	// Сброс кэша записей по событиям бэкенда
	InvalidateBookingsCache(ctx context.Context, clinicID string, date json_types.Date) error
	InvalidateAllBookingsCache(ctx context.Context) error
}
