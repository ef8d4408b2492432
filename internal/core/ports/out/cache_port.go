package out

import (
	"context"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

type CachePort interface {
	// Кэширование записей; попадание только если в кэше есть каждый день периода
	GetBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, bool)
	StoreBookings(ctx context.Context, clinicID string, from, to json_types.Date, bookings []domain.Booking)
	InvalidateBookings(ctx context.Context, clinicID string, date json_types.Date)
	InvalidateAllBookings(ctx context.Context)
}
