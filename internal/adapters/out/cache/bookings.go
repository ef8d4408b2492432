package cache

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

// Записи без клиники кэшируются под отдельным ключом
const noClinicKey = "_none_"

func bookingsKey(clinicID string, date json_types.Date) string {
	if clinicID == "" {
		clinicID = noClinicKey
	}
	return clinicID + ":" + date.String()
}

// datesBetween перечисляет дни периода, обе даты включительно
func datesBetween(from, to json_types.Date) []json_types.Date {
	dates := make([]json_types.Date, 0, from.DaysUntil(to)+1)
	for date := from; !date.After(to); date = date.AddDays(1) {
		dates = append(dates, date)
	}
	return dates
}

// splitBookingsByDate раскладывает записи по дням периода. Дни без записей
// получают пустой срез, чтобы в кэше хранилось и "записей нет".
func splitBookingsByDate(from, to json_types.Date, bookings []domain.Booking) map[json_types.Date][]domain.Booking {
	byDate := make(map[json_types.Date][]domain.Booking)
	for _, date := range datesBetween(from, to) {
		byDate[date] = []domain.Booking{}
	}
	for _, booking := range bookings {
		if _, inRange := byDate[booking.Date]; inRange {
			byDate[booking.Date] = append(byDate[booking.Date], booking)
		}
	}
	return byDate
}
