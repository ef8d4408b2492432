package slot_generator_service

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
)

// BookedSlotsFromBookings indexes backend records by slot key. Records that do
// not hold a slot (available, cancelled) are skipped.
func BookedSlotsFromBookings(bookings []domain.Booking) map[domain.SlotKey]domain.BookedSlot {
	booked := make(map[domain.SlotKey]domain.BookedSlot, len(bookings))
	for _, booking := range bookings {
		if !booking.Status.IsBooking() {
			continue
		}
		booked[booking.Key()] = domain.BookedSlot{
			Status:      booking.Status,
			PatientName: booking.PatientName,
		}
	}
	return booked
}

// PartitionByAvailability splits slots into available and unavailable, keeping
// input order. A slot is available when its key is not booked or the reported
// status is exactly available. Unavailable slots are copies carrying the
// reported status and patient name.
func PartitionByAvailability(slots []domain.Slot, booked map[domain.SlotKey]domain.BookedSlot) ([]domain.Slot, []domain.Slot) {
	available := make([]domain.Slot, 0, len(slots))
	unavailable := make([]domain.Slot, 0)

	for _, slot := range slots {
		state, exists := booked[slot.Key()]
		if !exists || state.Status == domain.SlotStatusAvailable {
			available = append(available, slot)
			continue
		}

		taken := slot
		taken.Status = state.Status
		taken.PatientName = state.PatientName
		unavailable = append(unavailable, taken)
	}

	return available, unavailable
}
