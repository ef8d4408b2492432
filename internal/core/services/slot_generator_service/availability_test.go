package slot_generator_service

import (
	"testing"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

func TestPartitionByAvailability(t *testing.T) {
	slots, err := GenerateSlotsForDate(testDate, json_types.MustTime(9, 0), json_types.MustTime(11, 0), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookings := []domain.Booking{
		{ID: "1", Date: testDate, Time: json_types.MustTime(9, 0), Duration: 30, Status: domain.SlotStatusConfirmed, PatientName: "Ivanov"},
		{ID: "2", Date: testDate, Time: json_types.MustTime(9, 30), Duration: 30, Status: domain.SlotStatusCancelled, PatientName: "Petrov"},
		{ID: "3", Date: testDate, Time: json_types.MustTime(10, 0), Duration: 30, Status: domain.SlotStatusPending, PatientName: "Sidorov"},
		{ID: "4", Date: testDate, Time: json_types.MustTime(10, 30), Duration: 30, Status: domain.SlotStatusAvailable},
		// другой день не влияет
		{ID: "5", Date: testDate.AddDays(1), Time: json_types.MustTime(10, 30), Duration: 30, Status: domain.SlotStatusCompleted},
	}

	available, unavailable := PartitionByAvailability(slots, BookedSlotsFromBookings(bookings))

	if len(available)+len(unavailable) != len(slots) {
		t.Fatalf("partition lost slots: %d + %d != %d", len(available), len(unavailable), len(slots))
	}
	if len(available) != 2 || len(unavailable) != 2 {
		t.Fatalf("expected 2/2 split, got %d/%d", len(available), len(unavailable))
	}

	if available[0].Time.String() != "09:30" || available[1].Time.String() != "10:30" {
		t.Errorf("unexpected available slots: %s, %s", available[0].Time, available[1].Time)
	}

	if unavailable[0].Status != domain.SlotStatusConfirmed || unavailable[0].PatientName != "Ivanov" {
		t.Errorf("unexpected first unavailable slot: %+v", unavailable[0])
	}
	if unavailable[1].Status != domain.SlotStatusPending || unavailable[1].PatientName != "Sidorov" {
		t.Errorf("unexpected second unavailable slot: %+v", unavailable[1])
	}

	if slots[0].Status != domain.SlotStatusAvailable || slots[0].PatientName != "" {
		t.Error("input slots must not be modified")
	}

	seen := make(map[domain.SlotKey]bool)
	for _, slot := range append(append([]domain.Slot{}, available...), unavailable...) {
		if seen[slot.Key()] {
			t.Fatalf("slot %s present in both partitions", slot.Key())
		}
		seen[slot.Key()] = true
	}
}

func TestPartitionByAvailability_ReportedAvailable(t *testing.T) {
	slots, _ := GenerateSlotsForDate(testDate, json_types.MustTime(9, 0), json_types.MustTime(10, 0), 60)
	booked := map[domain.SlotKey]domain.BookedSlot{
		slots[0].Key(): {Status: domain.SlotStatusAvailable},
	}

	available, unavailable := PartitionByAvailability(slots, booked)
	if len(available) != 1 || len(unavailable) != 0 {
		t.Errorf("explicitly available slot must stay available, got %d/%d", len(available), len(unavailable))
	}
}

func TestPartitionByAvailability_Empty(t *testing.T) {
	available, unavailable := PartitionByAvailability(nil, nil)
	if len(available) != 0 || len(unavailable) != 0 {
		t.Errorf("expected empty partitions, got %d/%d", len(available), len(unavailable))
	}
}
