package domain

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

// Booking is the slot record reported by the clinic backend.
type Booking struct {
	ID          string          `json:"id"`
	Date        json_types.Date `json:"date"`
	Time        json_types.Time `json:"time"`
	Duration    int             `json:"duration"`
	Status      SlotStatus      `json:"status"`
	PatientName string          `json:"patientName,omitempty"`
}

func (b Booking) Key() SlotKey {
	return SlotKey{Date: b.Date, Time: b.Time}
}

// BookedSlot is the state the backend reports for a taken slot.
type BookedSlot struct {
	Status      SlotStatus
	PatientName string
}
