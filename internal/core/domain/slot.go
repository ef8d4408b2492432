package domain

import (
	"encoding/json"
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusConfirmed SlotStatus = "confirmed"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusCompleted SlotStatus = "completed"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusPending, SlotStatusConfirmed, SlotStatusCancelled, SlotStatusCompleted:
		return true
	}
	return false
}

func (s *SlotStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse slot status: %w", err)
	}

	status := SlotStatus(str)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlotStatus, str)
	}

	*s = status
	return nil
}

// IsBooking reports whether a slot in this status is taken.
func (s SlotStatus) IsBooking() bool {
	return s == SlotStatusPending || s == SlotStatusConfirmed || s == SlotStatusCompleted
}

// Slot is a single bookable interval. Generated slots are values and are never
// mutated after generation.
type Slot struct {
	Date            json_types.Date `json:"date"`
	Time            json_types.Time `json:"time"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          SlotStatus      `json:"status"`
	PatientName     string          `json:"patientName,omitempty"`
}

// SlotKey identifies a slot by its date and start time.
type SlotKey struct {
	Date json_types.Date
	Time json_types.Time
}

func (s Slot) Key() SlotKey {
	return SlotKey{Date: s.Date, Time: s.Time}
}

// EndMinutes returns the slot end as minutes since midnight of its date.
func (s Slot) EndMinutes() int {
	return int(s.Time) + s.DurationMinutes
}

func (k SlotKey) String() string {
	return k.Date.String() + "T" + k.Time.String()
}
