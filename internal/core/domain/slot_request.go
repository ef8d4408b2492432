package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Normalize maps the empty value to RecurrenceNone.
func (r Recurrence) Normalize() Recurrence {
	if r == "" {
		return RecurrenceNone
	}
	return r
}

func (r Recurrence) Valid() bool {
	switch r.Normalize() {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return true
	}
	return false
}

type SlotRequest struct {
	Date                json_types.Date `json:"date"`
	StartTime           json_types.Time `json:"startTime"`
	EndTime             json_types.Time `json:"endTime"`
	SlotDurationMinutes int             `json:"slotDuration"`
	Recurrence          Recurrence      `json:"recurrence,omitempty"`
	ClinicID            string          `json:"clinicId,omitempty"`
	ResourceTags        []string        `json:"resourceTags,omitempty"`
	HorizonDays         int             `json:"horizonDays,omitempty"`
}

// UnmarshalJSON requires startTime and endTime to be present: the zero Time is
// a valid 00:00, so an absent field cannot be told apart after decoding.
func (r *SlotRequest) UnmarshalJSON(data []byte) error {
	type slotRequestAlias SlotRequest
	aux := struct {
		*slotRequestAlias
		StartTime *json_types.Time `json:"startTime"`
		EndTime   *json_types.Time `json:"endTime"`
	}{slotRequestAlias: (*slotRequestAlias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.StartTime == nil {
		return fmt.Errorf("%w: startTime is required", ErrInvalidTime)
	}
	if aux.EndTime == nil {
		return fmt.Errorf("%w: endTime is required", ErrInvalidTime)
	}

	r.StartTime = *aux.StartTime
	r.EndTime = *aux.EndTime
	return nil
}

// ClinicUUID parses the optional clinic id. An absent id yields nil.
func (r SlotRequest) ClinicUUID() (*uuid.UUID, error) {
	if r.ClinicID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(r.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidClinicID, r.ClinicID)
	}
	return &id, nil
}

// SlotCreationRequest is the body accepted by the backend slot-creation endpoint.
type SlotCreationRequest struct {
	Date                json_types.Date `json:"date"`
	StartTime           json_types.Time `json:"startTime"`
	EndTime             json_types.Time `json:"endTime"`
	SlotDuration        int             `json:"slotDuration"`
	ClinicID            *uuid.UUID      `json:"clinicId,omitempty"`
	Recurrence          *Recurrence     `json:"recurrence,omitempty"`
	AssociatedResources []string        `json:"associatedResources,omitempty"`
}

type SlotCreationResult struct {
	Created   int `json:"created"`
	Previewed int `json:"previewed"`
}

type Availability struct {
	Available   []Slot `json:"available"`
	Unavailable []Slot `json:"unavailable"`
}
