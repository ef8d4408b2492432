package slot_generator_service

import (
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

// GenerateSlotsForDate splits [startTime, endTime) into back-to-back slots of
// durationMinutes. A trailing slot that would run past endTime is dropped.
func GenerateSlotsForDate(date json_types.Date, startTime, endTime json_types.Time, durationMinutes int) ([]domain.Slot, error) {
	if !startTime.Before(endTime) {
		return nil, fmt.Errorf("%w: %s-%s", domain.ErrInvalidRange, startTime, endTime)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDuration, durationMinutes)
	}

	count := (int(endTime) - int(startTime)) / durationMinutes
	slots := make([]domain.Slot, 0, count)

	for current := int(startTime); current+durationMinutes <= int(endTime); current += durationMinutes {
		slots = append(slots, domain.Slot{
			Date:            date,
			Time:            json_types.Time(current),
			DurationMinutes: durationMinutes,
			Status:          domain.SlotStatusAvailable,
		})
	}

	return slots, nil
}

// GenerateSlotsForDates runs GenerateSlotsForDate for each date and concatenates
// the results in date order.
func GenerateSlotsForDates(dates []json_types.Date, startTime, endTime json_types.Time, durationMinutes int) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	for _, date := range dates {
		daySlots, err := GenerateSlotsForDate(date, startTime, endTime, durationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

// GenerateSlotsForRequest validates req, expands its recurrence over horizonDays
// and generates the slots for every resulting date.
func GenerateSlotsForRequest(req domain.SlotRequest, horizonDays int) ([]json_types.Date, []domain.Slot, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, nil, err
	}

	dates, err := ExpandRecurrence(req.Date, req.Recurrence, horizonDays)
	if err != nil {
		return nil, nil, err
	}

	slots, err := GenerateSlotsForDates(dates, req.StartTime, req.EndTime, req.SlotDurationMinutes)
	if err != nil {
		return nil, nil, err
	}

	return dates, slots, nil
}

func ValidateRequest(req domain.SlotRequest) error {
	if req.Date.IsZero() {
		return domain.ErrMissingDate
	}
	if !req.StartTime.Valid() || !req.EndTime.Valid() {
		return fmt.Errorf("%w: %d-%d", domain.ErrInvalidTime, req.StartTime, req.EndTime)
	}
	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: %s-%s", domain.ErrInvalidRange, req.StartTime, req.EndTime)
	}
	if req.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidDuration, req.SlotDurationMinutes)
	}
	if !req.Recurrence.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRecurrence, req.Recurrence)
	}
	if _, err := req.ClinicUUID(); err != nil {
		return err
	}
	return nil
}
