package slot_generator_service

import (
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

// ExpandRecurrence lists the dates a recurrence rule covers, starting at
// baseDate. Every returned date lies less than horizonDays after baseDate;
// a horizon below one day is treated as one day.
func ExpandRecurrence(baseDate json_types.Date, recurrence domain.Recurrence, horizonDays int) ([]json_types.Date, error) {
	if horizonDays < 1 {
		horizonDays = 1
	}

	var step int
	switch recurrence.Normalize() {
	case domain.RecurrenceNone:
		return []json_types.Date{baseDate}, nil
	case domain.RecurrenceDaily:
		step = 1
	case domain.RecurrenceWeekly:
		step = 7
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRecurrence, recurrence)
	}

	dates := make([]json_types.Date, 0, (horizonDays+step-1)/step)
	for offset := 0; offset < horizonDays; offset += step {
		dates = append(dates, baseDate.AddDays(offset))
	}

	return dates, nil
}
