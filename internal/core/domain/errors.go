package domain

import (
	"errors"

	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

var (
	ErrInvalidRange        = errors.New("end time must be after start time")
	ErrInvalidDuration     = errors.New("slot duration must be positive")
	ErrInvalidRecurrence   = errors.New("recurrence must be one of none, daily, weekly")
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
	ErrInvalidClinicID     = errors.New("clinic id must be a UUID")
	ErrMissingDate         = errors.New("date is required")
	ErrInvalidExportFormat = errors.New("export format must be xlsx or ics")
	ErrInvalidTime         = json_types.ErrInvalidTime
	ErrUnknownSlotStatus   = errors.New("unknown slot status")
)

var validationErrors = []error{
	ErrInvalidRange,
	ErrInvalidDuration,
	ErrInvalidRecurrence,
	ErrInvalidMonth,
	ErrInvalidClinicID,
	ErrMissingDate,
	ErrInvalidExportFormat,
	ErrInvalidTime,
}

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
