package slot_generator_service

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

// FormatTimeSlot converts "HH:MM" to a "H:MM AM/PM" label.
func FormatTimeSlot(time24h string) (string, error) {
	t, err := json_types.ParseTime(time24h)
	if err != nil {
		return "", err
	}
	return t.Format12h(), nil
}

// ParseTimeSlot12h converts a "H:MM AM/PM" label back to "HH:MM".
func ParseTimeSlot12h(label string) (string, error) {
	t, err := json_types.ParseTime12h(label)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
