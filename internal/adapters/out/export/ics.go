package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

func (e *SlotExporter) ICS(slots []domain.Slot) ([]byte, error) {
	cal := ics.NewCalendarFor(calendarName)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Appointment slots")
	cal.SetTimezoneId(e.location.String())

	stamp := e.now()
	for _, slot := range slots {
		start := slot.Date.At(slot.Time, e.location)

		event := cal.AddEvent(slotUID(slot))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(slot.DurationMinutes) * time.Minute))
		event.SetSummary(slotSummary(slot))
		event.SetStatus(eventStatus(slot.Status))
		if slot.PatientName != "" {
			event.SetDescription("Patient: " + slot.PatientName)
		}
	}

	var sb strings.Builder
	if err := cal.SerializeTo(&sb); err != nil {
		e.logger.Error("export.ics.write_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("export.ics.write_failed: %w", err)
	}

	e.logger.Debug("export.ics.done", out.LogFields{
		"slotsCount": len(slots),
	})

	return []byte(sb.String()), nil
}

// slotUID стабилен для одного и того же слота, повторный импорт обновляет событие
func slotUID(slot domain.Slot) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(calendarName+"/"+slot.Key().String())).String() + "@" + calendarName
}

func slotSummary(slot domain.Slot) string {
	if slot.Status == domain.SlotStatusAvailable {
		return fmt.Sprintf("Available slot %s", slot.Time.Format12h())
	}
	return fmt.Sprintf("Slot %s (%s)", slot.Time.Format12h(), slot.Status)
}

func eventStatus(status domain.SlotStatus) ics.ObjectStatus {
	switch status {
	case domain.SlotStatusConfirmed, domain.SlotStatusCompleted:
		return ics.ObjectStatusConfirmed
	case domain.SlotStatusCancelled:
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusTentative
	}
}
