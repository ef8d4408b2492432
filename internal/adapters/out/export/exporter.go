package export

import (
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

const calendarName = "clinic-slot-planner"

// SlotExporter выгружает слоты в xlsx и ics. Время слотов трактуется в таймзоне приложения.
type SlotExporter struct {
	location *time.Location
	now      func() time.Time
	logger   out.LoggerPort
}

func NewSlotExporter(cfg *config.Config, logger out.LoggerPort) *SlotExporter {
	return &SlotExporter{
		location: cfg.Location(),
		now:      time.Now,
		logger:   logger.WithModule("SlotExporter"),
	}
}
