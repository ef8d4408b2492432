package domain

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

const (
	CalendarGridRows    = 6
	CalendarGridColumns = 7
	CalendarGridCells   = CalendarGridRows * CalendarGridColumns
)

type CalendarCell struct {
	Day            int             `json:"day"`
	IsCurrentMonth bool            `json:"isCurrentMonth"`
	Date           json_types.Date `json:"date"`
}
