package slot_generator_service

import (
	"fmt"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/utils"
)

// BuildMonthGrid returns the 6x7 Sunday-first grid shown by every calendar
// view. Cells outside the month are filled from the neighbouring months.
func BuildMonthGrid(year int, month time.Month) ([]domain.CalendarCell, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidMonth, month)
	}

	first := json_types.NewDate(year, month, 1)
	// time.Sunday == 0, so the weekday is the number of leading cells
	leading := int(first.Weekday())
	daysInMonth := utils.DaysInMonth(year, month)
	start := first.AddDays(-leading)

	cells := make([]domain.CalendarCell, 0, domain.CalendarGridCells)
	for i := 0; i < domain.CalendarGridCells; i++ {
		date := start.AddDays(i)
		cells = append(cells, domain.CalendarCell{
			Day:            date.Day(),
			IsCurrentMonth: i >= leading && i < leading+daysInMonth,
			Date:           date,
		})
	}

	return cells, nil
}
