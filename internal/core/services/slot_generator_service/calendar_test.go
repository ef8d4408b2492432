package slot_generator_service

import (
	"errors"
	"testing"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/utils"
)

func TestBuildMonthGrid(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		firstDay int
		leading  int
	}{
		{"february 2023", 2023, time.February, 29, 3},
		{"leap february 2024", 2024, time.February, 28, 4},
		{"31 day month", 2024, time.March, 25, 5},
		{"month starting on sunday", 2024, time.September, 1, 0},
		{"january crosses year", 2025, time.January, 29, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := BuildMonthGrid(tt.year, tt.month)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cells) != domain.CalendarGridCells {
				t.Fatalf("expected %d cells, got %d", domain.CalendarGridCells, len(cells))
			}

			if cells[0].Date.Weekday() != time.Sunday {
				t.Errorf("grid must start on Sunday, got %s", cells[0].Date.Weekday())
			}
			if cells[0].Day != tt.firstDay {
				t.Errorf("first cell day = %d, want %d", cells[0].Day, tt.firstDay)
			}

			current := 0
			for i, cell := range cells {
				if cell.IsCurrentMonth {
					current++
				}
				if i > 0 && cells[i-1].Date.DaysUntil(cell.Date) != 1 {
					t.Fatalf("cells %d and %d are not consecutive days", i-1, i)
				}
				if cell.Day != cell.Date.Day() {
					t.Fatalf("cell %d day %d does not match date %s", i, cell.Day, cell.Date)
				}
			}
			if want := utils.DaysInMonth(tt.year, tt.month); current != want {
				t.Errorf("expected %d current month cells, got %d", want, current)
			}

			if !cells[tt.leading].IsCurrentMonth || cells[tt.leading].Day != 1 {
				t.Errorf("day 1 expected at cell %d, got %+v", tt.leading, cells[tt.leading])
			}
			if tt.leading > 0 && cells[tt.leading-1].IsCurrentMonth {
				t.Errorf("cell before day 1 must belong to the previous month")
			}
		})
	}
}

func TestBuildMonthGrid_InvalidMonth(t *testing.T) {
	for _, month := range []time.Month{0, 13} {
		if _, err := BuildMonthGrid(2024, month); !errors.Is(err, domain.ErrInvalidMonth) {
			t.Errorf("month %d: expected ErrInvalidMonth, got %v", month, err)
		}
	}
}
