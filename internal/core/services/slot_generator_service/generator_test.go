package slot_generator_service

import (
	"errors"
	"testing"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
)

func mustParseTime(t *testing.T, s string) json_types.Time {
	t.Helper()
	tm, err := json_types.ParseTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tm
}

var testDate = json_types.NewDate(2024, time.March, 4)

func TestGenerateSlotsForDate_KnownRanges(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		count    int
		first    string
		last     string
	}{
		{"20 minute slots", "09:00", "17:00", 20, 24, "09:00", "16:40"},
		{"30 minute slots", "09:00", "17:00", 30, 16, "09:00", "16:30"},
		{"45 minute slots drop the tail", "09:00", "10:00", 45, 1, "09:00", "09:00"},
		{"duration longer than range", "09:00", "09:30", 60, 0, "", ""},
		{"from midnight", "00:00", "01:00", 15, 4, "00:00", "00:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlotsForDate(testDate, mustParseTime(t, tt.start), mustParseTime(t, tt.end), tt.duration)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(slots) != tt.count {
				t.Fatalf("expected %d slots, got %d", tt.count, len(slots))
			}
			if tt.count == 0 {
				return
			}
			if got := slots[0].Time.String(); got != tt.first {
				t.Errorf("first slot = %s, want %s", got, tt.first)
			}
			if got := slots[len(slots)-1].Time.String(); got != tt.last {
				t.Errorf("last slot = %s, want %s", got, tt.last)
			}
		})
	}
}

func TestGenerateSlotsForDate_ContiguousAndCounted(t *testing.T) {
	for _, duration := range []int{1, 7, 15, 20, 30, 45, 60, 90} {
		for start := 0; start < 12*60; start += 37 {
			for end := start + 1; end < json_types.MinutesPerDay; end += 113 {
				slots, err := GenerateSlotsForDate(testDate, json_types.Time(start), json_types.Time(end), duration)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if want := (end - start) / duration; len(slots) != want {
					t.Fatalf("range %d-%d/%d: expected %d slots, got %d", start, end, duration, want, len(slots))
				}

				for i, slot := range slots {
					if slot.Status != domain.SlotStatusAvailable || slot.DurationMinutes != duration || !slot.Date.Equal(testDate) {
						t.Fatalf("unexpected slot %+v", slot)
					}
					if slot.EndMinutes() > end {
						t.Fatalf("slot %s runs past end %d", slot.Time, end)
					}
					if i > 0 && slots[i-1].EndMinutes() != int(slot.Time) {
						t.Fatalf("gap or overlap between %s and %s", slots[i-1].Time, slot.Time)
					}
				}
				if len(slots) > 0 && int(slots[0].Time) != start {
					t.Fatalf("first slot must start at %d", start)
				}
			}
		}
	}
}

func TestGenerateSlotsForDate_Deterministic(t *testing.T) {
	a, _ := GenerateSlotsForDate(testDate, json_types.MustTime(8, 0), json_types.MustTime(12, 0), 20)
	b, _ := GenerateSlotsForDate(testDate, json_types.MustTime(8, 0), json_types.MustTime(12, 0), 20)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSlotsForDate_InvalidInput(t *testing.T) {
	if _, err := GenerateSlotsForDate(testDate, mustParseTime(t, "10:00"), mustParseTime(t, "09:00"), 20); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := GenerateSlotsForDate(testDate, mustParseTime(t, "09:00"), mustParseTime(t, "09:00"), 20); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("equal bounds: expected ErrInvalidRange, got %v", err)
	}
	if _, err := GenerateSlotsForDate(testDate, mustParseTime(t, "09:00"), mustParseTime(t, "10:00"), 0); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := GenerateSlotsForDate(testDate, mustParseTime(t, "09:00"), mustParseTime(t, "10:00"), -15); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestGenerateSlotsForRequest(t *testing.T) {
	req := domain.SlotRequest{
		Date:                testDate,
		StartTime:           json_types.MustTime(9, 0),
		EndTime:             json_types.MustTime(10, 0),
		SlotDurationMinutes: 30,
		Recurrence:          domain.RecurrenceWeekly,
	}

	dates, slots, err := GenerateSlotsForRequest(req, 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 weekly dates, got %d", len(dates))
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if !slot.Date.Equal(dates[i/2]) {
			t.Errorf("slot %d on %s, want %s", i, slot.Date, dates[i/2])
		}
	}
}

func TestValidateRequest(t *testing.T) {
	valid := domain.SlotRequest{
		Date:                testDate,
		StartTime:           json_types.MustTime(9, 0),
		EndTime:             json_types.MustTime(17, 0),
		SlotDurationMinutes: 20,
	}
	if err := ValidateRequest(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*domain.SlotRequest)
		want   error
	}{
		{"missing date", func(r *domain.SlotRequest) { r.Date = json_types.Date{} }, domain.ErrMissingDate},
		{"reversed range", func(r *domain.SlotRequest) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }, domain.ErrInvalidRange},
		{"zero duration", func(r *domain.SlotRequest) { r.SlotDurationMinutes = 0 }, domain.ErrInvalidDuration},
		{"unknown recurrence", func(r *domain.SlotRequest) { r.Recurrence = "monthly" }, domain.ErrInvalidRecurrence},
		{"bad clinic id", func(r *domain.SlotRequest) { r.ClinicID = "main-clinic" }, domain.ErrInvalidClinicID},
		{"out of range time", func(r *domain.SlotRequest) { r.EndTime = json_types.Time(json_types.MinutesPerDay) }, domain.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := ValidateRequest(req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
