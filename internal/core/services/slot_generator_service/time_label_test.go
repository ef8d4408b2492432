package slot_generator_service

import (
	"fmt"
	"testing"
)

func TestFormatTimeSlot(t *testing.T) {
	tests := map[string]string{
		"00:00": "12:00 AM",
		"00:30": "12:30 AM",
		"09:05": "9:05 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"23:59": "11:59 PM",
	}

	for in, want := range tests {
		got, err := FormatTimeSlot(in)
		if err != nil {
			t.Fatalf("FormatTimeSlot(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("FormatTimeSlot(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTimeSlot12h(t *testing.T) {
	tests := map[string]string{
		"12:00 AM": "00:00",
		"1:30 PM":  "13:30",
		"12:15 PM": "12:15",
		"11:59 pm": "23:59",
		"9:05AM":   "09:05",
	}

	for in, want := range tests {
		got, err := ParseTimeSlot12h(in)
		if err != nil {
			t.Fatalf("ParseTimeSlot12h(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseTimeSlot12h(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTimeSlotRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			in := fmt.Sprintf("%02d:%02d", h, m)
			label, err := FormatTimeSlot(in)
			if err != nil {
				t.Fatalf("FormatTimeSlot(%q): %v", in, err)
			}
			back, err := ParseTimeSlot12h(label)
			if err != nil {
				t.Fatalf("ParseTimeSlot12h(%q): %v", label, err)
			}
			if back != in {
				t.Fatalf("round trip %q -> %q -> %q", in, label, back)
			}
		}
	}
}

func TestTimeSlot_Invalid(t *testing.T) {
	for _, in := range []string{"", "24:00", "9", "ab:cd", "12:60"} {
		if _, err := FormatTimeSlot(in); err == nil {
			t.Errorf("FormatTimeSlot(%q): expected error", in)
		}
	}
	for _, in := range []string{"", "13:00 PM", "0:30 AM", "9:30", "9:30 XM"} {
		if _, err := ParseTimeSlot12h(in); err == nil {
			t.Errorf("ParseTimeSlot12h(%q): expected error", in)
		}
	}
}
