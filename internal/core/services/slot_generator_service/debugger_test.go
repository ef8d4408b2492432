package slot_generator_service

import "testing"

func TestAvailabilityTrace(t *testing.T) {
	trace := newAvailabilityTrace()

	done := trace.step("slots.availability.generate")
	trace.step("never.finished")
	done("slots", "24", "dangling")

	steps := trace.Data()
	if len(steps) != 1 {
		t.Fatalf("only finished steps are recorded, got %d", len(steps))
	}
	if steps[0].Event != "slots.availability.generate" || steps[0].Options["slots"] != "24" {
		t.Errorf("unexpected step: %+v", steps[0])
	}
	if _, ok := steps[0].Options["dangling"]; ok {
		t.Error("odd trailing option must be ignored")
	}

	steps[0].Event = "changed"
	if trace.Data()[0].Event != "slots.availability.generate" {
		t.Error("Data must return a copy")
	}
}
