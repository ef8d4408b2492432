package slot_generator_service

import (
	"sync"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
)

// availabilityTrace собирает тайминги шагов проверки доступности для ответа с ?debug=true
type availabilityTrace struct {
	mu    sync.Mutex
	steps []domain.DebugInfo
}

func newAvailabilityTrace() *availabilityTrace {
	return &availabilityTrace{steps: make([]domain.DebugInfo, 0, 3)}
}

// step запускает замер шага event. Возвращенная функция останавливает замер и
// записывает шаг с опциями, переданными парами ключ, значение.
func (t *availabilityTrace) step(event string) func(options ...string) {
	info := domain.StartDebugInfo(event)
	return func(options ...string) {
		info.Elapse()
		for i := 0; i+1 < len(options); i += 2 {
			info.AddOption(options[i], options[i+1])
		}

		t.mu.Lock()
		t.steps = append(t.steps, info)
		t.mu.Unlock()
	}
}

func (t *availabilityTrace) Data() []domain.DebugInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.DebugInfo(nil), t.steps...)
}
