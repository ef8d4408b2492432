package slot_generator_service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

// Кэширование записей

// bookingsGenerations считает инвалидации. Ответ бэкенда пишется в кэш только если
// за время запроса счетчик клиники не изменился, иначе событие о записи,
// пришедшее во время запроса, перетерлось бы устаревшими данными.
type bookingsGenerations struct {
	mu      sync.Mutex
	all     uint64
	clinics map[string]uint64
}

func newBookingsGenerations() *bookingsGenerations {
	return &bookingsGenerations{clinics: make(map[string]uint64)}
}

// current растет при любой инвалидации клиники или всего кэша
func (g *bookingsGenerations) current(clinicID string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.all + g.clinics[clinicID]
}

// storeIfCurrent вызывает store под блокировкой, только если счетчик не менялся.
// Инвалидация ждет окончания записи и затем удаляет ее из кэша.
func (g *bookingsGenerations) storeIfCurrent(clinicID string, generation uint64, store func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.all+g.clinics[clinicID] != generation {
		return false
	}
	store()
	return true
}

func (g *bookingsGenerations) bump(clinicID string) {
	g.mu.Lock()
	g.clinics[clinicID]++
	g.mu.Unlock()
}

func (g *bookingsGenerations) bumpAll() {
	g.mu.Lock()
	g.all++
	g.mu.Unlock()
}

// canonicalClinicID приводит UUID клиники к одному виду, чтобы ключи кэша
// совпадали независимо от регистра в запросе и в событии.
func canonicalClinicID(clinicID string) (string, error) {
	if clinicID == "" {
		return "", nil
	}
	id, err := uuid.Parse(clinicID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidClinicID, clinicID)
	}
	return id.String(), nil
}

// getBookings отдает записи из кэша, при промахе идет в бэкенд и сохраняет ответ.
// Второе значение true, если записи взяты из кэша.
func (s *SlotGeneratorService) getBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, bool, error) {
	if s.cachePort != nil {
		if bookings, exists := s.cachePort.GetBookings(ctx, clinicID, from, to); exists {
			s.logger.Debug("bookings.cache.hit", out.LogFields{
				"clinicId":      clinicID,
				"bookingsCount": len(bookings),
			})
			return bookings, true, nil
		}
		s.logger.Debug("bookings.cache.miss", out.LogFields{
			"clinicId": clinicID,
		})
	}

	if s.backendPort == nil {
		return nil, false, out.ErrBackendNotConfigured
	}

	generation := s.generations.current(clinicID)
	bookings, err := s.backendPort.ListBookings(ctx, clinicID, from, to)
	if err != nil {
		return nil, false, err
	}

	if s.cachePort != nil {
		stored := s.generations.storeIfCurrent(clinicID, generation, func() {
			s.cachePort.StoreBookings(ctx, clinicID, from, to, bookings)
		})
		if !stored {
			s.logger.Debug("bookings.cache.store_skipped", out.LogFields{
				"clinicId": clinicID,
			})
		}
	}

	return bookings, false, nil
}

func (s *SlotGeneratorService) invalidateBookingsRange(ctx context.Context, clinicID string, from, to json_types.Date) {
	if s.cachePort == nil {
		return
	}
	s.generations.bump(clinicID)
	for date := from; !date.After(to); date = date.AddDays(1) {
		s.cachePort.InvalidateBookings(ctx, clinicID, date)
	}
}

func (s *SlotGeneratorService) InvalidateBookingsCache(ctx context.Context, clinicID string, date json_types.Date) error {
	clinicID, err := canonicalClinicID(clinicID)
	if err != nil {
		return err
	}
	if s.cachePort == nil {
		return nil
	}

	s.generations.bump(clinicID)
	s.cachePort.InvalidateBookings(ctx, clinicID, date)
	s.logger.Debug("bookings.cache.invalidated", out.LogFields{
		"clinicId": clinicID,
		"date":     date,
	})

	return nil
}

func (s *SlotGeneratorService) InvalidateAllBookingsCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}

	s.generations.bumpAll()
	s.cachePort.InvalidateAllBookings(ctx)
	s.logger.Info("bookings.cache.invalidated_all", out.LogFields{})

	return nil
}
