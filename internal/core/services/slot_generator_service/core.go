package slot_generator_service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

type SlotGeneratorService struct {
	backendPort out.ClinicBackendPort
	cachePort   out.CachePort
	exporter    out.ExporterPort
	logger      out.LoggerPort
	cfg         *config.Config
	generations *bookingsGenerations
}

// NewSlotGeneratorService wires the use cases. backendPort and cachePort may be
// nil: without a backend only the offline operations work, without a cache
// every availability check goes to the backend.
func NewSlotGeneratorService(
	cfg *config.Config,
	backendPort out.ClinicBackendPort,
	cachePort out.CachePort,
	exporter out.ExporterPort,
	logger out.LoggerPort,
) *SlotGeneratorService {
	return &SlotGeneratorService{
		backendPort: backendPort,
		cachePort:   cachePort,
		exporter:    exporter,
		logger:      logger.WithModule("SlotGeneratorService"),
		cfg:         cfg,
		generations: newBookingsGenerations(),
	}
}

func (s *SlotGeneratorService) PreviewSlots(ctx context.Context, req domain.SlotRequest) ([]domain.Slot, error) {
	_, slots, err := s.generate(req)
	return slots, err
}

func (s *SlotGeneratorService) generate(req domain.SlotRequest) ([]json_types.Date, []domain.Slot, error) {
	horizonDays := s.cfg.HorizonDays(req.HorizonDays)

	dates, slots, err := GenerateSlotsForRequest(req, horizonDays)
	if err != nil {
		s.logger.Debug("slots.generate.rejected", out.LogFields{
			"date":  req.Date,
			"error": err.Error(),
		})
		return nil, nil, err
	}

	s.logger.Debug("slots.generate.done", out.LogFields{
		"date":        req.Date,
		"recurrence":  req.Recurrence.Normalize(),
		"horizonDays": horizonDays,
		"datesCount":  len(dates),
		"slotsCount":  len(slots),
	})

	return dates, slots, nil
}

func (s *SlotGeneratorService) CheckAvailability(ctx context.Context, req domain.SlotRequest) (domain.Availability, []domain.DebugInfo, error) {
	trace := newAvailabilityTrace()

	generateDone := trace.step("slots.availability.generate")
	dates, slots, err := s.generate(req)
	if err != nil {
		return domain.Availability{}, nil, err
	}
	generateDone("slots", strconv.Itoa(len(slots)))

	from, to := dates[0], dates[len(dates)-1]
	clinicID, _ := canonicalClinicID(req.ClinicID)

	fetchDone := trace.step("slots.availability.bookings.fetch")
	bookings, cached, err := s.getBookings(ctx, clinicID, from, to)
	if err != nil {
		s.logger.Error("slots.availability.bookings.fetch_failed", out.LogFields{
			"clinicId": clinicID,
			"from":     from,
			"to":       to,
			"error":    err.Error(),
		})
		return domain.Availability{}, nil, fmt.Errorf("slots.availability.bookings.fetch_failed: %w", err)
	}
	fetchDone("cached", strconv.FormatBool(cached), "bookings", strconv.Itoa(len(bookings)))

	partitionDone := trace.step("slots.availability.partition")
	available, unavailable := PartitionByAvailability(slots, BookedSlotsFromBookings(bookings))
	partitionDone()

	s.logger.Info("slots.availability.done", out.LogFields{
		"clinicId":    clinicID,
		"from":        from,
		"to":          to,
		"available":   len(available),
		"unavailable": len(unavailable),
	})

	return domain.Availability{
		Available:   available,
		Unavailable: unavailable,
	}, trace.Data(), nil
}

func (s *SlotGeneratorService) CreateSlots(ctx context.Context, req domain.SlotRequest) (domain.SlotCreationResult, error) {
	if s.backendPort == nil {
		return domain.SlotCreationResult{}, out.ErrBackendNotConfigured
	}

	dates, slots, err := s.generate(req)
	if err != nil {
		return domain.SlotCreationResult{}, err
	}

	clinicID, _ := req.ClinicUUID()
	creation := domain.SlotCreationRequest{
		Date:                req.Date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDuration:        req.SlotDurationMinutes,
		ClinicID:            clinicID,
		AssociatedResources: req.ResourceTags,
	}
	if recurrence := req.Recurrence.Normalize(); recurrence != domain.RecurrenceNone {
		creation.Recurrence = &recurrence
	}

	created, err := s.backendPort.CreateSlots(ctx, creation)
	if err != nil {
		s.logger.Error("slots.create.failed", out.LogFields{
			"clinicId": req.ClinicID,
			"date":     req.Date,
			"error":    err.Error(),
		})
		return domain.SlotCreationResult{}, fmt.Errorf("slots.create.failed: %w", err)
	}

	// Бэкенд сам решает сколько слотов создать, расхождение с предпросмотром только логируем
	if created != len(slots) {
		s.logger.Warn("slots.create.count_mismatch", out.LogFields{
			"clinicId":  req.ClinicID,
			"created":   created,
			"previewed": len(slots),
		})
	}

	canonicalID, _ := canonicalClinicID(req.ClinicID)
	s.invalidateBookingsRange(ctx, canonicalID, dates[0], dates[len(dates)-1])

	s.logger.Info("slots.create.done", out.LogFields{
		"clinicId": req.ClinicID,
		"date":     req.Date,
		"created":  created,
	})

	return domain.SlotCreationResult{
		Created:   created,
		Previewed: len(slots),
	}, nil
}

func (s *SlotGeneratorService) ExportSlots(ctx context.Context, req domain.SlotRequest, format domain.ExportFormat) ([]byte, error) {
	if format != domain.ExportFormatXLSX && format != domain.ExportFormatICS {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidExportFormat, format)
	}

	_, slots, err := s.generate(req)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case domain.ExportFormatXLSX:
		data, err = s.exporter.XLSX(slots)
	case domain.ExportFormatICS:
		data, err = s.exporter.ICS(slots)
	}
	if err != nil {
		s.logger.Error("slots.export.failed", out.LogFields{
			"format": format,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("slots.export.failed: %w", err)
	}

	return data, nil
}

func (s *SlotGeneratorService) BuildMonthGrid(year int, month time.Month) ([]domain.CalendarCell, error) {
	return BuildMonthGrid(year, month)
}

func (s *SlotGeneratorService) FormatTimeSlot(time24h string) (string, error) {
	return FormatTimeSlot(time24h)
}

func (s *SlotGeneratorService) ParseTimeSlot12h(label string) (string, error) {
	return ParseTimeSlot12h(label)
}
