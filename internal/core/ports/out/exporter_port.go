package out

import (
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
)

type ExporterPort interface {
	XLSX(slots []domain.Slot) ([]byte, error)
	ICS(slots []domain.Slot) ([]byte, error)
}
