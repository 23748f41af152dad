package get_configured_days

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

type AvailabilityService interface {
	GetConfiguredDays(ctx context.Context, doctorID int64) ([]domain.DayOfWeek, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
