package deactivate_day

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

type AvailabilityService interface {
	DeactivateDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
