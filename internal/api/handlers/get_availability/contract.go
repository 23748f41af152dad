package get_availability

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetTemplates(ctx context.Context, doctorID int64) ([]*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
