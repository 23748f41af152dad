package set_availability

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
)

// TemplateService интерфейс сервиса шаблонов доступности
type TemplateService interface {
	SetTemplates(ctx context.Context, doctorID int64, inputs []models.TemplateInput) ([]*models.TemplateResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
