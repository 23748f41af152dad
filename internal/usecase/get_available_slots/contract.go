package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

// TemplateProvider интерфейс получения шаблона доступности
type TemplateProvider interface {
	GetTemplate(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityTemplate, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени в часовом поясе клиники
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
