package availability

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

// Repository интерфейс репозитория шаблонов доступности
type Repository interface {
	Upsert(ctx context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityTemplate, error)
	GetByDoctorAndDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityTemplate, error)
	GetActiveDays(ctx context.Context, doctorID int64) ([]domain.DayOfWeek, error)
	Deactivate(ctx context.Context, doctorID int64, day domain.DayOfWeek) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
