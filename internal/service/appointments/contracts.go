package appointments

import (
	"context"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	appointmentRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, upd appointmentRepo.StatusUpdate) (*domain.Appointment, error)
	CompleteElapsed(ctx context.Context, now time.Time) ([]int64, error)
}

// EventRepository интерфейс журнала переходов статусов
type EventRepository interface {
	Append(ctx context.Context, event *domain.AppointmentEvent) error
	GetByAppointment(ctx context.Context, appointmentID int64) ([]*domain.AppointmentEvent, error)
}

// SlotLocker блокировка слота без ожидания
type SlotLocker interface {
	WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени в часовом поясе клиники
type TimeProvider interface {
	Now() time.Time
}

// Metrics метрики бронирования
type Metrics interface {
	ObserveBooking(outcome string)
	ObserveSlotLock(duration time.Duration)
	ObserveSlotLockFallback()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
