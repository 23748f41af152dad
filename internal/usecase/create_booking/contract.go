package create_booking

import (
	"context"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
)

// AvailableSlotsProvider интерфейс получения свободных слотов
type AvailableSlotsProvider interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// BookingLedger интерфейс журнала записей
type BookingLedger interface {
	Book(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
