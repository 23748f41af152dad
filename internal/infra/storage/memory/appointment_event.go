package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

// AppointmentEventRepository журнал переходов статусов в памяти процесса
type AppointmentEventRepository struct {
	mu     sync.RWMutex
	nextID int64
	events map[int64][]domain.AppointmentEvent
}

// NewAppointmentEventRepository создает пустой журнал
func NewAppointmentEventRepository() *AppointmentEventRepository {
	return &AppointmentEventRepository{
		events: make(map[int64][]domain.AppointmentEvent),
	}
}

// Append добавляет событие в журнал
func (r *AppointmentEventRepository) Append(_ context.Context, event *domain.AppointmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event.ID = r.nextID
	event.CreatedAt = time.Now()

	r.events[event.AppointmentID] = append(r.events[event.AppointmentID], *event)
	return nil
}

// GetByAppointment возвращает события записи в порядке появления
func (r *AppointmentEventRepository) GetByAppointment(_ context.Context, appointmentID int64) ([]*domain.AppointmentEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.events[appointmentID]
	result := make([]*domain.AppointmentEvent, 0, len(stored))
	for i := range stored {
		event := stored[i]
		result = append(result, &event)
	}

	return result, nil
}
