package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

type slotKey struct {
	doctorID int64
	date     string
	slot     types.TimeString
}

// AppointmentRepository хранит записи в памяти процесса
// Уникальность активной записи на слот проверяется под мьютексом
type AppointmentRepository struct {
	mu           sync.RWMutex
	nextID       int64
	appointments map[int64]domain.Appointment
	activeSlots  map[slotKey]int64
}

// NewAppointmentRepository создает пустое хранилище записей
func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		appointments: make(map[int64]domain.Appointment),
		activeSlots:  make(map[slotKey]int64),
	}
}

func keyOf(appt *domain.Appointment) slotKey {
	return slotKey{
		doctorID: appt.DoctorID,
		date:     appt.Date.Format(domain.DateFormat),
		slot:     appt.Slot.Canonical(),
	}
}

// Create сохраняет запись или возвращает appointment.ErrSlotTaken
func (r *AppointmentRepository) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(appt)
	if appt.IsActive() {
		if _, taken := r.activeSlots[key]; taken {
			return nil, appointment.ErrSlotTaken
		}
	}

	now := time.Now()
	r.nextID++
	appt.ID = r.nextID
	appt.CreatedAt = now
	appt.UpdatedAt = now

	r.appointments[appt.ID] = *appt
	if appt.IsActive() {
		r.activeSlots[key] = appt.ID
	}

	return appt, nil
}

// GetByID возвращает запись или appointment.ErrAppointmentNotFound
func (r *AppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}

	return &appt, nil
}

// GetByFilter возвращает записи по фильтру, упорядоченные по дате и слоту
func (r *AppointmentRepository) GetByFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var from, to string
	if filter.StartDate != nil {
		from = filter.StartDate.Format(domain.DateFormat)
	}
	if filter.EndDate != nil {
		to = filter.EndDate.Format(domain.DateFormat)
	}

	result := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && appt.PatientID != *filter.PatientID {
			continue
		}
		date := appt.Date.Format(domain.DateFormat)
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		if filter.ActiveOnly && !appt.IsActive() {
			continue
		}
		copied := appt
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		di, dj := result[i].Date.Format(domain.DateFormat), result[j].Date.Format(domain.DateFormat)
		if di != dj {
			return di < dj
		}
		if result[i].Slot != result[j].Slot {
			return result[i].Slot.IsBefore(result[j].Slot)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// UpdateStatus меняет статус, если текущий статус равен upd.From
func (r *AppointmentRepository) UpdateStatus(_ context.Context, upd appointment.StatusUpdate) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[upd.ID]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if appt.Status != upd.From {
		return nil, appointment.ErrStatusConflict
	}

	now := time.Now()
	appt.Status = upd.To
	appt.UpdatedAt = now
	if upd.To == domain.StatusCancelled {
		actor := upd.ActorID
		appt.CancellationReason = upd.Reason
		appt.CancelledBy = &actor
		appt.CancelledAt = &now
	}

	r.appointments[appt.ID] = appt
	if !appt.IsActive() {
		delete(r.activeSlots, keyOf(&appt))
	}

	return &appt, nil
}

// CompleteElapsed переводит закончившиеся подтвержденные записи в COMPLETED
func (r *AppointmentRepository) CompleteElapsed(_ context.Context, now time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0)
	for id, appt := range r.appointments {
		if appt.Status != domain.StatusConfirmed || !appt.HasElapsed(now) {
			continue
		}
		appt.Status = domain.StatusCompleted
		appt.UpdatedAt = time.Now()
		r.appointments[id] = appt
		delete(r.activeSlots, keyOf(&appt))
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
