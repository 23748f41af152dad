package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

func pending(date time.Time, slot string) *domain.Appointment {
	return &domain.Appointment{
		DoctorID:        1,
		PatientID:       100,
		Date:            date,
		Slot:            types.TimeString(slot),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	}
}

func TestAppointmentRepository_ActiveSlotIsUnique(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	date := time.Date(2030, 3, 11, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, pending(date, "10:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, pending(date, "10:00"))
	assert.ErrorIs(t, err, appointment.ErrSlotTaken)

	_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:      first.ID,
		From:    domain.StatusPending,
		To:      domain.StatusCancelled,
		ActorID: 100,
		Reason:  ptr.Ptr("changed plans"),
	})
	require.NoError(t, err)

	second, err := repo.Create(ctx, pending(date, "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAppointmentRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	date := time.Date(2030, 3, 11, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, pending(date, "10:00"))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:   created.ID,
		From: domain.StatusConfirmed,
		To:   domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, appointment.ErrStatusConflict)

	_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:   created.ID + 1,
		From: domain.StatusPending,
		To:   domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	cancelled, err := repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:      created.ID,
		From:    domain.StatusPending,
		To:      domain.StatusCancelled,
		ActorID: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, int64(1), *cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestAppointmentRepository_GetByFilterOrdersBySlot(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	date := time.Date(2030, 3, 11, 0, 0, 0, 0, time.UTC)

	for _, slot := range []string{"12:00", "09:00", "10:30"} {
		_, err := repo.Create(ctx, pending(date, slot))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, pending(date.AddDate(0, 0, -1), "15:00"))
	require.NoError(t, err)

	list, err := repo.GetByFilter(ctx, domain.AppointmentFilter{
		DoctorID:  ptr.Ptr(int64(1)),
		StartDate: &date,
	})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "09:00", list[0].Slot.String())
	assert.Equal(t, "10:30", list[1].Slot.String())
	assert.Equal(t, "12:00", list[2].Slot.String())
}

func TestAppointmentRepository_CompleteElapsed(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	confirmed, err := repo.Create(ctx, pending(date, "10:00"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:   confirmed.ID,
		From: domain.StatusPending,
		To:   domain.StatusConfirmed,
	})
	require.NoError(t, err)

	later, err := repo.Create(ctx, pending(date, "11:00"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
		ID:   later.ID,
		From: domain.StatusPending,
		To:   domain.StatusConfirmed,
	})
	require.NoError(t, err)

	ids, err := repo.CompleteElapsed(ctx, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []int64{confirmed.ID}, ids)

	got, err := repo.GetByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}
