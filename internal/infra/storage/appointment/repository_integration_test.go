//go:build integration

package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
	"github.com/m04kA/clinic-scheduling-service/internal/testhelpers"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

func newAppointment(date time.Time, slot string) *domain.Appointment {
	return &domain.Appointment{
		DoctorID:        1,
		PatientID:       100,
		Date:            date,
		Slot:            types.TimeString(slot),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
		Notes:           ptr.Ptr("first visit"),
	}
}

func TestRepository_Postgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	repo := appointment.NewRepository(db)
	ctx := context.Background()
	date := time.Date(2030, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("create and get", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		created, err := repo.Create(ctx, newAppointment(date, "10:00"))
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.DoctorID)
		assert.Equal(t, int64(100), got.PatientID)
		assert.Equal(t, "10:00", got.Slot.String())
		assert.Equal(t, date.Format(domain.DateFormat), got.Date.Format(domain.DateFormat))
		assert.Equal(t, domain.StatusPending, got.Status)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "first visit", *got.Notes)
	})

	t.Run("active slot is unique", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		first, err := repo.Create(ctx, newAppointment(date, "10:00"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newAppointment(date, "10:00"))
		assert.ErrorIs(t, err, appointment.ErrSlotTaken)

		// После отмены слот снова можно занять
		_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:      first.ID,
			From:    domain.StatusPending,
			To:      domain.StatusCancelled,
			ActorID: 100,
			Reason:  ptr.Ptr("changed plans"),
		})
		require.NoError(t, err)

		second, err := repo.Create(ctx, newAppointment(date, "10:00"))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("update status is compare and set", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		created, err := repo.Create(ctx, newAppointment(date, "11:00"))
		require.NoError(t, err)

		confirmed, err := repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:      created.ID,
			From:    domain.StatusPending,
			To:      domain.StatusConfirmed,
			ActorID: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, confirmed.Status)

		_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:      created.ID,
			From:    domain.StatusPending,
			To:      domain.StatusCancelled,
			ActorID: 100,
		})
		assert.ErrorIs(t, err, appointment.ErrStatusConflict)

		cancelled, err := repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:      created.ID,
			From:    domain.StatusConfirmed,
			To:      domain.StatusCancelled,
			ActorID: 100,
			Reason:  ptr.Ptr("sick"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, int64(100), *cancelled.CancelledBy)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "sick", *cancelled.CancellationReason)
		assert.NotNil(t, cancelled.CancelledAt)

		_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:   999999,
			From: domain.StatusPending,
			To:   domain.StatusConfirmed,
		})
		assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
	})

	t.Run("filter", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		for _, slot := range []string{"12:00", "09:00", "10:30"} {
			_, err := repo.Create(ctx, newAppointment(date, slot))
			require.NoError(t, err)
		}
		other := newAppointment(date.AddDate(0, 0, 1), "09:00")
		other.PatientID = 200
		_, err := repo.Create(ctx, other)
		require.NoError(t, err)

		list, err := repo.GetByFilter(ctx, domain.AppointmentFilter{
			DoctorID:  ptr.Ptr(int64(1)),
			StartDate: &date,
			EndDate:   &date,
		})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "09:00", list[0].Slot.String())
		assert.Equal(t, "10:30", list[1].Slot.String())
		assert.Equal(t, "12:00", list[2].Slot.String())

		byPatient, err := repo.GetByFilter(ctx, domain.AppointmentFilter{PatientID: ptr.Ptr(int64(200))})
		require.NoError(t, err)
		require.Len(t, byPatient, 1)
	})

	t.Run("complete elapsed", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		past := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

		confirmed, err := repo.Create(ctx, newAppointment(past, "10:00"))
		require.NoError(t, err)
		_, err = repo.UpdateStatus(ctx, appointment.StatusUpdate{
			ID:      confirmed.ID,
			From:    domain.StatusPending,
			To:      domain.StatusConfirmed,
			ActorID: 1,
		})
		require.NoError(t, err)

		pending, err := repo.Create(ctx, newAppointment(past, "11:00"))
		require.NoError(t, err)

		// Слот 10:00-10:30 закончился, проверяем ровно на границе
		now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		ids, err := repo.CompleteElapsed(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, []int64{confirmed.ID}, ids)

		got, err := repo.GetByID(ctx, confirmed.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.Status)

		got, err = repo.GetByID(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, got.Status)
	})
}
