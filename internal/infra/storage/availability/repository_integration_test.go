//go:build integration

package availability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/availability"
	"github.com/m04kA/clinic-scheduling-service/internal/testhelpers"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

func TestRepository_Postgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	repo := availability.NewRepository(db)
	ctx := context.Background()

	t.Run("upsert replaces template for the same day", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		first, err := repo.Upsert(ctx, &domain.AvailabilityTemplate{
			DoctorID:            1,
			DayOfWeek:           domain.Monday,
			StartTime:           "09:00",
			EndTime:             "17:00",
			SlotDurationMinutes: 30,
			BreakStart:          ptr.Ptr(types.TimeString("13:00")),
			BreakEnd:            ptr.Ptr(types.TimeString("14:00")),
		})
		require.NoError(t, err)

		second, err := repo.Upsert(ctx, &domain.AvailabilityTemplate{
			DoctorID:            1,
			DayOfWeek:           domain.Monday,
			StartTime:           "08:00",
			EndTime:             "12:00",
			SlotDurationMinutes: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		got, err := repo.GetByDoctorAndDay(ctx, 1, domain.Monday)
		require.NoError(t, err)
		assert.Equal(t, "08:00", got.StartTime.String())
		assert.Equal(t, "12:00", got.EndTime.String())
		assert.Equal(t, 15, got.SlotDurationMinutes)
		assert.Nil(t, got.BreakStart)
		assert.Nil(t, got.BreakEnd)
		assert.True(t, got.IsActive)
	})

	t.Run("templates are ordered by weekday", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		for _, day := range []domain.DayOfWeek{domain.Friday, domain.Monday, domain.Wednesday} {
			_, err := repo.Upsert(ctx, &domain.AvailabilityTemplate{
				DoctorID:            2,
				DayOfWeek:           day,
				StartTime:           "09:00",
				EndTime:             "12:00",
				SlotDurationMinutes: 60,
			})
			require.NoError(t, err)
		}

		templates, err := repo.GetByDoctor(ctx, 2)
		require.NoError(t, err)
		require.Len(t, templates, 3)
		assert.Equal(t, domain.Monday, templates[0].DayOfWeek)
		assert.Equal(t, domain.Wednesday, templates[1].DayOfWeek)
		assert.Equal(t, domain.Friday, templates[2].DayOfWeek)

		days, err := repo.GetActiveDays(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []domain.DayOfWeek{domain.Monday, domain.Wednesday, domain.Friday}, days)
	})

	t.Run("deactivate hides template until next upsert", func(t *testing.T) {
		testhelpers.TruncateAll(t, db)

		tpl := &domain.AvailabilityTemplate{
			DoctorID:            3,
			DayOfWeek:           domain.Tuesday,
			StartTime:           "10:00",
			EndTime:             "14:00",
			SlotDurationMinutes: 45,
		}
		_, err := repo.Upsert(ctx, tpl)
		require.NoError(t, err)

		require.NoError(t, repo.Deactivate(ctx, 3, domain.Tuesday))

		_, err = repo.GetByDoctorAndDay(ctx, 3, domain.Tuesday)
		assert.ErrorIs(t, err, availability.ErrTemplateNotFound)

		err = repo.Deactivate(ctx, 3, domain.Tuesday)
		assert.ErrorIs(t, err, availability.ErrTemplateNotFound)

		days, err := repo.GetActiveDays(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, days)

		_, err = repo.Upsert(ctx, tpl)
		require.NoError(t, err)

		got, err := repo.GetByDoctorAndDay(ctx, 3, domain.Tuesday)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})
}
