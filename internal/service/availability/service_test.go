package availability

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/memory"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

const doctorID int64 = 42

func newTestService() (*Service, *memory.AvailabilityRepository) {
	repo := memory.NewAvailabilityRepository()
	return NewService(repo, memory.NewTxManager(), logger.NewWithWriter(io.Discard, "error")), repo
}

func dayInput(day domain.DayOfWeek, start, end string) models.TemplateInput {
	return models.TemplateInput{
		DayOfWeek:           day,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SlotDurationMinutes: 30,
	}
}

func TestService_SetTemplates_LeavesOtherDaysUntouched(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{dayInput(domain.Tuesday, "08:00", "12:00")})
	require.NoError(t, err)

	_, err = svc.SetTemplates(ctx, doctorID, []models.TemplateInput{
		dayInput(domain.Monday, "09:00", "17:00"),
		dayInput(domain.Wednesday, "09:00", "17:00"),
	})
	require.NoError(t, err)

	tuesday, err := svc.GetTemplate(ctx, doctorID, domain.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), tuesday.StartTime)
	assert.Equal(t, types.TimeString("12:00"), tuesday.EndTime)

	days, err := svc.GetConfiguredDays(ctx, doctorID)
	require.NoError(t, err)
	assert.Equal(t, []domain.DayOfWeek{domain.Monday, domain.Tuesday, domain.Wednesday}, days)
}

func TestService_SetTemplates_ReplacesExistingDay(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{dayInput(domain.Monday, "09:00", "17:00")})
	require.NoError(t, err)

	second, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{dayInput(domain.Monday, "10:00", "14:00")})
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)

	templates, err := svc.GetTemplates(ctx, doctorID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "10:00", templates[0].StartTime)
	assert.Equal(t, "14:00", templates[0].EndTime)
}

func TestService_SetTemplates_AllOrNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	invalid := dayInput(domain.Friday, "09:00", "17:00")
	invalid.BreakStart = ptr.Ptr(types.TimeString("13:00"))

	_, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{
		dayInput(domain.Monday, "09:00", "17:00"),
		invalid,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)

	templates, err := svc.GetTemplates(ctx, doctorID)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestService_SetTemplates_RejectsBadBatches(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SetTemplates(ctx, doctorID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)

	_, err = svc.SetTemplates(ctx, doctorID, []models.TemplateInput{
		dayInput(domain.Monday, "09:00", "17:00"),
		dayInput(domain.Monday, "10:00", "12:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)

	bad := dayInput(domain.Monday, "09:00", "17:00")
	bad.SlotDurationMinutes = 25
	_, err = svc.SetTemplates(ctx, doctorID, []models.TemplateInput{bad})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestService_SetTemplates_DefaultDuration(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := dayInput(domain.Monday, "09:00", "17:00")
	in.SlotDurationMinutes = 0

	saved, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{in})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, saved[0].SlotDurationMinutes)
}

func TestService_DeactivateDay(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SetTemplates(ctx, doctorID, []models.TemplateInput{dayInput(domain.Monday, "09:00", "17:00")})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateDay(ctx, doctorID, domain.Monday))

	_, err = svc.GetTemplate(ctx, doctorID, domain.Monday)
	assert.ErrorIs(t, err, ErrTemplateNotConfigured)

	err = svc.DeactivateDay(ctx, doctorID, domain.Monday)
	assert.ErrorIs(t, err, ErrTemplateNotConfigured)

	// Повторная установка снова активирует день
	_, err = svc.SetTemplates(ctx, doctorID, []models.TemplateInput{dayInput(domain.Monday, "09:00", "12:00")})
	require.NoError(t, err)
	_, err = svc.GetTemplate(ctx, doctorID, domain.Monday)
	assert.NoError(t, err)
}

type failingRepo struct {
	*memory.AvailabilityRepository
}

func (f failingRepo) Upsert(ctx context.Context, tpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	return nil, errors.New("connection refused")
}

func TestService_SetTemplates_StorageFailure(t *testing.T) {
	svc := NewService(
		failingRepo{memory.NewAvailabilityRepository()},
		memory.NewTxManager(),
		logger.NewWithWriter(io.Discard, "error"),
	)

	_, err := svc.SetTemplates(context.Background(), doctorID, []models.TemplateInput{dayInput(domain.Monday, "09:00", "17:00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
