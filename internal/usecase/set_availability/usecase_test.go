package set_availability

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/memory"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
)

const doctorID int64 = 5

func newUseCase(t *testing.T) (*UseCase, *availability.Service) {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")
	svc := availability.NewService(memory.NewAvailabilityRepository(), memory.NewTxManager(), log)

	return NewUseCase(svc, log), svc
}

func TestUseCase_Execute_LeavesOtherDaysUntouched(t *testing.T) {
	uc, svc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		DoctorID:    doctorID,
		RequesterID: doctorID,
		Days:        []string{"TUESDAY"},
		StartTime:   "08:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{
		DoctorID:            doctorID,
		RequesterID:         doctorID,
		Days:                []string{"monday", "WEDNESDAY", "MONDAY"},
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 15,
		BreakStart:          ptr.Ptr("13:00"),
		BreakEnd:            ptr.Ptr("14:00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Templates, 2)
	assert.Equal(t, "MONDAY", resp.Templates[0].DayOfWeek)
	assert.Equal(t, "WEDNESDAY", resp.Templates[1].DayOfWeek)
	assert.Equal(t, 15, resp.Templates[0].SlotDurationMinutes)

	tuesday, err := svc.GetTemplate(ctx, doctorID, domain.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, "08:00", tuesday.StartTime.String())
	assert.Equal(t, "12:00", tuesday.EndTime.String())
	assert.Equal(t, domain.DefaultSlotDurationMinutes, tuesday.SlotDurationMinutes)

	days, err := svc.GetConfiguredDays(ctx, doctorID)
	require.NoError(t, err)
	assert.Equal(t, []domain.DayOfWeek{domain.Monday, domain.Tuesday, domain.Wednesday}, days)
}

func TestUseCase_Execute_StoresTimesAsHHMM(t *testing.T) {
	uc, svc := newUseCase(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{
		DoctorID:    doctorID,
		RequesterID: doctorID,
		Days:        []string{"THURSDAY"},
		StartTime:   "9:00",
		EndTime:     "17:00:00",
		BreakStart:  ptr.Ptr("12:30"),
		BreakEnd:    ptr.Ptr("13:00:00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, "09:00", resp.Templates[0].StartTime)
	assert.Equal(t, "17:00", resp.Templates[0].EndTime)
	require.NotNil(t, resp.Templates[0].BreakEnd)
	assert.Equal(t, "13:00", *resp.Templates[0].BreakEnd)

	templates, err := svc.GetTemplates(ctx, doctorID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "09:00", templates[0].StartTime)
	assert.Equal(t, "17:00", templates[0].EndTime)
}

func TestUseCase_Execute_AccessDenied(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID:    doctorID,
		RequesterID: doctorID + 1,
		Days:        []string{"MONDAY"},
		StartTime:   "09:00",
		EndTime:     "17:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_InvalidRequests(t *testing.T) {
	uc, svc := newUseCase(t)
	ctx := context.Background()

	base := func() *Request {
		return &Request{
			DoctorID:    doctorID,
			RequesterID: doctorID,
			Days:        []string{"MONDAY"},
			StartTime:   "09:00",
			EndTime:     "17:00",
		}
	}

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"unknown day", func(r *Request) { r.Days = []string{"FUNDAY"} }, domain.ErrInvalidTemplate},
		{"no days", func(r *Request) { r.Days = nil }, domain.ErrInvalidInput},
		{"bad start", func(r *Request) { r.StartTime = "9am" }, domain.ErrInvalidInput},
		{"missing end", func(r *Request) { r.EndTime = "" }, domain.ErrInvalidInput},
		{"half break", func(r *Request) { r.BreakStart = ptr.Ptr("12:00") }, domain.ErrInvalidTemplate},
		{"end before start", func(r *Request) { r.EndTime = "08:00" }, domain.ErrInvalidTemplate},
		{"unsupported duration", func(r *Request) { r.SlotDurationMinutes = 7 }, domain.ErrInvalidTemplate},
		{"break outside hours", func(r *Request) {
			r.BreakStart, r.BreakEnd = ptr.Ptr("18:00"), ptr.Ptr("19:00")
		}, domain.ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(req)

			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	days, err := svc.GetConfiguredDays(ctx, doctorID)
	require.NoError(t, err)
	assert.Empty(t, days)
}
