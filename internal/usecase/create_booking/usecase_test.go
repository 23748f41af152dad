package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/lock"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/memory"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
	appointmentModels "github.com/m04kA/clinic-scheduling-service/internal/service/appointments/models"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	availabilityModels "github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
	"github.com/m04kA/clinic-scheduling-service/pkg/metrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

const (
	doctorID  int64 = 3
	patientID int64 = 9
)

// 2025-03-10 is a Monday
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stack struct {
	booking *UseCase
	slots   *getAvailableSlots.UseCase
	ledger  *appointments.Service
}

func newStack(t *testing.T) *stack {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")
	clock := fixedClock{now: time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)}
	txManager := memory.NewTxManager()
	appointmentRepo := memory.NewAppointmentRepository()

	availabilitySvc := availability.NewService(memory.NewAvailabilityRepository(), txManager, log)
	_, err := availabilitySvc.SetTemplates(context.Background(), doctorID, []availabilityModels.TemplateInput{{
		DayOfWeek:           domain.Monday,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 30,
		BreakStart:          ptr.Ptr(types.TimeString("13:00")),
		BreakEnd:            ptr.Ptr(types.TimeString("14:00")),
	}})
	require.NoError(t, err)

	ledger := appointments.NewService(
		appointmentRepo,
		memory.NewAppointmentEventRepository(),
		lock.NewLocalSlotLocker(),
		txManager,
		clock,
		(*metrics.Metrics)(nil),
		log,
	)
	slots := getAvailableSlots.NewUseCase(availabilitySvc, appointmentRepo, domain.DefaultSlotPolicy(), clock, log)

	return &stack{
		booking: NewUseCase(slots, ledger, log),
		slots:   slots,
		ledger:  ledger,
	}
}

func (s *stack) available(t *testing.T) []types.TimeString {
	t.Helper()
	resp, err := s.slots.Execute(context.Background(), &getAvailableSlots.Request{DoctorID: doctorID, Date: monday})
	require.NoError(t, err)
	return resp.Slots
}

func TestUseCase_Execute_DoubleBooking(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", first.Status)
	assert.Equal(t, 30, first.DurationMinutes)

	_, err = s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID + 1, Date: monday, Slot: "10:00"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestUseCase_Execute_RoundTrip(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.Contains(t, s.available(t), types.TimeString("11:00"))

	created, err := s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "11:00"})
	require.NoError(t, err)
	assert.NotContains(t, s.available(t), types.TimeString("11:00"))

	_, err = s.ledger.Cancel(ctx, created.ID, &appointmentModels.CancelAppointmentRequest{RequesterID: patientID})
	require.NoError(t, err)
	assert.Contains(t, s.available(t), types.TimeString("11:00"))
}

func TestUseCase_Execute_SlotNotOffered(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// Перерыв
	_, err := s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "13:00"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	// Не на границе слота
	_, err = s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "10:15"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	// День без шаблона
	_, err = s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday.AddDate(0, 0, 1), Slot: "10:00"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	// Прошедшая дата
	_, err = s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday.AddDate(0, 0, -7), Slot: "10:00"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	cases := []*Request{
		{DoctorID: 0, PatientID: patientID, Date: monday, Slot: "10:00"},
		{DoctorID: doctorID, PatientID: 0, Date: monday, Slot: "10:00"},
		{DoctorID: doctorID, PatientID: patientID, Slot: "10:00"},
		{DoctorID: doctorID, PatientID: patientID, Date: monday},
		{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "10am"},
	}

	for _, req := range cases {
		_, err := s.booking.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUseCase_Execute_ConcurrentBookings(t *testing.T) {
	s := newStack(t)

	const attempts = 25
	var (
		wg          sync.WaitGroup
		start       = make(chan struct{})
		mu          sync.Mutex
		successes   int
		unavailable int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(patient int64) {
			defer wg.Done()
			<-start

			_, err := s.booking.Execute(context.Background(), &Request{
				DoctorID: doctorID, PatientID: patient, Date: monday, Slot: "15:00",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSlotUnavailable):
				unavailable++
			}
		}(int64(1000 + i))
	}

	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, unavailable)
	assert.NotContains(t, s.available(t), types.TimeString("15:00"))
}

func TestUseCase_Execute_UnpaddedSlotIsSameSlot(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	created, err := s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID, Date: monday, Slot: "9:30"})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), created.Slot)
	assert.NotContains(t, s.available(t), types.TimeString("09:30"))

	_, err = s.booking.Execute(ctx, &Request{DoctorID: doctorID, PatientID: patientID + 1, Date: monday, Slot: "09:30"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}
