package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/m04kA/clinic-scheduling-service/internal/app"
	"github.com/m04kA/clinic-scheduling-service/internal/config"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	createBookingUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
	setAvailabilityUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/set_availability"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
	"github.com/m04kA/clinic-scheduling-service/pkg/ptr"
)

// Первый ID пациента, чтобы ID врачей и пациентов не пересекались
const patientIDBase = 100000

// Варианты рабочего дня: начало, конец, перерыв
var shifts = []struct {
	start, end           string
	breakStart, breakEnd *string
}{
	{"08:00", "14:00", nil, nil},
	{"09:00", "18:00", ptr.Ptr("13:00"), ptr.Ptr("14:00")},
	{"12:00", "20:00", ptr.Ptr("16:00"), ptr.Ptr("16:30")},
}

var workWeeks = [][]string{
	{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"},
	{"MONDAY", "WEDNESDAY", "FRIDAY"},
	{"TUESDAY", "THURSDAY", "SATURDAY"},
}

func main() {
	doctors := flag.Int("doctors", 20, "number of doctors")
	bookings := flag.Int("bookings", 200, "number of appointments to book")
	days := flag.Int("days", 14, "booking horizon in days")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("seed: in-memory storage is dropped on exit, seeding anyway as a smoke run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("seed: failed to initialize: %v", err)
	}
	defer application.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedSchedules(ctx, application, *doctors, log); err != nil {
		log.Fatal("seed: schedules: %v", err)
	}

	booked, conflicts, err := seedAppointments(ctx, application, *doctors, *bookings, *days, log)
	if err != nil {
		log.Fatal("seed: appointments: %v", err)
	}

	log.Info("seed: complete, doctors=%d, booked=%d, conflicts=%d", *doctors, booked, conflicts)
}

func seedSchedules(ctx context.Context, application *app.App, doctors int, log *logger.Logger) error {
	log.Info("seed: setting schedules for %d doctors", doctors)

	durations := domain.AllowedSlotDurations

	for doctorID := int64(1); doctorID <= int64(doctors); doctorID++ {
		shift := shifts[gofakeit.Number(0, len(shifts)-1)]

		_, err := application.SetAvailability.Execute(ctx, &setAvailabilityUC.Request{
			DoctorID:            doctorID,
			RequesterID:         doctorID,
			Days:                workWeeks[gofakeit.Number(0, len(workWeeks)-1)],
			StartTime:           shift.start,
			EndTime:             shift.end,
			SlotDurationMinutes: durations[gofakeit.Number(0, len(durations)-1)],
			BreakStart:          shift.breakStart,
			BreakEnd:            shift.breakEnd,
		})
		if err != nil {
			return fmt.Errorf("doctor %d: %w", doctorID, err)
		}
	}

	return nil
}

func seedAppointments(
	ctx context.Context,
	application *app.App,
	doctors, count, horizonDays int,
	log *logger.Logger,
) (booked, conflicts int, err error) {
	log.Info("seed: booking %d appointments over %d days", count, horizonDays)

	today := application.Clock.Now()

	for i := 0; i < count; i++ {
		doctorID := int64(gofakeit.Number(1, doctors))
		date := today.AddDate(0, 0, gofakeit.Number(1, horizonDays))

		slots, err := application.GetAvailableSlots.Execute(ctx, &getAvailableSlotsUC.Request{
			DoctorID: doctorID,
			Date:     date,
		})
		if err != nil {
			return booked, conflicts, err
		}
		if len(slots.Slots) == 0 {
			continue
		}

		_, err = application.CreateBooking.Execute(ctx, &createBookingUC.Request{
			DoctorID:  doctorID,
			PatientID: patientIDBase + int64(gofakeit.Number(1, 5000)),
			Date:      slots.Date,
			Slot:      slots.Slots[gofakeit.Number(0, len(slots.Slots)-1)],
			Notes:     ptr.Ptr(fmt.Sprintf("referred by %s", gofakeit.Name())),
		})
		switch {
		case err == nil:
			booked++
		case errors.Is(err, domain.ErrSlotUnavailable):
			conflicts++
		default:
			return booked, conflicts, err
		}

		if (i+1)%50 == 0 {
			log.Info("seed: appointments processed %d/%d", i+1, count)
		}
	}

	return booked, conflicts, nil
}
