package api

import (
	"net/http"

	"github.com/gorilla/mux"

	appointmentHistoryHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/appointment_history"
	cancelAppointmentHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/check_availability"
	confirmAppointmentHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/confirm_appointment"
	createBookingHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/create_booking"
	deactivateDayHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/deactivate_day"
	getAppointmentHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_available_slots"
	getConfiguredDaysHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_configured_days"
	getDoctorAppointmentsHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_doctor_appointments"
	getPatientAppointmentsHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/get_patient_appointments"
	setAvailabilityHandler "github.com/m04kA/clinic-scheduling-service/internal/api/handlers/set_availability"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	createBookingUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
	setAvailabilityUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/set_availability"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RouterConfig зависимости HTTP слоя
type RouterConfig struct {
	AvailabilityService *availability.Service
	AppointmentService  *appointments.Service
	GetAvailableSlots   *getAvailableSlotsUC.UseCase
	CreateBooking       *createBookingUC.UseCase
	SetAvailability     *setAvailabilityUC.UseCase
	Health              *HealthHandler

	// HTTPMetrics и MetricsHandler опциональны
	HTTPMetrics    middleware.HTTPMetrics
	MetricsHandler http.Handler
	MetricsPath    string

	Logger Logger
}

// NewRouter собирает роутер со всеми маршрутами сервиса
func NewRouter(cfg RouterConfig) *mux.Router {
	log := cfg.Logger

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(cfg.GetAvailableSlots, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(cfg.GetAvailableSlots, log)
	getAvailability := getAvailabilityHandler.NewHandler(cfg.AvailabilityService, log)
	getConfiguredDays := getConfiguredDaysHandler.NewHandler(cfg.AvailabilityService, log)
	setAvailability := setAvailabilityHandler.NewHandler(cfg.SetAvailability, log)
	deactivateDay := deactivateDayHandler.NewHandler(cfg.AvailabilityService, log)
	createBooking := createBookingHandler.NewHandler(cfg.CreateBooking, log)
	getAppointment := getAppointmentHandler.NewHandler(cfg.AppointmentService, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(cfg.AppointmentService, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cfg.AppointmentService, log)
	appointmentHistory := appointmentHistoryHandler.NewHandler(cfg.AppointmentService, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(cfg.AppointmentService, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(cfg.AppointmentService, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler).Methods(http.MethodGet)
	}

	if cfg.Health != nil {
		r.HandleFunc("/health/live", cfg.Health.Liveness).Methods(http.MethodGet)
		r.HandleFunc("/health/ready", cfg.Health.Readiness).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка одного слота
	api.HandleFunc("/doctors/{doctorId}/availability/check", checkAvailability.Handle).Methods(http.MethodGet)

	// Недельное расписание врача
	api.HandleFunc("/doctors/{doctorId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/availability/days", getConfiguredDays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Расписание (для врача) ---
	protected.HandleFunc("/doctors/{doctorId}/availability", setAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{doctorId}/availability/{dayOfWeek}", deactivateDay.Handle).Methods(http.MethodDelete)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/history", appointmentHistory.Handle).Methods(http.MethodGet)

	// --- Списки записей ---
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	return r
}
