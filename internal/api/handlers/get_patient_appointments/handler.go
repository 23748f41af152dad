package get_patient_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
)

const (
	msgInvalidOwnerID     = "некорректный ID пациента"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "список записей пациента доступен только самому пациенту"
	msgInvalidInput       = "некорректные параметры фильтра"
	msgStorageUnavailable = "хранилище временно недоступно"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/{patientId}/appointments
// Query params: from, to (YYYY-MM-DD, опционально), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "patientId")
	if err != nil {
		h.logger.Warn("GET /patients/{id}/appointments - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceReq, err := ToServiceRequest(ownerID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /patients/{id}/appointments - Invalid date filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListForPatient(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /patients/{id}/appointments - Access denied: patient_id=%d, user_id=%d", ownerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /patients/{id}/appointments - Invalid input: patient_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, appointments.ErrStorageUnavailable):
			h.logger.Error("GET /patients/{id}/appointments - Storage unavailable: patient_id=%d, error=%v", ownerID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /patients/{id}/appointments - Failed to get appointments: patient_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id}/appointments - Appointments retrieved successfully: patient_id=%d, count=%d", ownerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
