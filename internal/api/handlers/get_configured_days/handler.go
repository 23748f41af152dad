package get_configured_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability/models"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgStorageUnavailable = "хранилище временно недоступно"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/availability/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability/days - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	days, err := h.service.GetConfiguredDays(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDoctorID)

		case errors.Is(err, availability.ErrStorageUnavailable):
			h.logger.Error("GET /doctors/{id}/availability/days - Storage unavailable: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /doctors/{id}/availability/days - Failed to get days: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainDays(doctorID, days))
}
