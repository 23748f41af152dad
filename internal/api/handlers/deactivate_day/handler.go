package deactivate_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/service/availability"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidDayOfWeek   = "некорректный день недели"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "расписание может менять только сам врач"
	msgNotConfigured      = "на этот день расписание не задано"
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

// Handle DELETE /api/v1/doctors/{doctorId}/availability/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/availability/{day} - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	day, err := domain.ParseDayOfWeek(mux.Vars(r)["dayOfWeek"])
	if err != nil {
		h.logger.Warn("DELETE /doctors/{id}/availability/{day} - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	// Снимать день может только сам врач
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if userID != doctorID {
		h.logger.Warn("DELETE /doctors/{id}/availability/{day} - Access denied: doctor_id=%d, user_id=%d", doctorID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.DeactivateDay(r.Context(), doctorID, day); err != nil {
		switch {
		case errors.Is(err, availability.ErrTemplateNotConfigured):
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, availability.ErrStorageUnavailable):
			h.logger.Error("DELETE /doctors/{id}/availability/{day} - Storage unavailable: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("DELETE /doctors/{id}/availability/{day} - Failed to deactivate: doctor_id=%d, day=%s, error=%v",
				doctorID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /doctors/{id}/availability/{day} - Day deactivated: doctor_id=%d, day=%s", doctorID, day)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
