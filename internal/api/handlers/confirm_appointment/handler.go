package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgUnauthorized         = "пользователь не определен"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "подтвердить запись может только врач"
	msgCannotConfirm        = "запись не может быть подтверждена"
	msgStorageUnavailable   = "хранилище временно недоступно"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.Confirm(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		// ErrAccessDenied входит в класс ErrInvalidTransition, поэтому проверяется первым
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Access denied: appointment_id=%d, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Cannot confirm: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInvalidTransition(w, msgCannotConfirm)

		case errors.Is(err, appointments.ErrStorageUnavailable):
			h.logger.Error("PATCH /appointments/{id}/confirm - Storage unavailable: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/confirm - Failed to confirm: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/confirm - Appointment confirmed: appointment_id=%d, doctor_id=%d", appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
