package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	setAvailability "github.com/m04kA/clinic-scheduling-service/internal/usecase/set_availability"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "расписание может менять только сам врач"
	msgInvalidTemplate    = "некорректный шаблон расписания"
	msgInvalidInput       = "некорректные параметры расписания"
	msgStorageUnavailable = "хранилище временно недоступно"
)

type Handler struct {
	useCase SetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(doctorID, userID))
	if err != nil {
		switch {
		case errors.Is(err, setAvailability.ErrAccessDenied):
			h.logger.Warn("PUT /doctors/{id}/availability - Access denied: doctor_id=%d, user_id=%d", doctorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTemplate):
			h.logger.Warn("PUT /doctors/{id}/availability - Invalid template: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInvalidTemplate(w, msgInvalidTemplate+": "+err.Error())

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/availability - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("PUT /doctors/{id}/availability - Storage unavailable: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("PUT /doctors/{id}/availability - Failed to set availability: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/availability - Availability saved: doctor_id=%d, days=%d", doctorID, len(result.Templates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
