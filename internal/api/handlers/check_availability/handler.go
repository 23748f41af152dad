package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgMissingParams      = "параметры date и time обязательны"
	msgInvalidParams      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры запроса"
	msgStorageUnavailable = "хранилище временно недоступно"
)

type Handler struct {
	checker SlotChecker
	logger  Logger
}

func NewHandler(checker SlotChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/availability/check
// Query params: date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability/check - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	query := r.URL.Query()
	dateStr, timeStr := query.Get("date"), query.Get("time")
	if dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /doctors/{id}/availability/check - Missing date or time")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(doctorID, dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability/check - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.checker.IsSlotAvailable(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/availability/check - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrStorageUnavailable):
			h.logger.Error("GET /doctors/{id}/availability/check - Storage unavailable: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /doctors/{id}/availability/check - Failed to check slot: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/availability/check - doctor_id=%d, date=%s, time=%s, available=%t",
		doctorID, dateStr, timeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
