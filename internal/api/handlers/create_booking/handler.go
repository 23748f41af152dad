package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/api/middleware"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrSlot  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgUnauthorized       = "пользователь не определен"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgStorageUnavailable = "хранилище временно недоступно"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: doctor_id=%d, patient_id=%d, date=%s, slot=%s",
				req.DoctorID, patientID, req.Date, req.Slot)
			handlers.RespondSlotUnavailable(w, msgSlotUnavailable)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("POST /appointments - Storage unavailable: doctor_id=%d, error=%v", req.DoctorID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: doctor_id=%d, patient_id=%d, error=%v",
				req.DoctorID, patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, doctor_id=%d, patient_id=%d",
		result.ID, result.DoctorID, result.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
