package check_availability

import (
	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
	"github.com/m04kA/clinic-scheduling-service/pkg/types"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	DoctorID  int64  `json:"doctorId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(doctorID int64, dateStr, timeStr string) (*getAvailableSlots.CheckRequest, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	slot, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.CheckRequest{
		DoctorID: doctorID,
		Date:     date,
		Slot:     slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.CheckResponse) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		DoctorID:  resp.DoctorID,
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Slot.String(),
		Available: resp.Available,
	}
}
