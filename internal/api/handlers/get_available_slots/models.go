package get_available_slots

import (
	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	getAvailableSlots "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID            int64    `json:"doctorId"`
	Date                string   `json:"date"`
	DayOfWeek           string   `json:"dayOfWeek"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		DoctorID:            resp.DoctorID,
		Date:                resp.Date.Format(domain.DateFormat),
		DayOfWeek:           string(resp.DayOfWeek),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(doctorID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DoctorID: doctorID,
		Date:     date,
	}, nil
}
